package server

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// SystemHealth gathers a point-in-time snapshot of the host for the health
// endpoint. The service keeps no database or other stateful dependency, so
// process/host vitals are the whole health story.
func SystemHealth() map[string]interface{} {
	v, _ := mem.VirtualMemory()
	cpuPercent, _ := cpu.Percent(time.Second, false)
	uptime, _ := host.Uptime()

	cpuLoad := "n/a"
	if len(cpuPercent) > 0 {
		cpuLoad = fmt.Sprintf("%.1f%%", cpuPercent[0])
	}

	ramUsage := "n/a"
	if v != nil {
		ramUsage = fmt.Sprintf("%.1f%%", v.UsedPercent)
	}

	return map[string]interface{}{
		"status":         "ok",
		"cpu_load":       cpuLoad,
		"ram_usage":      ramUsage,
		"uptime_seconds": uptime,
	}
}
