/*
Package server implements the application's network transport layer.
It initializes the HTTP server, configures timeouts, and wires the
plan-generation pipeline and chat relay to their routes.
*/
package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/titaniumstop/AI-integrated-fitness-plan/internal/chat"
	"github.com/titaniumstop/AI-integrated-fitness-plan/internal/geminiservice"
	"github.com/titaniumstop/AI-integrated-fitness-plan/internal/planner"
	_ "github.com/joho/godotenv/autoload"
)

// Server defines the configuration and dependencies for the HTTP service.
type Server struct {
	// port specifies the TCP port the server will listen on.
	port int

	// plan handles the plan-generation endpoint.
	plan *planner.Handler

	// chat handles the conversation relay endpoint.
	chat *chat.Handler
}

// NewServer initializes a new Server instance and returns a configured *http.Server.
// It reads configuration from environment variables and sets production-ready
// network timeouts. The generation credential is read once here; it is the
// only process-wide resource and is immutable for the process lifetime.
func NewServer() *http.Server {
	// Attempt to parse port from environment; fallback to 8080 if not set or invalid.
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port == 0 {
		port = 8080
	}

	gen := geminiservice.NewClient(os.Getenv("GEMINI_API_KEY"))

	// The default generation mode is a deployment-level decision, made once
	// here rather than re-derived mid-pipeline.
	orch := planner.NewOrchestrator(gen, planner.ModeFromEnv())

	newApp := &Server{
		port: port,
		plan: planner.NewHandler(orch),
		chat: chat.NewHandler(gen),
	}

	// Configure the standard library http.Server with the application's router and timeouts.
	// WriteTimeout covers the worst sequential path (primary call + summary call).
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", newApp.port),
		Handler:      newApp.RegisterRoutes(), // Injected from routes.go
		IdleTimeout:  time.Minute,             // Time to wait for the next request on keep-alive connections.
		ReadTimeout:  10 * time.Second,        // Maximum duration for reading the entire request.
		WriteTimeout: 30 * time.Second,        // Maximum duration before timing out writes of the response.
	}

	return server
}
