package planner

import (
	"net/http"
	"os"

	"github.com/titaniumstop/AI-integrated-fitness-plan/internal/utility"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Handler exposes the plan-generation pipeline over HTTP.
type Handler struct {
	orch *Orchestrator
}

func NewHandler(orch *Orchestrator) *Handler {
	return &Handler{orch: orch}
}

// GeneratePlanHandler runs the full pipeline for one request:
// validation → targets → prompt → generation → summary.
func (h *Handler) GeneratePlanHandler(c echo.Context) error {
	if err := utility.CheckIPRateLimit(utility.GetRealIP(c)); err != nil {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": err.Error()})
	}

	if os.Getenv("GEMINI_API_KEY") == "" {
		log.Error().Msg("FATAL: GEMINI_API_KEY environment variable is not set.")
		return c.JSON(http.StatusInternalServerError, PlanResult{
			Success: false,
			Error:   "Missing GEMINI_API_KEY",
		})
	}

	// A malformed or empty body behaves like an empty object, so the
	// validation gate reports every required field as missing.
	var raw map[string]any
	if err := c.Bind(&raw); err != nil {
		raw = map[string]any{}
	}

	if verr := ValidateRequired(raw); verr != nil {
		return c.JSON(http.StatusBadRequest, PlanResult{
			Success: false,
			Error:   "Missing required fields",
			Details: verr.Details(),
		})
	}

	profile := ProfileFromRaw(raw)
	result := h.orch.GeneratePlan(c.Request().Context(), profile, toBool(raw["concise"]))

	if !result.Success {
		return c.JSON(http.StatusInternalServerError, result)
	}
	return c.JSON(http.StatusOK, result)
}
