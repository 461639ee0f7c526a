// Package chat relays coaching conversations to the generation service. It
// keeps no conversation state of its own: the client sends prior turns on
// every request and the relay grounds them with the profile and plan.
package chat

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/titaniumstop/AI-integrated-fitness-plan/internal/geminiservice"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	// Long plans are trimmed before injection so grounding context cannot
	// crowd out the conversation itself.
	maxPlanContextChars = 4000

	chatTimeout = 20 * time.Second
)

var chatConfig = geminiservice.GenerationConfig{MaxOutputTokens: 512, Temperature: 0.6, TopP: 0.9}

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Message string         `json:"message"`
	History []Turn         `json:"history"`
	Profile map[string]any `json:"profile"`
	Plan    string         `json:"plan"`
}

type Response struct {
	Success bool   `json:"success"`
	Reply   string `json:"reply,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// Generator is the outbound seam to the generation service; satisfied by
// geminiservice.Client and by test stubs.
type Generator interface {
	Generate(ctx context.Context, contents []geminiservice.Content, cfg *geminiservice.GenerationConfig, timeout time.Duration) geminiservice.Outcome
}

// BuildContents assembles the conversation sent upstream: grounding context
// (profile + truncated plan) as a leading user turn, then the prior turns,
// then the current message.
func BuildContents(req Request) []geminiservice.Content {
	var contents []geminiservice.Content

	var contextLines []string
	if len(req.Profile) > 0 {
		contextLines = append(contextLines, "USER PROFILE:")
		// Sorted so identical requests produce identical prompts.
		keys := make([]string, 0, len(req.Profile))
		for k := range req.Profile {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := req.Profile[k]
			if v == nil || v == "" {
				continue
			}
			contextLines = append(contextLines, fmt.Sprintf("- %s: %v", k, v))
		}
	}
	if req.Plan != "" {
		plan := req.Plan
		if len(plan) > maxPlanContextChars {
			plan = plan[:maxPlanContextChars] + "... [truncated]"
		}
		contextLines = append(contextLines, "", "GENERATED PLAN (summary text):", plan)
	}
	if len(contextLines) > 0 {
		contents = append(contents, geminiservice.Content{
			Role:  "user",
			Parts: []geminiservice.Part{{Text: strings.Join(contextLines, "\n")}},
		})
	}

	for _, turn := range req.History {
		if turn.Role == "" || turn.Content == "" {
			continue
		}
		role := "user"
		if turn.Role == "model" {
			role = "model"
		}
		contents = append(contents, geminiservice.Content{
			Role:  role,
			Parts: []geminiservice.Part{{Text: turn.Content}},
		})
	}

	contents = append(contents, geminiservice.Content{
		Role:  "user",
		Parts: []geminiservice.Part{{Text: req.Message}},
	})

	return contents
}

// Handler exposes the relay over HTTP.
type Handler struct {
	gen Generator
}

func NewHandler(gen Generator) *Handler {
	return &Handler{gen: gen}
}

func (h *Handler) ChatHandler(c echo.Context) error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		log.Error().Msg("FATAL: GEMINI_API_KEY environment variable is not set.")
		return c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "Missing GEMINI_API_KEY"})
	}

	var req Request
	if err := c.Bind(&req); err != nil {
		req = Request{}
	}
	req.Message = strings.TrimSpace(req.Message)

	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, Response{Success: false, Error: "Missing required field: message"})
	}

	outcome := h.gen.Generate(c.Request().Context(), BuildContents(req), &chatConfig, chatTimeout)
	if !outcome.OK() {
		log.Error().Err(outcome.Err).Msg("Chat relay upstream call failed")
		return c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Chat failed",
			Details: outcome.Message(),
		})
	}

	return c.JSON(http.StatusOK, Response{Success: true, Reply: outcome.Text})
}
