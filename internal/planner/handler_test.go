package planner

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/titaniumstop/AI-integrated-fitness-plan/internal/geminiservice"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBody = `{
	"age": 30,
	"biologicalSex": "male",
	"height": 180,
	"weight": 80,
	"fitnessExperience": "intermediate",
	"fitnessGoals": "weight loss"
}`

func doPlanRequest(t *testing.T, h *Handler, body, clientIP string) (*httptest.ResponseRecorder, PlanResult) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/generate-plan", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	// Distinct per-test IPs keep the shared rate limiter out of the way.
	req.Header.Set("X-Real-IP", clientIP)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.GeneratePlanHandler(c))

	var result PlanResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return rec, result
}

func TestGeneratePlanHandlerSuccess(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	gen := &stubGenerator{outcomes: []geminiservice.Outcome{success("the plan"), success("the summary")}}
	h := NewHandler(NewOrchestrator(gen, ModeStandard))

	rec, result := doPlanRequest(t, h, validBody, "10.1.0.1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, result.Success)
	assert.Equal(t, "the plan", result.Plan)
	assert.Equal(t, "the summary", result.Summary)
	assert.Empty(t, result.Note)
}

func TestGeneratePlanHandlerEmptyBody(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	h := NewHandler(NewOrchestrator(&stubGenerator{}, ModeStandard))

	rec, result := doPlanRequest(t, h, "", "10.1.0.2")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, result.Success)
	assert.Equal(t, "Missing required fields", result.Error)
	assert.Equal(t, "age, biologicalSex, height, weight, fitnessExperience, fitnessGoals", result.Details)
}

func TestGeneratePlanHandlerPartialBody(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	h := NewHandler(NewOrchestrator(&stubGenerator{}, ModeStandard))

	rec, result := doPlanRequest(t, h, `{"age": 30, "weight": 80}`, "10.1.0.3")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "biologicalSex, height, fitnessExperience, fitnessGoals", result.Details)
}

func TestGeneratePlanHandlerMissingCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	h := NewHandler(NewOrchestrator(&stubGenerator{}, ModeStandard))

	rec, result := doPlanRequest(t, h, validBody, "10.1.0.4")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, result.Success)
	assert.Equal(t, "Missing GEMINI_API_KEY", result.Error)
}

func TestGeneratePlanHandlerConciseFallbackStays200(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	gen := &stubGenerator{outcomes: []geminiservice.Outcome{timeoutOutcome(), success("summary")}}
	h := NewHandler(NewOrchestrator(gen, ModeConcise))

	rec, result := doPlanRequest(t, h, validBody, "10.1.0.5")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Note)
	assert.Contains(t, result.Plan, "Day 7")
}

func TestGeneratePlanHandlerStandardFailureIs500(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	gen := &stubGenerator{outcomes: []geminiservice.Outcome{
		{Kind: geminiservice.OutcomeEmpty, Err: fmt.Errorf("no content found in Gemini response")},
	}}
	h := NewHandler(NewOrchestrator(gen, ModeStandard))

	rec, result := doPlanRequest(t, h, validBody, "10.1.0.6")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, result.Success)
	assert.Equal(t, "Failed to generate fitness plan", result.Error)
	assert.Contains(t, result.Details, "no content found")
}

func TestGeneratePlanHandlerConciseFlagInBody(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	gen := &stubGenerator{outcomes: []geminiservice.Outcome{success("plan"), success("summary")}}
	h := NewHandler(NewOrchestrator(gen, ModeStandard))

	body := strings.TrimSuffix(validBody, "\n}") + `,
	"concise": true
}`
	rec, _ := doPlanRequest(t, h, body, "10.1.0.7")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, gen.calls, 2)
	assert.Contains(t, gen.calls[0].prompt, "CONCISE MODE")
}

func TestModeFromEnv(t *testing.T) {
	t.Setenv("LOCAL_MODE", "")
	assert.Equal(t, ModeStandard, ModeFromEnv())

	t.Setenv("LOCAL_MODE", "1")
	assert.Equal(t, ModeConcise, ModeFromEnv())
}
