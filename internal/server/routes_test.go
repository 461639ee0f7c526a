package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/titaniumstop/AI-integrated-fitness-plan/internal/chat"
	"github.com/titaniumstop/AI-integrated-fitness-plan/internal/geminiservice"
	"github.com/titaniumstop/AI-integrated-fitness-plan/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter() http.Handler {
	gen := geminiservice.NewClient("test-key")
	s := &Server{
		port: 8080,
		plan: planner.NewHandler(planner.NewOrchestrator(gen, planner.ModeStandard)),
		chat: chat.NewHandler(gen),
	}
	return s.RegisterRoutes()
}

func TestHealthRoute(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "cpu_load")
	assert.Contains(t, body, "ram_usage")
}

func TestPlanRouteRejectsNonPost(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/generate-plan", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestChatRouteRejectsNonPost(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodPut, "/api/chat", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDHeaderIsEchoed(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}
