package utility

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithHeaders(headers map[string]string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetRealIPPrefersForwardedFor(t *testing.T) {
	c := contextWithHeaders(map[string]string{
		"X-Forwarded-For": " 203.0.113.7 , 10.0.0.1",
		"X-Real-IP":       "10.0.0.2",
	})

	assert.Equal(t, "203.0.113.7", GetRealIP(c))
}

func TestGetRealIPFallsBackToRealIPHeader(t *testing.T) {
	c := contextWithHeaders(map[string]string{"X-Real-IP": "198.51.100.4"})

	assert.Equal(t, "198.51.100.4", GetRealIP(c))
}

func TestCheckIPRateLimitBlocksAfterWindowFills(t *testing.T) {
	ip := "192.0.2.200"

	for i := 0; i < 20; i++ {
		require.NoError(t, CheckIPRateLimit(ip), "attempt %d", i)
	}

	err := CheckIPRateLimit(ip)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many attempts")
}

func TestCheckIPRateLimitIsPerIP(t *testing.T) {
	for i := 0; i < 20; i++ {
		require.NoError(t, CheckIPRateLimit(fmt.Sprintf("192.0.2.%d", i)))
	}
}
