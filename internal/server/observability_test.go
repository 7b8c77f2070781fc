package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func fullStackApp(t *testing.T) *fiber.App {
	t.Helper()
	s, _ := setupHandlerTestServer(t)
	app := fiber.New()
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

func TestMetricsEndpointRegistered(t *testing.T) {
	app := fullStackApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "parley_messages_sent_total")
}

func TestRequestsCarryTraceID(t *testing.T) {
	app := fullStackApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, resp.Header.Get("X-Trace-ID"), 32)
}
