package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/health")

	assert.Equal(t, http.StatusOK, resp.Code)

	healthResp := decode[HealthResponse](t, resp)
	assert.Equal(t, "healthy", healthResp.Status)
	assert.Equal(t, "healthy", healthResp.Components["database"].Status)
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	ts := setupTestServer(t)
	ts.cleanup()

	resp := ts.api.Get("/health")

	assert.Equal(t, http.StatusOK, resp.Code)

	healthResp := decode[HealthResponse](t, resp)
	assert.Equal(t, "unhealthy", healthResp.Status)
	assert.Equal(t, "database unreachable", healthResp.Components["database"].Message)
}
