package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkHealth(t *testing.T, h *HealthChecker) (int, HealthStatus) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var status HealthStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	return rec.Code, status
}

func TestHealthyAfterScan(t *testing.T) {
	h := NewHealthChecker()
	h.SetConnected(true)
	h.MarkScan()

	code, status := checkHealth(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", status.Status)
	assert.True(t, status.IsConnected)
	assert.False(t, status.LastScan.IsZero())
}

func TestDegradedWhenDisconnected(t *testing.T) {
	h := NewHealthChecker()
	h.SetConnected(false)
	h.MarkScan()

	code, status := checkHealth(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", status.Status)
}

func TestDegradedWithoutRecentScan(t *testing.T) {
	h := NewHealthChecker()
	h.SetConnected(true)

	code, status := checkHealth(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", status.Status)
}

func TestUnhealthyWithErrors(t *testing.T) {
	h := NewHealthChecker()
	h.SetConnected(true)
	h.MarkScan()
	h.RecordError("kline fetch failed")

	code, status := checkHealth(t, h)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "unhealthy", status.Status)
	assert.Contains(t, status.Errors, "kline fetch failed")
}

func TestErrorListCapAndClear(t *testing.T) {
	h := NewHealthChecker()
	h.SetConnected(true)
	h.MarkScan()

	for i := 0; i < 15; i++ {
		h.RecordError("err")
	}
	_, status := checkHealth(t, h)
	assert.Len(t, status.Errors, 10)

	h.ClearErrors()
	code, status := checkHealth(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, status.Errors)
}
