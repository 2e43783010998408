package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bbcd/internal/testutil"
)

func TestHealthController_Health(t *testing.T) {
	svc := &testutil.MockRoundService{CountValue: 17, LatestRound: sampleRound("r17")}
	hc := NewHealthController(svc)

	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(17), resp.RoundsToday)
	assert.Equal(t, "r17", resp.LatestRoundID)
	assert.Equal(t, "Tie", resp.LatestOutcome)
	assert.GreaterOrEqual(t, resp.UptimeSeconds, 0.0)
}

func TestHealthController_HealthNoRounds(t *testing.T) {
	hc := NewHealthController(&testutil.MockRoundService{})

	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "latest_round_id")
	assert.Contains(t, rec.Body.String(), `"rounds_today":0`)
}

func TestHealthController_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(&testutil.MockRoundService{})

	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h0m0s", formatDuration(0))
	assert.Equal(t, "0h1m5s", formatDuration(65*time.Second))
	assert.Equal(t, "25h0m1s", formatDuration(25*time.Hour+time.Second))
}
