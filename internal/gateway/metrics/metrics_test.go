package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/gateway/metrics"
)

func TestMetrics(t *testing.T) {
	m := metrics.New()

	m.ObserveRequest(http.MethodPost, "/login", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/login", http.StatusOK, 20*time.Millisecond)
	m.RateLimitHit("/login")

	count, err := testutil.GatherAndCount(m.Registry(), "notekeeper_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `notekeeper_http_requests_total{method="POST",route="/login",status="200"} 2`)
	assert.Contains(t, string(body), `notekeeper_rate_limit_hits_total{route="/login"} 1`)
	assert.Contains(t, string(body), "notekeeper_http_request_duration_seconds_bucket")
}
