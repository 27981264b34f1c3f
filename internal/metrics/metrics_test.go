package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, collector *Collector) string {
	t.Helper()

	rr := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestCollectorRecordsHTTPMetrics(t *testing.T) {
	collector, err := NewCollector()
	require.NoError(t, err)

	handlerInvoked := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerInvoked = true
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rr := httptest.NewRecorder()
	collector.InstrumentHandler(handler).ServeHTTP(rr, req)

	require.True(t, handlerInvoked, "wrapped handler should be invoked")
	assert.Equal(t, http.StatusAccepted, rr.Code)

	body := scrape(t, collector)
	assert.Contains(t, body, `visibilitybot_http_requests_total{method="GET",path="/status",status="202"} 1`)
	assert.Contains(t, body, `visibilitybot_http_request_duration_seconds_count{method="GET",path="/status",status="202"} 1`)
}

func TestCollectorRecordsQueryMetrics(t *testing.T) {
	collector, err := NewCollector()
	require.NoError(t, err)

	collector.ObserveQuery("openai", 120*time.Millisecond, false)
	collector.ObserveQuery("openai", 80*time.Millisecond, false)
	collector.ObserveQuery("openai", 30*time.Second, true)

	body := scrape(t, collector)
	assert.Contains(t, body, `visibilitybot_platform_queries_total{platform="openai"} 3`)
	assert.Contains(t, body, `visibilitybot_platform_query_errors_total{platform="openai"} 1`)
	assert.Contains(t, body, `visibilitybot_platform_query_duration_seconds_count{platform="openai"} 3`)
}

func TestCollectorRecordsPipelineMetrics(t *testing.T) {
	collector, err := NewCollector()
	require.NoError(t, err)

	collector.ObserveRun("success", 42*time.Second)
	collector.ObserveRun("failure", time.Second)
	collector.SetVisibilityScore("Acme Corp", 72.5)

	body := scrape(t, collector)
	assert.Contains(t, body, `visibilitybot_pipeline_runs_total{status="success"} 1`)
	assert.Contains(t, body, `visibilitybot_pipeline_runs_total{status="failure"} 1`)
	assert.Contains(t, body, `visibilitybot_pipeline_visibility_score{brand="Acme Corp"} 72.5`)
}
