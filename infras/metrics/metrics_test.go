package metrics_test

import (
	"hotel/config"
	"hotel/infras/metrics"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetrics() *metrics.Metrics {
	cfg := &config.Config{}
	cfg.App.Metrics.Namespace = "hotel"

	return metrics.New(cfg)
}

func TestMetrics_RecordBooking(t *testing.T) {
	m := newMetrics()

	m.RecordBooking(metrics.OutcomeSuccess)
	m.RecordBooking(metrics.OutcomeSuccess)
	m.RecordBooking(metrics.OutcomeRejected)

	assert.InDelta(t, 2, testutil.ToFloat64(m.BookingsTotal.WithLabelValues(metrics.OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.BookingsTotal.WithLabelValues(metrics.OutcomeRejected)), 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := newMetrics()
	m.ObserveHTTP(http.MethodGet, "/v1/rooms/{id}", "200", 0.02)
	m.RecordNotification("EMAIL", metrics.OutcomeSuccess)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `hotel_http_requests_total{method="GET",path="/v1/rooms/{id}",status="200"} 1`)
	assert.Contains(t, string(body), `hotel_notifications_total{channel="EMAIL",outcome="success"} 1`)
}
