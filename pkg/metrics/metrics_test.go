package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordClaim(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "study-slots")

	m.RecordClaim(ClaimResultCreated)
	m.RecordClaim(ClaimResultTaken)
	m.RecordClaim(ClaimResultTaken)

	require.Equal(t, float64(1), testutil.ToFloat64(m.SlotClaimsTotal.WithLabelValues(ClaimResultCreated)))
	require.Equal(t, float64(2), testutil.ToFloat64(m.SlotClaimsTotal.WithLabelValues(ClaimResultTaken)))
}

func TestObserveHTTPRequest(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "study-slots")

	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/bookings/date/{date}", http.StatusOK, 10*time.Millisecond)

	require.Equal(t, float64(1), testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/bookings/date/{date}", "200")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	require.NotPanics(t, func() {
		m.RecordClaim(ClaimResultError)
		m.RecordRelease()
		m.ObserveQuery("select", time.Millisecond)
		m.ObserveHTTPRequest(http.MethodPost, "/", http.StatusCreated, time.Millisecond)
	})
}
