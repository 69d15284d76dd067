package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_DomainCounters(t *testing.T) {
	m := New("appointments")

	m.ObserveBookingRequest(OutcomeSuccess)
	m.ObserveBookingRequest(OutcomeSuccess)
	m.ObserveAccept(OutcomeRejected)
	m.ObserveNotification(DeliveryDropped)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingRequestsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AcceptOutcomesTotal.WithLabelValues(OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsTotal.WithLabelValues(DeliveryDropped)))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveBookingRequest(OutcomeSuccess)
		m.ObserveAccept(OutcomeError)
		m.ObserveNotification(DeliveryDelivered)
		m.SetWebSocketClients(3)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New("appointments")
	m.ObserveAccept(OutcomeSuccess)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `booking_accept_total{outcome="success",service="appointments"} 1`)
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New("a")
		New("a")
	})
}
