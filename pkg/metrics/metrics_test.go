package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := New("barber-bot", prometheus.NewRegistry())

	m.IncBookingCreated()
	m.IncBookingCreated()
	m.IncBookingConflict()
	m.IncNotificationFailed()
	m.ObserveTransition("choosing_date", "choosing_time")
	m.ObserveDBQuery("exec", time.Millisecond, errors.New("boom"))
	m.ObserveHTTPRequest("POST", "/api/v1/sessions", 201, 5*time.Millisecond)
	m.SetDBConnections(3, 1, 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCreated.WithLabelValues("barber-bot")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingConflicts.WithLabelValues("barber-bot")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notificationsFailed.WithLabelValues("barber-bot")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dialogueTransitions.WithLabelValues("barber-bot", "choosing_date", "choosing_time")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("barber-bot", "exec")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("barber-bot", "POST", "/api/v1/sessions", "201")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dbConnections.WithLabelValues("barber-bot", "idle")))
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingCreated()
		m.IncBookingConflict()
		m.IncNotificationFailed()
		m.ObserveTransition("a", "b")
		m.ObserveDBQuery("query", time.Second, nil)
		m.ObserveHTTPRequest("GET", "/", 200, time.Second)
		m.SetDBConnections(0, 0, 0)
	})
}
