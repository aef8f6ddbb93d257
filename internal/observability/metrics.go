// Package observability registers process-wide prometheus metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registrationsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitnesstrackr",
		Subsystem: "identity",
		Name:      "registrations_total",
		Help:      "Number of successfully registered users.",
	})
	loginsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitnesstrackr",
		Subsystem: "identity",
		Name:      "logins_total",
		Help:      "Number of login attempts, labeled by outcome.",
	}, []string{"outcome"})
	authDeniedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitnesstrackr",
		Subsystem: "api",
		Name:      "auth_denied_total",
		Help:      "Number of requests rejected for missing credentials or failed ownership checks, labeled by kind.",
	}, []string{"kind"})
	routinePersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fitnesstrackr",
		Subsystem: "persistence",
		Name:      "last_routine_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent routine persisted to Postgres.",
	})
)

func init() {
	prometheus.MustRegister(registrationsCounter, loginsCounter, authDeniedCounter, routinePersistGauge)
}

// RecordRegistration counts a successful registration.
func RecordRegistration() {
	registrationsCounter.Inc()
}

// RecordLogin counts a login attempt by outcome ("success" or "failure").
func RecordLogin(outcome string) {
	loginsCounter.WithLabelValues(outcome).Inc()
}

// RecordAuthDenied counts a 401 ("unauthenticated") or 403 ("forbidden").
func RecordAuthDenied(kind string) {
	authDeniedCounter.WithLabelValues(kind).Inc()
}

// RecordRoutinePersisted updates the persistence watermark gauge.
func RecordRoutinePersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	routinePersistGauge.Set(float64(ts.Unix()))
}
