// Package metrics defines and registers all custom Prometheus metrics for the
// clinic administration API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init and
// are exposed through the /metrics endpoint wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clinic"

// ── Signin metrics ────────────────────────────────────────────────────────────

// SigninAttemptsTotal counts signin attempts by outcome.
// Labels:
//   - result: "success", "invalid_credentials", "throttled", or "error"
var SigninAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signin_attempts_total",
		Help:      "Total number of signin attempts, by result.",
	},
	[]string{"result"},
)

// ── Registration metrics ──────────────────────────────────────────────────────

// RegistrationsTotal counts completed registrations.
// Labels:
//   - kind: "customer" or "clinic"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of completed registrations, by account kind.",
	},
	[]string{"kind"},
)

// RegistrationConflictsTotal counts signups rejected by a uniqueness check.
// Labels:
//   - field: "username", "email", "clinic_name", or "clinic_email"
var RegistrationConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registration_conflicts_total",
		Help:      "Total number of signups rejected because a uniqueness check failed.",
	},
	[]string{"field"},
)

// RegistrationDuration measures how long a signup takes end-to-end, including
// password hashing and (for customers) notification delivery.
// Labels:
//   - kind: "customer" or "clinic"
var RegistrationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "registration_duration_seconds",
		Help:      "Duration of registration requests from handler entry to persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"kind"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationFailuresTotal counts password emails that failed to send after
// the customer was already persisted.
var NotificationFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of password notifications that failed after persistence.",
	},
)
