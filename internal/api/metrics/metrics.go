// Package metrics defines and registers the custom Prometheus metrics for
// cargo-desk. HTTP request metrics come from echoprometheus; everything here
// is domain-level.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cargodesk"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts accounts created through self-registration.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user registrations.",
	},
)

// RateLimitedTotal counts requests rejected with 429.
// Label:
//   - limiter: "login" or "public"
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by a rate limiter.",
	},
	[]string{"limiter"},
)

// ── Request metrics ───────────────────────────────────────────────────────────

// RequestsCreatedTotal counts newly created shipment requests.
// Labels:
//   - category: "astana" or "intercity"
//   - source: "staff" or "public"
var RequestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Total number of shipment requests created, by category and source.",
	},
	[]string{"category", "source"},
)

// StatusChangesTotal counts status updates.
// Label:
//   - status: the new status
var StatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_changes_total",
		Help:      "Total number of request status changes, by new status.",
	},
	[]string{"status"},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityWriteFailuresTotal counts audit entries that could not be written.
var ActivityWriteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_write_failures_total",
		Help:      "Total number of activity log entries dropped because the write failed.",
	},
)
