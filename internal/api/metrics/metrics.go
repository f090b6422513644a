// Package metrics defines and registers all custom Prometheus metrics for the
// StudyOverflow gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at package init; the router
// exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gateway"

// ── Upstream client metrics ───────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the forum API.
// Labels:
//   - method: HTTP verb
//   - status: numeric response status, or "error" for transport failures
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the upstream forum API.",
	},
	[]string{"method", "status"},
)

// UpstreamRequestDuration measures upstream call latency end-to-end.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream forum API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Session / guard metrics ───────────────────────────────────────────────────

// LoginRedirectsTotal counts redirects issued because a session turned out to
// be unauthenticated or under-privileged.
// Label:
//   - reason: "unauthenticated" or "forbidden"
var LoginRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_redirects_total",
		Help:      "Total number of guard redirects, by reason.",
	},
	[]string{"reason"},
)

// ── Toast metrics ─────────────────────────────────────────────────────────────

// ToastsShownTotal counts toasts enqueued on the notification bus.
// Label:
//   - kind: success, error, warning, info
var ToastsShownTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "toasts_shown_total",
		Help:      "Total number of toasts enqueued, by kind.",
	},
	[]string{"kind"},
)

// ── Interaction metrics ───────────────────────────────────────────────────────

// VotesSubmittedTotal counts accepted votes by the action the upstream took.
// Label:
//   - action: created, updated, removed
var VotesSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_submitted_total",
		Help:      "Total number of votes the upstream accepted, by action.",
	},
	[]string{"action"},
)
