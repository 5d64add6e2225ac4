// Package metrics defines and registers all custom Prometheus metrics for the
// menu service. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// init through promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "menu"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of staff login attempts, labelled by result.",
	},
	[]string{"result"},
)

// StaffMutationsTotal counts successful staff account changes.
// Label:
//   - op: "add", "delete" or "change_password"
var StaffMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "staff_mutations_total",
		Help:      "Total number of staff account mutations, by operation.",
	},
	[]string{"op"},
)

// ── Menu metrics ──────────────────────────────────────────────────────────────

// MenuMutationsTotal counts successful menu item changes.
// Label:
//   - op: "add", "update", "delete" or "import"
var MenuMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menu_mutations_total",
		Help:      "Total number of menu item mutations, by operation.",
	},
	[]string{"op"},
)

// ── Hashing metrics ───────────────────────────────────────────────────────────

// HashDuration measures how long a bcrypt operation takes on a pool worker.
// Label:
//   - op: "hash" or "verify"
var HashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of password hash and verify operations.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
	[]string{"op"},
)

// HashQueueDepth tracks jobs waiting for a free hashing worker.
var HashQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "password_hash_queue_depth",
		Help:      "Current number of password hashing jobs waiting for a worker.",
	},
)

// ActiveSessions tracks sessions held by the in-memory session store.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Current number of sessions held in process memory.",
	},
)
