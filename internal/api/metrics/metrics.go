// Package metrics defines the custom Prometheus metrics of the task API.
// It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry on package init and
// are served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskmanager"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthEventsTotal counts account operations.
// Labels:
//   - event: "register", "login", "logout" or "delete"
//   - result: "success", or a short failure reason (e.g. "conflict", "invalid_credentials")
var AuthEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of account operations, by event and result.",
	},
	[]string{"event", "result"},
)

// TokensRevokedTotal counts server-side token revocations.
// Label:
//   - reason: "logout" or "user_deleted"
var TokensRevokedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of revoked tokens, by reason.",
	},
	[]string{"reason"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - priority: "1" to "5"
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// TasksDeletedTotal counts deleted tasks.
var TasksDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_deleted_total",
		Help:      "Total number of tasks deleted by their owners.",
	},
)
