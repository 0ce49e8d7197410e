// Package metrics defines the custom Prometheus collectors shared by the
// three apps. It is the single source of truth for metric names, labels and
// help strings.
//
// Collectors register with the default Prometheus registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inkpad"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts registration and login attempts.
// Labels:
//   - op: "register" or "login"
//   - result: "success", "failure" (bad credentials) or "conflict" (username taken)
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by outcome.",
	},
	[]string{"op", "result"},
)

// SessionsTotal counts session lifecycle events.
// Label:
//   - event: "started" or "ended"
var SessionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_total",
		Help:      "Total number of sessions started and ended.",
	},
	[]string{"event"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// ResourceMutationsTotal counts create/update/delete attempts on owned resources.
// Labels:
//   - kind: "post", "note" or "task"
//   - op: "create", "update", "complete", "reopen" or "delete"
//   - result: "success", "not_found", "unauthenticated", "unauthorized", "invalid" or "error"
var ResourceMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_mutations_total",
		Help:      "Total number of mutations on owned resources, by kind, operation and outcome.",
	},
	[]string{"kind", "op", "result"},
)
