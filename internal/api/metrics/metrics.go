// Package metrics defines all custom Prometheus metrics for the supply chain
// console API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics route is wired by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scm_console"

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

// RecordWritesTotal counts successful record mutations.
// Labels:
//   - entity: "inventory", "supplier", or "order"
//   - op: "create", "update", or "delete"
var RecordWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_writes_total",
		Help:      "Total number of successful record mutations, by entity and operation.",
	},
	[]string{"entity", "op"},
)

// ValidationFailuresTotal counts mutations rejected by field validation.
// Label:
//   - entity: the record type whose payload failed validation
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of record mutations rejected by validation.",
	},
	[]string{"entity"},
)

// ActivityEntriesTotal counts audit trail appends.
// Label:
//   - action: the recorded action verb (e.g. "login", "update", "delete")
var ActivityEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_entries_total",
		Help:      "Total number of audit trail entries appended, by action.",
	},
	[]string{"action"},
)
