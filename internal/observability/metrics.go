package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AuthzDenials counts authorization failures by operation and error kind.
// Labels: operation (e.g. "accept_request"), kind (FORBIDDEN, NOT_FOUND,
// CONFLICT).
var AuthzDenials = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gather",
	Subsystem: "authz",
	Name:      "denials_total",
	Help:      "Authorization engine denials by operation and error kind.",
}, []string{"operation", "kind"})

// AuthzTransitions counts successful membership state transitions.
var AuthzTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gather",
	Subsystem: "authz",
	Name:      "transitions_total",
	Help:      "Successful membership state machine transitions.",
}, []string{"operation"})
