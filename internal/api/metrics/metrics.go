// Package metrics defines and registers the custom Prometheus metrics of the
// auth API. It is the single source of truth for metric names, labels and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// Operation label values.
const (
	OperationSignup = "signup"
	OperationLogin  = "login"
)

// Result label values.
const (
	ResultSuccess            = "success"
	ResultAlreadyExists      = "already_exists"
	ResultNotFound           = "not_found"
	ResultInvalidCredentials = "invalid_credentials"
	ResultPersistenceError   = "persistence_error"
	ResultError              = "error"
)

// RequestsTotal counts auth operations by outcome.
// Labels:
//   - operation: "signup" or "login"
//   - result: "success", "already_exists", "not_found", "invalid_credentials",
//     "persistence_error" or "error"
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of signup and login operations, by result.",
	},
	[]string{"operation", "result"},
)

// OperationDuration measures the end-to-end latency of an auth operation,
// hashing and store round trips included.
var OperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Duration of signup and login operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)
