package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeNoop    = "noop"
	outcomeInvalid = "invalid"
	outcomeFailure = "failure"
)

// noteWrites counts note write operations by operation and outcome
var noteWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "product_note",
	Name:      "writes_total",
	Help:      "Product note write operations by operation and outcome.",
}, []string{"operation", "outcome"})

func observeWrite(operation, outcome string) {
	noteWrites.WithLabelValues(operation, outcome).Inc()
}
