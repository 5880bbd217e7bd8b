// Package metrics exposes engine counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus collectors
type Metrics struct {
	PurchasesFulfilled prometheus.Counter
	PurchasesFailed    prometheus.Counter
	TransfersExecuted  prometheus.Counter
	Recommendations    *prometheus.CounterVec
}

// New registers the engine collectors on reg and returns them
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PurchasesFulfilled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecostock_purchases_fulfilled_total",
			Help: "Purchases routed and committed to a fulfillment store.",
		}),
		PurchasesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecostock_purchases_failed_total",
			Help: "Purchases that could not be fulfilled by any store.",
		}),
		TransfersExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecostock_transfers_executed_total",
			Help: "Stock transfers applied to inventory.",
		}),
		Recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ecostock_recommendations_total",
			Help: "Recommendation lifecycle events by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.PurchasesFulfilled,
		m.PurchasesFailed,
		m.TransfersExecuted,
		m.Recommendations,
	)
	return m
}
