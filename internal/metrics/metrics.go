// Package metrics defines the Prometheus instruments exposed on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	DeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deliveries_total",
			Help: "Total number of delivery outcomes applied, by outcome",
		},
		[]string{"outcome"},
	)

	DeliveryValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_validation_failures_total",
			Help: "Total number of delivery requests rejected by a validation rule",
		},
		[]string{"rule"},
	)

	DeliveryConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "delivery_conflicts_total",
			Help: "Total number of delivery commits rejected by the conditional write",
		},
	)

	BulkDeliveriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bulk_deliveries_total",
			Help: "Total number of bulk delivery batches processed",
		},
	)

	AnalyticsPublishFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "analytics_publish_failures_total",
			Help: "Total number of analytics events that could not be published",
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(DeliveriesTotal)
	prometheus.MustRegister(DeliveryValidationFailuresTotal)
	prometheus.MustRegister(DeliveryConflictsTotal)
	prometheus.MustRegister(BulkDeliveriesTotal)
	prometheus.MustRegister(AnalyticsPublishFailuresTotal)
}
