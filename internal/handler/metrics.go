package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ordersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "delivery_service",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Total number of orders created",
		},
	)

	ordersAssigned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "delivery_service",
			Subsystem: "orders",
			Name:      "assigned_total",
			Help:      "Total number of orders assigned to riders",
		},
	)

	assignConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "delivery_service",
			Subsystem: "orders",
			Name:      "assign_conflicts_total",
			Help:      "Total number of assignment attempts rejected because the order was not pending",
		},
	)

	ridersRegistered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "delivery_service",
			Subsystem: "riders",
			Name:      "registered_total",
			Help:      "Total number of rider registrations",
		},
	)

	riderLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "delivery_service",
			Subsystem: "riders",
			Name:      "logins_total",
			Help:      "Total number of rider login attempts",
		},
		[]string{"status"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		ordersCreated,
		ordersAssigned,
		assignConflicts,

		ridersRegistered,
		riderLogins,
	)
}
