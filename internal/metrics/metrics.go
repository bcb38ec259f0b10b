package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrdersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurante_orders_created_total",
			Help: "Orders created, by order type",
		},
		[]string{"order_type"},
	)

	OrderRevenueCents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurante_order_revenue_cents_total",
			Help: "Sum of order totals in cents, including items appended to open comandas",
		},
		[]string{"order_type"},
	)

	ComandaMerges = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "restaurante_comanda_merges_total",
			Help: "Orders merged into an already open comanda",
		},
	)

	ComandasClosed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "restaurante_comandas_closed_total",
			Help: "Comandas moved to encerrada",
		},
	)

	ConflictRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurante_conflict_retries_total",
			Help: "Transactions retried after a unique index conflict",
		},
		[]string{"op"},
	)

	MenuCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restaurante_menu_cache_lookups_total",
			Help: "Menu cache lookups by result",
		},
		[]string{"result"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "restaurante_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		OrdersCreated,
		OrderRevenueCents,
		ComandaMerges,
		ComandasClosed,
		ConflictRetries,
		MenuCacheLookups,
		HTTPRequestDuration,
	)
}
