package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Ledger
	GrantsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "currency_grants_total",
			Help: "Total successful currency grants",
		},
	)
	GrantsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "currency_grants_failed_total",
			Help: "Total failed currency grants",
		},
	)
	GrantAmount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "currency_grant_amount",
			Help:    "Distribution of granted ledger units",
			Buckets: []float64{10, 100, 1_000, 10_000, 100_000, 1_000_000},
		},
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(GrantsTotal)
	prometheus.MustRegister(GrantsFailed)
	prometheus.MustRegister(GrantAmount)
	prometheus.MustRegister(WorkerQueueDepth)
}
