package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eyeofhorus_provider_calls_total",
			Help: "Total upstream forecast provider calls",
		},
		[]string{"provider", "status"},
	)

	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "eyeofhorus_provider_latency_seconds",
			Help:    "Upstream forecast provider call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	RowsNormalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eyeofhorus_rows_normalized_total",
			Help: "Total normalized table rows produced",
		},
		[]string{"provider"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eyeofhorus_exports_total",
			Help: "Total CSV exports of normalized tables",
		},
		[]string{"status"},
	)
)
