package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrdersProcessed counts total processed orders by outcome (completed/error)
var OrdersProcessed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "orderflow_orders_processed_total",
		Help: "Total number of orders processed by the engine",
	},
	[]string{"outcome"},
)

// ProcessingLatency records latency distribution for order processing
var ProcessingLatency = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "orderflow_order_processing_latency_seconds",
		Help:    "Latency in seconds to process individual orders",
		Buckets: prometheus.DefBuckets,
	},
)

// AlgorithmUsage tallies algorithm selections by kind (sort/search) and algorithm
var AlgorithmUsage = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "orderflow_algorithm_usage_total",
		Help: "Number of times each algorithm was selected",
	},
	[]string{"kind", "algorithm"},
)

// Queue depth gauges
var (
	PendingDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orderflow_pending_queue_depth",
			Help: "Number of orders waiting in the pending queue",
		},
	)

	CompletedDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orderflow_completed_queue_depth",
			Help: "Number of orders held in the completed queue",
		},
	)

	HistoryDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orderflow_history_stack_depth",
			Help: "Number of entries on the processing history stack",
		},
	)
)

func init() {
	prometheus.MustRegister(OrdersProcessed, ProcessingLatency, AlgorithmUsage)
	prometheus.MustRegister(PendingDepth, CompletedDepth, HistoryDepth)
}
