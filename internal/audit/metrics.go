package audit

import "github.com/prometheus/client_golang/prometheus"

const namespace = "iou_ledger"

// Metrics holds the Prometheus collectors updated by the Recorder.
type Metrics struct {
	operations *prometheus.CounterVec
	amounts    prometheus.Histogram
	parties    prometheus.Gauge
}

// NewMetrics creates the ledger collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Ledger operations by operation and result.",
		}, []string{"operation", "result"}),
		amounts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "iou_amount",
			Help:      "Amounts of successfully recorded IOUs.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		parties: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "parties",
			Help:      "Number of registered parties.",
		}),
	}
	reg.MustRegister(m.operations, m.amounts, m.parties)
	return m
}

func (m *Metrics) observe(op, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result).Inc()
}
