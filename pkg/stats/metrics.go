package stats

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "escrow"

// LedgerMetrics collects counters about the operations served by the ledger.
// A nil *LedgerMetrics is valid and records nothing.
type LedgerMetrics struct {
	operations   *prometheus.CounterVec
	failures     *prometheus.CounterVec
	activeOrders prometheus.Gauge
}

// NewLedgerMetrics creates the ledger collectors and registers them with the
// given registerer.
func NewLedgerMetrics(registerer prometheus.Registerer) (*LedgerMetrics, error) {
	m := &LedgerMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Number of ledger operations committed, by operation.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Number of ledger operations rolled back, by operation and error kind.",
		}, []string{"operation", "kind"}),
		activeOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_orders",
			Help:      "Number of orders neither fulfilled nor refunded.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.operations, m.failures, m.activeOrders,
	} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *LedgerMetrics) ObserveSuccess(operation string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation).Inc()
}

func (m *LedgerMetrics) ObserveFailure(operation, kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(operation, kind).Inc()
}

func (m *LedgerMetrics) AddActiveOrders(delta int) {
	if m == nil {
		return
	}
	m.activeOrders.Add(float64(delta))
}

func (m *LedgerMetrics) SetActiveOrders(count int) {
	if m == nil {
		return
	}
	m.activeOrders.Set(float64(count))
}
