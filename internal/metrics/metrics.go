// Package metrics holds the Prometheus collectors shared by the RPC layer and the ledger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "splitit"

// Metrics groups every collector the service exports.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RPCRequests     *prometheus.CounterVec
	RPCDuration     *prometheus.HistogramVec
	ExpensesCreated prometheus.Counter
	SharesAllocated *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		ExpensesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_created_total",
			Help:      "Expenses committed to the ledger.",
		}),
		SharesAllocated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shares_allocated_total",
			Help:      "Shares committed to the ledger by share type.",
		}, []string{"share_type"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_cache_lookups_total",
			Help:      "Balance cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
	}

	reg.MustRegister(m.RPCRequests, m.RPCDuration, m.ExpensesCreated, m.SharesAllocated, m.CacheLookups)
	return m
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(seconds)
}

// ExpenseCreated records a committed expense and its share types.
func (m *Metrics) ExpenseCreated(shareTypes []string) {
	if m == nil {
		return
	}
	m.ExpensesCreated.Inc()
	for _, t := range shareTypes {
		m.SharesAllocated.WithLabelValues(t).Inc()
	}
}

// CacheLookup records a balance cache lookup result.
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
