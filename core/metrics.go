package core

import "github.com/prometheus/client_golang/prometheus"

// GraphMetrics is optional Prometheus instrumentation for a Graph. A nil
// *GraphMetrics is always safe to call into, so instrumentation never
// becomes a correctness dependency.
type GraphMetrics struct {
	nodeCount prometheus.Gauge
	edgeCount prometheus.Gauge
}

// NewGraphMetrics registers and returns graph-size gauges on reg. Pass a
// dedicated *prometheus.Registry (or prometheus.NewRegistry()) per process;
// passing nil disables instrumentation entirely.
func NewGraphMetrics(reg prometheus.Registerer) *GraphMetrics {
	if reg == nil {
		return nil
	}
	m := &GraphMetrics{
		nodeCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "assetprov",
			Subsystem: "graph",
			Name:      "nodes",
			Help:      "Number of nodes currently held in the relationship graph.",
		}),
		edgeCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "assetprov",
			Subsystem: "graph",
			Name:      "edges",
			Help:      "Number of edges currently held in the relationship graph.",
		}),
	}
	reg.MustRegister(m.nodeCount, m.edgeCount)
	return m
}

func (m *GraphMetrics) observeNodeCount(n int) {
	if m == nil {
		return
	}
	m.nodeCount.Set(float64(n))
}

func (m *GraphMetrics) observeEdgeCount(n int) {
	if m == nil {
		return
	}
	m.edgeCount.Set(float64(n))
}

// IdentifierMetrics instruments identifier derivation, registered
// independently of any particular Graph instance.
type IdentifierMetrics struct {
	derived *prometheus.CounterVec
}

// NewIdentifierMetrics registers an identifier-derivation counter vector,
// labeled by resource type. Passing nil disables instrumentation.
func NewIdentifierMetrics(reg prometheus.Registerer) *IdentifierMetrics {
	if reg == nil {
		return nil
	}
	m := &IdentifierMetrics{
		derived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetprov",
			Subsystem: "identifier",
			Name:      "derived_total",
			Help:      "Number of identifiers derived, labeled by resource type.",
		}, []string{"resource_type"}),
	}
	reg.MustRegister(m.derived)
	return m
}

// ObserveDerived records one successful identifier derivation for rt. Safe
// on a nil receiver.
func (m *IdentifierMetrics) ObserveDerived(rt ResourceType) {
	if m == nil {
		return
	}
	m.derived.WithLabelValues(string(rt)).Inc()
}
