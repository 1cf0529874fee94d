package core

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestGraphMetricsNilRegistererDisablesInstrumentation(t *testing.T) {
	if m := NewGraphMetrics(nil); m != nil {
		t.Fatal("expected nil GraphMetrics when registerer is nil")
	}
}

func TestNilGraphMetricsMethodsAreSafe(t *testing.T) {
	var m *GraphMetrics
	m.observeNodeCount(5)
	m.observeEdgeCount(3)
}

func TestGraphMetricsObservesCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewGraphMetrics(reg)
	if m == nil {
		t.Fatal("expected non-nil GraphMetrics")
	}
	g := NewGraph(nil, m)
	g.AddNode("a", EntityTextContent, "", nil)
	g.AddNode("b", EntityTextContent, "", nil)
	g.AddEdge("a", "b", RelContains, nil)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(metrics) == 0 {
		t.Fatal("expected registered metrics to be gathered")
	}
}

func TestIdentifierMetricsNilRegistererDisablesInstrumentation(t *testing.T) {
	if m := NewIdentifierMetrics(nil); m != nil {
		t.Fatal("expected nil IdentifierMetrics when registerer is nil")
	}
}

func TestNilIdentifierMetricsObserveIsSafe(t *testing.T) {
	var m *IdentifierMetrics
	m.ObserveDerived(ResourceText)
}

func TestIdentifierMetricsObservesDerivation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewIdentifierMetrics(reg)
	if m == nil {
		t.Fatal("expected non-nil IdentifierMetrics")
	}
	m.ObserveDerived(ResourceText)
	m.ObserveDerived(ResourceText)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(metrics) == 0 {
		t.Fatal("expected registered metrics to be gathered")
	}
}
