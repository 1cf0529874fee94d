package core

import (
	"errors"
	"testing"
)

func TestAddNodePreservesCreatedAtOnReplace(t *testing.T) {
	g := NewGraph(nil, nil)
	n1, err := g.AddNode("a", EntityTextContent, "first", nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	n2, err := g.AddNode("a", EntityTextContent, "second", nil)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !n2.CreatedAt.Equal(n1.CreatedAt) {
		t.Fatal("expected CreatedAt to be preserved across replace")
	}
	if n2.Label != "second" {
		t.Fatalf("expected label to be updated, got %q", n2.Label)
	}
	if g.NodeCount() != 1 {
		t.Fatalf("expected 1 node after replace, got %d", g.NodeCount())
	}
}

func TestAddNodeRejectsUnknownEntityType(t *testing.T) {
	g := NewGraph(nil, nil)
	if _, err := g.AddNode("a", EntityType("bogus"), "", nil); !errors.Is(err, ErrUnsupportedEntityType) {
		t.Fatalf("expected ErrUnsupportedEntityType, got %v", err)
	}
}

func TestAddEdgeRejectsUnknownRelationshipType(t *testing.T) {
	g := NewGraph(nil, nil)
	g.AddNode("a", EntityTextContent, "", nil)
	g.AddNode("b", EntityTextContent, "", nil)
	if _, err := g.AddEdge("a", "b", RelationshipType("bogus"), nil); !errors.Is(err, ErrUnsupportedRelationshipType) {
		t.Fatalf("expected ErrUnsupportedRelationshipType, got %v", err)
	}
}

func TestAddEdgeRequiresBothEndpoints(t *testing.T) {
	g := NewGraph(nil, nil)
	g.AddNode("a", EntityTextContent, "", nil)
	if _, err := g.AddEdge("a", "missing", RelContains, nil); !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestAddEdgeMergesPropertiesOnDuplicate(t *testing.T) {
	g := NewGraph(nil, nil)
	g.AddNode("a", EntityTextContent, "", nil)
	g.AddNode("b", EntityTextContent, "", nil)
	g.AddEdge("a", "b", RelContains, map[string]interface{}{"x": 1})
	g.AddEdge("a", "b", RelContains, map[string]interface{}{"y": 2})

	if g.EdgeCount() != 1 {
		t.Fatalf("expected duplicate edge to merge, got %d edges", g.EdgeCount())
	}
	edges := g.GetEdges("a", DirOutgoing)
	if len(edges) != 1 {
		t.Fatalf("expected 1 outgoing edge, got %d", len(edges))
	}
	if edges[0].Properties["x"] != 1 || edges[0].Properties["y"] != 2 {
		t.Fatalf("expected merged properties, got %v", edges[0].Properties)
	}
}

func TestRemoveNodeCascadesEdges(t *testing.T) {
	g := NewGraph(nil, nil)
	g.AddNode("a", EntityTextContent, "", nil)
	g.AddNode("b", EntityTextContent, "", nil)
	g.AddNode("c", EntityTextContent, "", nil)
	g.AddEdge("a", "b", RelContains, nil)
	g.AddEdge("b", "c", RelContains, nil)

	if err := g.RemoveNode("b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Fatalf("expected 2 nodes remaining, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 0 {
		t.Fatalf("expected both incident edges removed, got %d", g.EdgeCount())
	}
}

func TestRemoveEdgeByTypeAndByPairWildcard(t *testing.T) {
	g := NewGraph(nil, nil)
	g.AddNode("a", EntityTextContent, "", nil)
	g.AddNode("b", EntityTextContent, "", nil)
	g.AddEdge("a", "b", RelContains, nil)
	g.AddEdge("a", "b", RelDependsOn, nil)

	contains := RelContains
	if err := g.RemoveEdge("a", "b", &contains); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Fatalf("expected 1 edge remaining after typed removal, got %d", g.EdgeCount())
	}

	if err := g.RemoveEdge("a", "b", nil); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if g.EdgeCount() != 0 {
		t.Fatalf("expected all edges removed by wildcard, got %d", g.EdgeCount())
	}
}

func TestGetConnectedNodesDirectionsAndFilter(t *testing.T) {
	g := NewGraph(nil, nil)
	g.AddNode("a", EntityTextContent, "", nil)
	g.AddNode("b", EntityTextContent, "", nil)
	g.AddNode("c", EntityTextContent, "", nil)
	g.AddEdge("a", "b", RelContains, nil)
	g.AddEdge("a", "c", RelDependsOn, nil)

	all := g.GetConnectedNodes("a", DirOutgoing, nil)
	if len(all) != 2 {
		t.Fatalf("expected 2 connected nodes, got %d", len(all))
	}

	contains := RelContains
	filtered := g.GetConnectedNodes("a", DirOutgoing, &contains)
	if len(filtered) != 1 || filtered[0].ID != "b" {
		t.Fatalf("expected only node b via RelContains, got %v", filtered)
	}

	incoming := g.GetConnectedNodes("b", DirIncoming, nil)
	if len(incoming) != 1 || incoming[0].ID != "a" {
		t.Fatalf("expected node a via incoming, got %v", incoming)
	}
}

func TestGetNodeNotFound(t *testing.T) {
	g := NewGraph(nil, nil)
	if _, err := g.GetNode("missing"); !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
}
