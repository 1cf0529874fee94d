package core

import (
	"fmt"
	"time"

	logrus "github.com/sirupsen/logrus"
)

// EntityType is the closed vocabulary of graph node types.
type EntityType string

const (
	EntityDigitalResource EntityType = "DigitalResource"
	EntityDataset         EntityType = "Dataset"
	EntityAIModel         EntityType = "AIModel"
	EntityTextContent     EntityType = "TextContent"
	EntityImageContent    EntityType = "ImageContent"
	EntityAudioContent    EntityType = "AudioContent"
	EntityVideoContent    EntityType = "VideoContent"
	EntitySoftwareCode    EntityType = "SoftwareCode"
	EntityAgent           EntityType = "Agent"
	EntityPerson          EntityType = "Person"
	EntityOrganization    EntityType = "Organization"
	EntitySoftware        EntityType = "Software"
	EntityActivity        EntityType = "Activity"
)

var validEntityTypes = map[EntityType]bool{
	EntityDigitalResource: true, EntityDataset: true, EntityAIModel: true,
	EntityTextContent: true, EntityImageContent: true, EntityAudioContent: true,
	EntityVideoContent: true, EntitySoftwareCode: true, EntityAgent: true,
	EntityPerson: true, EntityOrganization: true, EntitySoftware: true,
	EntityActivity: true,
}

// IsAgentType reports whether et is one of the agent-like types used by the
// PROV partition (Agent, Person, Organization, Software).
func (et EntityType) IsAgentType() bool {
	switch et {
	case EntityAgent, EntityPerson, EntityOrganization, EntitySoftware:
		return true
	default:
		return false
	}
}

// RelationshipType is the closed vocabulary of graph edge types, covering
// structural, derivation, generation, dependency, temporal, and AI-specific
// relations.
type RelationshipType string

const (
	RelContains          RelationshipType = "contains"
	RelIsPartOf          RelationshipType = "isPartOf"
	RelHasComponent      RelationshipType = "hasComponent"
	RelIsComponentOf     RelationshipType = "isComponentOf"
	RelWasDerivedFrom    RelationshipType = "wasDerivedFrom"
	RelWasRevisionOf     RelationshipType = "wasRevisionOf"
	RelWasQuotedFrom     RelationshipType = "wasQuotedFrom"
	RelWasInfluencedBy   RelationshipType = "wasInfluencedBy"
	RelWasGeneratedBy    RelationshipType = "wasGeneratedBy"
	RelUsed              RelationshipType = "used"
	RelWasAttributedTo   RelationshipType = "wasAttributedTo"
	RelWasAssociatedWith RelationshipType = "wasAssociatedWith"
	RelDependsOn         RelationshipType = "dependsOn"
	RelRequires          RelationshipType = "requires"
	RelUses              RelationshipType = "uses"
	RelSupports          RelationshipType = "supports"
	RelPrecedes          RelationshipType = "precedes"
	RelFollows           RelationshipType = "follows"
	RelReplaces          RelationshipType = "replaces"
	RelTrainedOn         RelationshipType = "trainedOn"
	RelFineTunedFrom     RelationshipType = "fineTunedFrom"
	RelGenerates         RelationshipType = "generates"
	RelAnalyzes          RelationshipType = "analyzes"
)

var validRelationshipTypes = map[RelationshipType]bool{
	RelContains: true, RelIsPartOf: true, RelHasComponent: true, RelIsComponentOf: true,
	RelWasDerivedFrom: true, RelWasRevisionOf: true, RelWasQuotedFrom: true, RelWasInfluencedBy: true,
	RelWasGeneratedBy: true, RelUsed: true, RelWasAttributedTo: true, RelWasAssociatedWith: true,
	RelDependsOn: true, RelRequires: true, RelUses: true, RelSupports: true,
	RelPrecedes: true, RelFollows: true, RelReplaces: true,
	RelTrainedOn: true, RelFineTunedFrom: true, RelGenerates: true, RelAnalyzes: true,
}

// Direction selects which incident edges GetEdges/GetConnectedNodes visits.
type Direction string

const (
	DirOutgoing Direction = "outgoing"
	DirIncoming Direction = "incoming"
	DirBoth     Direction = "both"
)

// Node is one vertex of the relationship graph.
type Node struct {
	ID        string
	Type      EntityType
	Label     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Metadata  map[string]interface{}
}

// Edge is one directed, labeled, multigraph arc. At most one edge
// exists for each (Source, Target, Type) tuple; adding a duplicate merges
// Properties instead of creating a second edge.
type Edge struct {
	Source     string
	Target     string
	Type       RelationshipType
	CreatedAt  time.Time
	Properties map[string]interface{}
}

func edgeKey(source, target string, t RelationshipType) string {
	return source + "\x00" + target + "\x00" + string(t)
}

// Graph is a directed labeled multigraph over identifier keys. It owns its
// nodes and edges; removing a node cascades to delete every incident edge.
// It is not internally synchronized; concurrent callers serialize access
// externally.
type Graph struct {
	nodes map[string]*Node
	edges map[string]*Edge
	// outgoing/incoming index edge keys by node id for O(degree) traversal.
	outgoing map[string]map[string]bool
	incoming map[string]map[string]bool

	logger  *logrus.Logger
	metrics *GraphMetrics
}

// NewGraph constructs an empty graph. logger and metrics may both be nil.
func NewGraph(logger *logrus.Logger, metrics *GraphMetrics) *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		edges:    make(map[string]*Edge),
		outgoing: make(map[string]map[string]bool),
		incoming: make(map[string]map[string]bool),
		logger:   logger,
		metrics:  metrics,
	}
}

func (g *Graph) logf(format string, args ...interface{}) {
	if g.logger != nil {
		g.logger.Debugf(format, args...)
	}
}

// AddNode inserts or replaces the node identified by id.
func (g *Graph) AddNode(id string, entityType EntityType, label string, metadata map[string]interface{}) (*Node, error) {
	if !validEntityTypes[entityType] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEntityType, entityType)
	}
	now := time.Now().UTC()
	existing, ok := g.nodes[id]
	n := &Node{ID: id, Type: entityType, Label: label, CreatedAt: now, UpdatedAt: now, Metadata: metadata}
	if ok {
		n.CreatedAt = existing.CreatedAt
	}
	g.nodes[id] = n
	if !ok {
		if _, exists := g.outgoing[id]; !exists {
			g.outgoing[id] = map[string]bool{}
		}
		if _, exists := g.incoming[id]; !exists {
			g.incoming[id] = map[string]bool{}
		}
	}
	g.logf("graph: node %s (%s) added", id, entityType)
	g.metrics.observeNodeCount(len(g.nodes))
	return n, nil
}

// GetNode returns the node identified by id.
func (g *Graph) GetNode(id string) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return n, nil
}

// AddEdge inserts an edge, or merges Properties into the existing edge if
// (source, target, type) already exists, per the edge-uniqueness invariant.
func (g *Graph) AddEdge(source, target string, t RelationshipType, properties map[string]interface{}) (*Edge, error) {
	if !validRelationshipTypes[t] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRelationshipType, t)
	}
	if _, err := g.GetNode(source); err != nil {
		return nil, err
	}
	if _, err := g.GetNode(target); err != nil {
		return nil, err
	}

	key := edgeKey(source, target, t)
	if existing, ok := g.edges[key]; ok {
		for k, v := range properties {
			if existing.Properties == nil {
				existing.Properties = map[string]interface{}{}
			}
			existing.Properties[k] = v
		}
		g.logf("graph: edge %s->%s[%s] merged properties", source, target, t)
		return existing, nil
	}

	e := &Edge{Source: source, Target: target, Type: t, CreatedAt: time.Now().UTC(), Properties: properties}
	g.edges[key] = e
	g.outgoing[source][key] = true
	g.incoming[target][key] = true
	g.logf("graph: edge %s->%s[%s] added", source, target, t)
	g.metrics.observeEdgeCount(len(g.edges))
	return e, nil
}

// RemoveNode deletes id along with every incident edge.
func (g *Graph) RemoveNode(id string) error {
	if _, err := g.GetNode(id); err != nil {
		return err
	}
	for key := range g.outgoing[id] {
		g.deleteEdgeByKey(key)
	}
	for key := range g.incoming[id] {
		g.deleteEdgeByKey(key)
	}
	delete(g.outgoing, id)
	delete(g.incoming, id)
	delete(g.nodes, id)
	g.logf("graph: node %s removed (cascaded)", id)
	g.metrics.observeNodeCount(len(g.nodes))
	g.metrics.observeEdgeCount(len(g.edges))
	return nil
}

func (g *Graph) deleteEdgeByKey(key string) {
	e, ok := g.edges[key]
	if !ok {
		return
	}
	delete(g.outgoing[e.Source], key)
	delete(g.incoming[e.Target], key)
	delete(g.edges, key)
}

// RemoveEdge deletes the edge(s) between source and target. If relType is
// nil, every edge between the pair is removed regardless of type.
func (g *Graph) RemoveEdge(source, target string, relType *RelationshipType) error {
	if relType != nil {
		key := edgeKey(source, target, *relType)
		if _, ok := g.edges[key]; !ok {
			return nil
		}
		g.deleteEdgeByKey(key)
		g.metrics.observeEdgeCount(len(g.edges))
		return nil
	}
	for key, e := range g.edges {
		if e.Source == source && e.Target == target {
			g.deleteEdgeByKey(key)
		}
	}
	g.metrics.observeEdgeCount(len(g.edges))
	return nil
}

// GetEdges returns the edges incident to id in the given direction.
func (g *Graph) GetEdges(id string, dir Direction) []*Edge {
	var out []*Edge
	switch dir {
	case DirOutgoing:
		for key := range g.outgoing[id] {
			out = append(out, g.edges[key])
		}
	case DirIncoming:
		for key := range g.incoming[id] {
			out = append(out, g.edges[key])
		}
	case DirBoth:
		out = append(out, g.GetEdges(id, DirOutgoing)...)
		out = append(out, g.GetEdges(id, DirIncoming)...)
	}
	return out
}

// GetConnectedNodes returns the distinct nodes reachable from id via one
// hop in the given direction, optionally restricted to relType.
func (g *Graph) GetConnectedNodes(id string, dir Direction, relType *RelationshipType) []*Node {
	seen := map[string]bool{}
	var out []*Node
	for _, e := range g.GetEdges(id, dir) {
		if relType != nil && e.Type != *relType {
			continue
		}
		other := e.Target
		if dir == DirIncoming {
			other = e.Source
		}
		if dir == DirBoth && e.Source == id {
			other = e.Target
		} else if dir == DirBoth && e.Target == id {
			other = e.Source
		}
		if seen[other] {
			continue
		}
		seen[other] = true
		if n, ok := g.nodes[other]; ok {
			out = append(out, n)
		}
	}
	return out
}

// NodeCount returns the number of nodes currently in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges currently in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// AllNodeIDs returns every node id, unordered.
func (g *Graph) AllNodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	return ids
}
