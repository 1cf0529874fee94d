package core

import (
	"sort"
	"strings"
)

// provPredicate describes how one RelationshipType projects onto a PROV
// predicate: which endpoint hosts the predicate (the "subject") and which
// is the referenced participant (the "object").
// wasGeneratedBy/wasDerivedFrom-family relations are modeled in
// the graph as a flow edge from the earlier participant to the later one
// (e.g. the activity that generated an entity points at that entity), so
// their PROV subject is the edge's Target rather than its Source.
type provPredicate struct {
	name            string
	subjectIsTarget bool
}

var provPredicateFor = map[RelationshipType]provPredicate{
	RelWasGeneratedBy:    {"wasGeneratedBy", true},
	RelWasDerivedFrom:    {"wasDerivedFrom", true},
	RelWasRevisionOf:     {"wasRevisionOf", true},
	RelWasQuotedFrom:     {"wasQuotedFrom", true},
	RelWasInfluencedBy:   {"wasInfluencedBy", true},
	RelUsed:              {"used", false},
	RelWasAttributedTo:   {"wasAttributedTo", false},
	RelWasAssociatedWith: {"wasAssociatedWith", false},
}

var provPredicateNames = func() map[string]struct {
	rel             RelationshipType
	subjectIsTarget bool
} {
	m := make(map[string]struct {
		rel             RelationshipType
		subjectIsTarget bool
	}, len(provPredicateFor))
	for rel, p := range provPredicateFor {
		m[p.name] = struct {
			rel             RelationshipType
			subjectIsTarget bool
		}{rel, p.subjectIsTarget}
	}
	return m
}()

const assetPredicatePrefix = "asset:"

// ToPROV renders the graph as a PROV-O style document partitioned into
// entity/activity/agent records. Each edge is attached as a
// predicate directly on its PROV subject's record: wasDerivedFrom and its
// family onto the target, used/wasAttributedTo/wasAssociatedWith onto the
// source, and any relationship type outside the PROV vocabulary under
// "asset:{type}" on the source. Predicate values are maps keyed by the
// referenced participant's identifier (carrying that edge's properties, or
// an empty object), so the document is stable under Go map JSON encoding
// without needing a separately sorted array.
func (g *Graph) ToPROV() map[string]interface{} {
	entities := map[string]interface{}{}
	activities := map[string]interface{}{}
	agents := map[string]interface{}{}
	records := map[string]map[string]interface{}{}

	ids := g.AllNodeIDs()
	sort.Strings(ids)
	for _, id := range ids {
		n := g.nodes[id]
		record := map[string]interface{}{"type": string(n.Type), "label": n.Label}
		for k, v := range n.Metadata {
			record[k] = v
		}
		records[id] = record
		switch {
		case n.Type == EntityActivity:
			activities[id] = record
		case n.Type.IsAgentType():
			agents[id] = record
		default:
			entities[id] = record
		}
	}

	keys := make([]string, 0, len(g.edges))
	for k := range g.edges {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e := g.edges[k]
		predicate, subjectID, objectID := provProjectionFor(e)
		subject, ok := records[subjectID]
		if !ok {
			continue
		}
		bucket, _ := subject[predicate].(map[string]interface{})
		if bucket == nil {
			bucket = map[string]interface{}{}
			subject[predicate] = bucket
		}
		if len(e.Properties) > 0 {
			bucket[objectID] = e.Properties
		} else if _, exists := bucket[objectID]; !exists {
			bucket[objectID] = map[string]interface{}{}
		}
	}

	return map[string]interface{}{
		"@context": "https://www.w3.org/ns/prov-o",
		"entity":   entities,
		"activity": activities,
		"agent":    agents,
	}
}

// provProjectionFor returns the predicate name and (subject, object)
// identifier pair an edge projects to, per the provPredicateFor table.
func provProjectionFor(e *Edge) (predicate, subjectID, objectID string) {
	if p, ok := provPredicateFor[e.Type]; ok {
		if p.subjectIsTarget {
			return p.name, e.Target, e.Source
		}
		return p.name, e.Source, e.Target
	}
	return assetPredicatePrefix + string(e.Type), e.Source, e.Target
}

// FromPROV populates g from a document shaped like ToPROV's output,
// reconstructing nodes and the edges implied by each record's predicates.
// Existing nodes/edges sharing ids are overwritten; the graph is not
// cleared first, so callers wanting a clean import should start from
// NewGraph. Round-tripping FromPROV(ToPROV(G)) reproduces G restricted to
// the PROV-representable subset.
func (g *Graph) FromPROV(doc map[string]interface{}) error {
	if err := g.importPROVBucket(doc, "entity", EntityDigitalResource); err != nil {
		return err
	}
	if err := g.importPROVBucket(doc, "activity", EntityActivity); err != nil {
		return err
	}
	if err := g.importPROVBucket(doc, "agent", EntityAgent); err != nil {
		return err
	}
	for _, key := range []string{"entity", "activity", "agent"} {
		bucket, _ := doc[key].(map[string]interface{})
		for subjectID, raw := range bucket {
			record, _ := raw.(map[string]interface{})
			for k, v := range record {
				if k == "type" || k == "label" {
					continue
				}
				if err := g.importPROVPredicate(subjectID, k, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (g *Graph) importPROVPredicate(subjectID, predicateKey string, value interface{}) error {
	objects, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	var relType RelationshipType
	var subjectIsTarget bool
	switch {
	case isPROVPredicateKey(predicateKey):
		info := provPredicateNames[predicateKey]
		relType = info.rel
		subjectIsTarget = info.subjectIsTarget
	case hasAssetPrefix(predicateKey):
		relType = RelationshipType(strings.TrimPrefix(predicateKey, assetPredicatePrefix))
	default:
		return nil
	}
	for objectID, propsRaw := range objects {
		props, _ := propsRaw.(map[string]interface{})
		source, target := subjectID, objectID
		if subjectIsTarget {
			source, target = objectID, subjectID
		}
		if _, err := g.AddEdge(source, target, relType, props); err != nil {
			return err
		}
	}
	return nil
}

func hasAssetPrefix(s string) bool {
	return strings.HasPrefix(s, assetPredicatePrefix)
}

func isPROVPredicateKey(s string) bool {
	_, known := provPredicateNames[s]
	return known
}

// importPROVBucket reconstructs nodes from one of ToPROV's three buckets.
// Predicate keys (known PROV predicates and "asset:"-prefixed relationship
// types) are reconstructed as edges by FromPROV's second pass and excluded
// here so they do not leak into the node's free-form Metadata.
func (g *Graph) importPROVBucket(doc map[string]interface{}, key string, defaultType EntityType) error {
	bucket, _ := doc[key].(map[string]interface{})
	for id, raw := range bucket {
		record, _ := raw.(map[string]interface{})
		entityType := defaultType
		if t, ok := record["type"].(string); ok && validEntityTypes[EntityType(t)] {
			entityType = EntityType(t)
		}
		label, _ := record["label"].(string)
		metadata := map[string]interface{}{}
		for k, v := range record {
			if k == "type" || k == "label" || isPROVPredicateKey(k) || hasAssetPrefix(k) {
				continue
			}
			metadata[k] = v
		}
		if _, err := g.AddNode(id, entityType, label, metadata); err != nil {
			return err
		}
	}
	return nil
}
