package core

// PathOptions bounds FindPaths traversal.
type PathOptions struct {
	MaxDepth          int
	RelationshipTypes []RelationshipType // empty means any type
}

func (o PathOptions) maxDepth() int {
	if o.MaxDepth <= 0 {
		return 10
	}
	return o.MaxDepth
}

func (o PathOptions) typeAllowed(t RelationshipType) bool {
	if len(o.RelationshipTypes) == 0 {
		return true
	}
	for _, want := range o.RelationshipTypes {
		if want == t {
			return true
		}
	}
	return false
}

// Path is one simple (cycle-free) walk from Source to Target.
type Path struct {
	Nodes []string
	Edges []*Edge
}

// FindPaths enumerates every simple path from source to target within
// opts.MaxDepth hops, restricted to opts.RelationshipTypes if non-empty.
// A node already on the current walk is never revisited, so traversal
// terminates on cyclic graphs.
func (g *Graph) FindPaths(source, target string, opts PathOptions) ([]Path, error) {
	if _, err := g.GetNode(source); err != nil {
		return nil, err
	}
	if _, err := g.GetNode(target); err != nil {
		return nil, err
	}

	var results []Path
	visited := map[string]bool{source: true}
	var walk func(current string, nodes []string, edges []*Edge)
	walk = func(current string, nodes []string, edges []*Edge) {
		if current == target && len(nodes) > 1 {
			pathNodes := make([]string, len(nodes))
			copy(pathNodes, nodes)
			pathEdges := make([]*Edge, len(edges))
			copy(pathEdges, edges)
			results = append(results, Path{Nodes: pathNodes, Edges: pathEdges})
			return
		}
		if len(nodes)-1 >= opts.maxDepth() {
			return
		}
		for _, e := range g.GetEdges(current, DirOutgoing) {
			if !opts.typeAllowed(e.Type) {
				continue
			}
			if visited[e.Target] {
				continue
			}
			visited[e.Target] = true
			walk(e.Target, append(nodes, e.Target), append(edges, e))
			visited[e.Target] = false
		}
	}
	walk(source, []string{source}, nil)
	return results, nil
}

// RelatedOptions bounds FindRelatedResources.
type RelatedOptions struct {
	MaxDepth   int
	Transitive bool // when false, only direct (1-hop) neighbors are returned
}

func (o RelatedOptions) maxDepth() int {
	if !o.Transitive {
		return 1
	}
	if o.MaxDepth <= 0 {
		return 10
	}
	return o.MaxDepth
}

// RelatedResource is one reachability result: the node itself, the hop
// count at which it was first reached, and whether that was beyond the
// first hop.
type RelatedResource struct {
	Node       *Node
	Depth      int
	Transitive bool
}

// FindRelatedResources returns every node reachable from id via edges of the
// given types, in the given direction, within opts' depth bound,
// deduplicated by identifier. Results reached beyond the first hop carry
// Transitive=true. Non-transitive searches return only direct neighbors.
func (g *Graph) FindRelatedResources(id string, dir Direction, types []RelationshipType, opts RelatedOptions) ([]RelatedResource, error) {
	if _, err := g.GetNode(id); err != nil {
		return nil, err
	}
	typeSet := make(map[RelationshipType]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}
	allowed := func(t RelationshipType) bool {
		return len(typeSet) == 0 || typeSet[t]
	}

	visited := map[string]bool{id: true}
	var out []RelatedResource
	type frontierEntry struct {
		id    string
		depth int
	}
	frontier := []frontierEntry{{id, 0}}
	maxDepth := opts.maxDepth()

	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		if cur.depth >= maxDepth {
			continue
		}
		for _, e := range g.GetEdges(cur.id, dir) {
			if !allowed(e.Type) {
				continue
			}
			other := e.Target
			if dir == DirIncoming {
				other = e.Source
			} else if dir == DirBoth && e.Source != cur.id {
				other = e.Source
			}
			if visited[other] {
				continue
			}
			visited[other] = true
			if n, ok := g.nodes[other]; ok {
				out = append(out, RelatedResource{Node: n, Depth: cur.depth + 1, Transitive: cur.depth > 0})
			}
			frontier = append(frontier, frontierEntry{other, cur.depth + 1})
		}
	}
	return out, nil
}

// Derivation, generation, and training edges run ancestor to descendant:
// an edge orig -> copy [wasDerivedFrom] states "copy wasDerivedFrom orig",
// matching the PROV projection's subject placement for that family. The
// derived/sources wrappers below rely on this orientation; dependency and
// structural edges read source-relation-target directly.

// FindDerivedResources returns resources that were derived from, revisions
// of, or quoted from id.
func (g *Graph) FindDerivedResources(id string, opts RelatedOptions) ([]RelatedResource, error) {
	return g.FindRelatedResources(id, DirOutgoing,
		[]RelationshipType{RelWasDerivedFrom, RelWasRevisionOf, RelWasQuotedFrom}, opts)
}

// FindDependencies returns resources id dependsOn/requires/uses.
func (g *Graph) FindDependencies(id string, opts RelatedOptions) ([]RelatedResource, error) {
	return g.FindRelatedResources(id, DirOutgoing,
		[]RelationshipType{RelDependsOn, RelRequires, RelUses}, opts)
}

// FindComponents returns resources contained by / components of id.
func (g *Graph) FindComponents(id string, opts RelatedOptions) ([]RelatedResource, error) {
	return g.FindRelatedResources(id, DirOutgoing,
		[]RelationshipType{RelContains, RelHasComponent}, opts)
}

// FindDependents returns resources that dependsOn/requires/uses id.
func (g *Graph) FindDependents(id string, opts RelatedOptions) ([]RelatedResource, error) {
	return g.FindRelatedResources(id, DirIncoming,
		[]RelationshipType{RelDependsOn, RelRequires, RelUses}, opts)
}

// FindSources returns the resources id came from: whatever generated it,
// whatever it was derived, revised, or quoted from, whatever it used, and
// whatever it was trained or fine-tuned on.
func (g *Graph) FindSources(id string, opts RelatedOptions) ([]RelatedResource, error) {
	return g.FindRelatedResources(id, DirIncoming,
		[]RelationshipType{RelWasGeneratedBy, RelWasDerivedFrom, RelWasRevisionOf, RelWasQuotedFrom, RelUsed, RelTrainedOn, RelFineTunedFrom}, opts)
}
