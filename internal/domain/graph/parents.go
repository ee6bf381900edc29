package graph

// AllParents computes the transitive closure of parents reachable from
// start via outgoing is_child_of edges. The result contains each
// reachable organization exactly once, in discovery order, and never
// contains the start node unless the graph cycles back to it.
//
// The visited set doubles as the cycle guard: a node is inserted before
// it is expanded, so the traversal terminates on any graph, cycles
// included. Edges whose target is not registered are skipped.
//
// If filter is non-nil, only organizations satisfying it are returned;
// the closure itself is still computed over the full set, so a filtered
// node's own parents remain reachable.
//
// The returned organizations are copies, detached from the registry.
func (g *Graph) AllParents(start OrgID, filter func(*Organization) bool) []*Organization {
	g.mu.RLock()
	defer g.mu.RUnlock()

	o, ok := g.orgs[start]
	if !ok {
		return nil
	}

	visited := make(map[OrgID]struct{})
	var closure []*Organization
	g.collectParents(o, visited, &closure)

	var out []*Organization
	for _, p := range closure {
		if filter == nil || filter(p) {
			out = append(out, p.clone())
		}
	}
	return out
}

// collectParents expands one node's immediate parents, inserting each
// unvisited parent into the set before recursing into it.
func (g *Graph) collectParents(o *Organization, visited map[OrgID]struct{}, out *[]*Organization) {
	for _, e := range o.outEdges {
		if e.Label != RelChildOf {
			continue
		}
		if _, seen := visited[e.Target]; seen {
			continue
		}
		p, ok := g.orgs[e.Target]
		if !ok {
			continue
		}
		visited[e.Target] = struct{}{}
		*out = append(*out, p)
		g.collectParents(p, visited, out)
	}
}
