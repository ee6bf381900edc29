package graph

// Admins returns the distinct users holding a direct is_admin edge into
// the organization, in first-edge order. Inherited (ancestor) admin
// rights are a projection concern, not part of this filter.
func (g *Graph) Admins(org OrgID) []*User {
	return g.usersByRelation(org, RelAdmin)
}

// Members returns the distinct users holding a direct is_member edge
// into the organization, in first-edge order. Admin and member edges are
// independent: a user can hold both.
func (g *Graph) Members(org OrgID) []*User {
	return g.usersByRelation(org, RelMember)
}

func (g *Graph) usersByRelation(org OrgID, label UserRelation) []*User {
	g.mu.RLock()
	defer g.mu.RUnlock()

	o, ok := g.orgs[org]
	if !ok {
		return nil
	}
	var out []*User
	seen := make(map[UserID]struct{})
	for _, e := range o.userEdges {
		if e.Label != label {
			continue
		}
		if _, dup := seen[e.Source]; dup {
			continue
		}
		u, ok := g.users[e.Source]
		if !ok {
			continue
		}
		seen[e.Source] = struct{}{}
		out = append(out, u.clone())
	}
	return out
}

// MembersVisibleTo returns the members of org whose membership edge the
// viewer may see: world-scoped edges always, private edges only when the
// viewer is the edge's own user or an admin of the organization.
func (g *Graph) MembersVisibleTo(org OrgID, viewer UserID) []*User {
	return g.visibleByRelation(org, RelMember, viewer)
}

// AdminsVisibleTo is MembersVisibleTo for admin edges.
func (g *Graph) AdminsVisibleTo(org OrgID, viewer UserID) []*User {
	return g.visibleByRelation(org, RelAdmin, viewer)
}

func (g *Graph) visibleByRelation(org OrgID, label UserRelation, viewer UserID) []*User {
	g.mu.RLock()
	defer g.mu.RUnlock()

	o, ok := g.orgs[org]
	if !ok {
		return nil
	}
	viewerIsAdmin := o.hasUserEdge(viewer, RelAdmin)

	var out []*User
	seen := make(map[UserID]struct{})
	for _, e := range o.userEdges {
		if e.Label != label {
			continue
		}
		if e.Privacy == PrivacyPrivate && e.Source != viewer && !viewerIsAdmin {
			continue
		}
		if _, dup := seen[e.Source]; dup {
			continue
		}
		u, ok := g.users[e.Source]
		if !ok {
			continue
		}
		seen[e.Source] = struct{}{}
		out = append(out, u.clone())
	}
	return out
}
