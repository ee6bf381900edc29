package graph

// Organization is an organization node. It owns three edge lists:
//
//   - userEdges: incoming user→organization edges (membership, admin)
//   - inEdges:   incoming is_child_of edges from its children
//   - outEdges:  outgoing is_child_of edges to its parents
//
// The in/out hierarchy lists are two views of the same relation and must
// stay in sync; Graph.LinkChild and Graph.UnlinkChild insert and remove
// both sides atomically. Mutating one side directly is only appropriate
// in tests that assemble a node in isolation.
type Organization struct {
	ID       OrgID
	Name     string
	Email    string
	Privacy  Privacy
	Disabled bool

	userEdges []UserEdge
	inEdges   []OrgEdge
	outEdges  []OrgEdge
}

// NewOrganization constructs an organization node with empty edge lists.
func NewOrganization(id OrgID, name, email string, privacy Privacy) *Organization {
	if id == "" {
		panic("graph: NewOrganization with empty id")
	}
	return &Organization{ID: id, Name: name, Email: email, Privacy: privacy}
}

// clone returns a copy of the node with its own edge slices, detached
// from the registry's live node.
func (o *Organization) clone() *Organization {
	cp := *o
	cp.userEdges = make([]UserEdge, len(o.userEdges))
	copy(cp.userEdges, o.userEdges)
	cp.inEdges = make([]OrgEdge, len(o.inEdges))
	copy(cp.inEdges, o.inEdges)
	cp.outEdges = make([]OrgEdge, len(o.outEdges))
	copy(cp.outEdges, o.outEdges)
	return &cp
}

// AddInEdge appends an incoming hierarchy edge (a child pointing at this
// organization as its parent). Duplicates accumulate.
func (o *Organization) AddInEdge(e OrgEdge) OrgEdge {
	if e.Target != o.ID {
		panic("graph: in-edge target does not match organization")
	}
	o.inEdges = append(o.inEdges, e)
	return e
}

// AddOutEdge appends an outgoing hierarchy edge (this organization
// pointing at a parent). Duplicates accumulate.
func (o *Organization) AddOutEdge(e OrgEdge) OrgEdge {
	if e.Source != o.ID {
		panic("graph: out-edge source does not match organization")
	}
	o.outEdges = append(o.outEdges, e)
	return e
}

// AddInEdges bulk-appends incoming hierarchy edges.
func (o *Organization) AddInEdges(edges []OrgEdge) []OrgEdge {
	for _, e := range edges {
		o.AddInEdge(e)
	}
	return edges
}

// AddOutEdges bulk-appends outgoing hierarchy edges.
func (o *Organization) AddOutEdges(edges []OrgEdge) []OrgEdge {
	for _, e := range edges {
		o.AddOutEdge(e)
	}
	return edges
}

// RemoveInEdges drops every incoming hierarchy edge matching
// (label, child peer). Absent matches are a no-op.
func (o *Organization) RemoveInEdges(label OrgRelation, peer OrgID) {
	kept := o.inEdges[:0]
	for _, e := range o.inEdges {
		if !matchesOrgSource(e, label, peer) {
			kept = append(kept, e)
		}
	}
	o.inEdges = kept
}

// RemoveOutEdges drops every outgoing hierarchy edge matching
// (label, parent peer). Absent matches are a no-op.
func (o *Organization) RemoveOutEdges(label OrgRelation, peer OrgID) {
	kept := o.outEdges[:0]
	for _, e := range o.outEdges {
		if !matchesOrgTarget(e, label, peer) {
			kept = append(kept, e)
		}
	}
	o.outEdges = kept
}

// LinkUser constructs a user→organization edge and appends it to both
// the organization's incoming list and the user's outgoing list, keeping
// the two views in sync.
func (o *Organization) LinkUser(u *User, label UserRelation, privacy Privacy) UserEdge {
	if u == nil {
		panic("graph: LinkUser with nil user")
	}
	e := NewUserEdge(u.ID, label, o.ID, privacy)
	o.userEdges = append(o.userEdges, e)
	u.AddOrgEdge(e)
	return e
}

// UnlinkUser removes every (label, user) edge from both sides.
func (o *Organization) UnlinkUser(label UserRelation, u *User) {
	if u == nil {
		panic("graph: UnlinkUser with nil user")
	}
	kept := o.userEdges[:0]
	for _, e := range o.userEdges {
		if !matchesUser(e, label, u.ID) {
			kept = append(kept, e)
		}
	}
	o.userEdges = kept
	u.RemoveOrgEdges(label, o.ID)
}

// UserEdges returns a copy of the incoming user edge list, duplicates
// included.
func (o *Organization) UserEdges() []UserEdge {
	out := make([]UserEdge, len(o.userEdges))
	copy(out, o.userEdges)
	return out
}

// InEdges returns a copy of the incoming hierarchy edge list.
func (o *Organization) InEdges() []OrgEdge {
	out := make([]OrgEdge, len(o.inEdges))
	copy(out, o.inEdges)
	return out
}

// OutEdges returns a copy of the outgoing hierarchy edge list.
func (o *Organization) OutEdges() []OrgEdge {
	out := make([]OrgEdge, len(o.outEdges))
	copy(out, o.outEdges)
	return out
}

// Parents returns the distinct immediate parents, in first-edge order.
func (o *Organization) Parents() []OrgID {
	var out []OrgID
	seen := make(map[OrgID]struct{})
	for _, e := range o.outEdges {
		if e.Label != RelChildOf {
			continue
		}
		if _, ok := seen[e.Target]; ok {
			continue
		}
		seen[e.Target] = struct{}{}
		out = append(out, e.Target)
	}
	return out
}

// Children returns the distinct immediate children, in first-edge order.
func (o *Organization) Children() []OrgID {
	var out []OrgID
	seen := make(map[OrgID]struct{})
	for _, e := range o.inEdges {
		if e.Label != RelChildOf {
			continue
		}
		if _, ok := seen[e.Source]; ok {
			continue
		}
		seen[e.Source] = struct{}{}
		out = append(out, e.Source)
	}
	return out
}

// hasUserEdge reports a direct (user, label) edge into this organization.
func (o *Organization) hasUserEdge(user UserID, label UserRelation) bool {
	for _, e := range o.userEdges {
		if e.Source == user && e.Label == label {
			return true
		}
	}
	return false
}
