package graph

// User is a user node: identity, display attributes, and the outgoing
// user→organization edge list it owns.
type User struct {
	ID       UserID
	Name     string
	Email    string
	Privacy  Privacy
	Disabled bool

	orgEdges []UserEdge
}

// NewUser constructs a user node with an empty edge list.
func NewUser(id UserID, name, email string, privacy Privacy) *User {
	if id == "" {
		panic("graph: NewUser with empty id")
	}
	return &User{ID: id, Name: name, Email: email, Privacy: privacy}
}

// clone returns a copy of the node with its own edge slice, detached
// from the registry's live node. Callers of the copy never observe a
// concurrent mutation.
func (u *User) clone() *User {
	cp := *u
	cp.orgEdges = make([]UserEdge, len(u.orgEdges))
	copy(cp.orgEdges, u.orgEdges)
	return &cp
}

// AddOrgEdge appends an outgoing edge. Duplicate edges are legal and
// accumulate. The edge's source must be this user.
func (u *User) AddOrgEdge(e UserEdge) UserEdge {
	if e.Source != u.ID {
		panic("graph: edge source does not match user")
	}
	u.orgEdges = append(u.orgEdges, e)
	return e
}

// RemoveOrgEdges drops every outgoing edge matching (label, org).
// Removing edges that do not exist is a no-op.
func (u *User) RemoveOrgEdges(label UserRelation, org OrgID) {
	kept := u.orgEdges[:0]
	for _, e := range u.orgEdges {
		if !(e.Label == label && e.Target == org) {
			kept = append(kept, e)
		}
	}
	u.orgEdges = kept
}

// OrgEdges returns a copy of the outgoing edge list.
func (u *User) OrgEdges() []UserEdge {
	out := make([]UserEdge, len(u.orgEdges))
	copy(out, u.orgEdges)
	return out
}

// HasEdge reports whether the user holds at least one (label, org) edge.
func (u *User) HasEdge(label UserRelation, org OrgID) bool {
	for _, e := range u.orgEdges {
		if e.Label == label && e.Target == org {
			return true
		}
	}
	return false
}

// Organizations returns the distinct organizations this user is linked
// to with the given label, in first-edge order.
func (u *User) Organizations(label UserRelation) []OrgID {
	var out []OrgID
	seen := make(map[OrgID]struct{})
	for _, e := range u.orgEdges {
		if e.Label != label {
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
