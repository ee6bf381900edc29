package graph

import (
	"errors"
	"sync"
)

var (
	ErrUserExists   = errors.New("user already registered")
	ErrOrgExists    = errors.New("organization already registered")
	ErrUserNotFound = errors.New("user not found")
	ErrOrgNotFound  = errors.New("organization not found")
)

// Graph is the node registry. Nodes are stored in arena maps keyed by
// identifier; edges carry identifiers, so removing a node can never leave
// a dangling pointer, only an edge whose peer fails lookup (which every
// traversal tolerates by skipping).
//
// All exported methods are safe for concurrent use: mutators take the
// write lock, queries and projections the read lock. Queries observe a
// point-in-time snapshot for their whole traversal and return copies,
// never the registry's live nodes, so callers may keep reading a result
// after the lock is released.
type Graph struct {
	mu    sync.RWMutex
	users map[UserID]*User
	orgs  map[OrgID]*Organization
}

// New returns an empty registry.
func New() *Graph {
	return &Graph{
		users: make(map[UserID]*User),
		orgs:  make(map[OrgID]*Organization),
	}
}

// AddUser registers a user node.
func (g *Graph) AddUser(u *User) error {
	if u == nil {
		panic("graph: AddUser with nil user")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.users[u.ID]; ok {
		return ErrUserExists
	}
	g.users[u.ID] = u
	return nil
}

// AddOrganization registers an organization node.
func (g *Graph) AddOrganization(o *Organization) error {
	if o == nil {
		panic("graph: AddOrganization with nil organization")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.orgs[o.ID]; ok {
		return ErrOrgExists
	}
	g.orgs[o.ID] = o
	return nil
}

// User looks up a user node by ID. The result is a point-in-time copy:
// its fields and edge accessors stay valid after the lock is released,
// no matter what writers do to the registry's node.
func (g *Graph) User(id UserID) (*User, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	u, ok := g.users[id]
	if !ok {
		return nil, false
	}
	return u.clone(), true
}

// Organization looks up an organization node by ID. Like User, the
// result is a point-in-time copy.
func (g *Graph) Organization(id OrgID) (*Organization, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	o, ok := g.orgs[id]
	if !ok {
		return nil, false
	}
	return o.clone(), true
}

// Users returns copies of all registered users.
func (g *Graph) Users() []*User {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*User, 0, len(g.users))
	for _, u := range g.users {
		out = append(out, u.clone())
	}
	return out
}

// Organizations returns copies of all registered organizations.
func (g *Graph) Organizations() []*Organization {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Organization, 0, len(g.orgs))
	for _, o := range g.orgs {
		out = append(out, o.clone())
	}
	return out
}

// SetUserAttrs updates a user node's display attributes in place.
// Empty name and email keep the current values.
func (g *Graph) SetUserAttrs(id UserID, name, email string, privacy Privacy, disabled bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	u, ok := g.users[id]
	if !ok {
		return ErrUserNotFound
	}
	if name != "" {
		u.Name = name
	}
	if email != "" {
		u.Email = email
	}
	u.Privacy = privacy
	u.Disabled = disabled
	return nil
}

// SetOrgAttrs updates an organization node's display attributes in
// place. Empty name keeps the current value.
func (g *Graph) SetOrgAttrs(id OrgID, name, email string, privacy Privacy, disabled bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	o, ok := g.orgs[id]
	if !ok {
		return ErrOrgNotFound
	}
	if name != "" {
		o.Name = name
	}
	if email != "" {
		o.Email = email
	}
	o.Privacy = privacy
	o.Disabled = disabled
	return nil
}

// LinkChild records child --is_child_of--> parent, inserting the
// outgoing edge on the child and the incoming edge on the parent under
// one lock acquisition so the two views never disagree.
func (g *Graph) LinkChild(child, parent OrgID, privacy Privacy) (OrgEdge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.orgs[child]
	if !ok {
		return OrgEdge{}, ErrOrgNotFound
	}
	p, ok := g.orgs[parent]
	if !ok {
		return OrgEdge{}, ErrOrgNotFound
	}
	e := NewOrgEdge(child, RelChildOf, parent, privacy)
	c.AddOutEdge(e)
	p.AddInEdge(e)
	return e, nil
}

// UnlinkChild removes every is_child_of edge between child and parent
// from both sides. Unlinking organizations that are not linked is a
// no-op.
func (g *Graph) UnlinkChild(child, parent OrgID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.orgs[child]
	if !ok {
		return ErrOrgNotFound
	}
	p, ok := g.orgs[parent]
	if !ok {
		return ErrOrgNotFound
	}
	c.RemoveOutEdges(RelChildOf, parent)
	p.RemoveInEdges(RelChildOf, child)
	return nil
}

// LinkUser records user --label--> org on both the user's and the
// organization's edge lists.
func (g *Graph) LinkUser(user UserID, label UserRelation, org OrgID, privacy Privacy) (UserEdge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	u, ok := g.users[user]
	if !ok {
		return UserEdge{}, ErrUserNotFound
	}
	o, ok := g.orgs[org]
	if !ok {
		return UserEdge{}, ErrOrgNotFound
	}
	return o.LinkUser(u, label, privacy), nil
}

// UnlinkUser removes every (label, user) edge from both sides.
func (g *Graph) UnlinkUser(user UserID, label UserRelation, org OrgID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	u, ok := g.users[user]
	if !ok {
		return ErrUserNotFound
	}
	o, ok := g.orgs[org]
	if !ok {
		return ErrOrgNotFound
	}
	o.UnlinkUser(label, u)
	return nil
}

// RemoveOrganization drops an organization and detaches every edge that
// references it from surviving peers. Unknown IDs are a no-op.
func (g *Graph) RemoveOrganization(id OrgID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	o, ok := g.orgs[id]
	if !ok {
		return
	}
	for _, e := range o.outEdges {
		if p, ok := g.orgs[e.Target]; ok {
			p.RemoveInEdges(e.Label, id)
		}
	}
	for _, e := range o.inEdges {
		if c, ok := g.orgs[e.Source]; ok {
			c.RemoveOutEdges(e.Label, id)
		}
	}
	for _, e := range o.userEdges {
		if u, ok := g.users[e.Source]; ok {
			u.RemoveOrgEdges(e.Label, id)
		}
	}
	delete(g.orgs, id)
}

// RemoveUser drops a user and detaches its edges from surviving
// organizations. Unknown IDs are a no-op.
func (g *Graph) RemoveUser(id UserID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	u, ok := g.users[id]
	if !ok {
		return
	}
	for _, e := range u.orgEdges {
		if o, ok := g.orgs[e.Target]; ok {
			kept := o.userEdges[:0]
			for _, oe := range o.userEdges {
				if oe.Source != id {
					kept = append(kept, oe)
				}
			}
			o.userEdges = kept
		}
	}
	delete(g.users, id)
}
