package graph

// OrganizationInfo is the per-request, viewer-scoped projection of an
// organization subtree. It is built fresh by BuildTree, pruned during
// construction, and never mutated afterwards. Field tags follow the
// JSON-LD-flavored representation the API serves.
type OrganizationInfo struct {
	ID   OrgID  `json:"@id"`
	Type string `json:"@type"`
	Name string `json:"name"`

	YouAreMember                   bool `json:"you_are_member"`
	YouCanAddMembers               bool `json:"you_can_add_members"`
	YouCanCreateChildOrganizations bool `json:"you_can_create_child_organizations"`

	Children []*OrganizationInfo `json:"children"`
}

const orgInfoType = "Organization"

// capabilities carried down the tree during the top-down pass.
type inherited struct {
	member    bool
	addMember bool
	createOrg bool
}

// BuildTree projects the subtree rooted at root for a specific viewer.
//
// Pass one walks top-down: each node's flags are the inherited flags
// OR-ed with the viewer's direct edges at that node, so membership in an
// ancestor puts the viewer in scope for every descendant. Pass two
// prunes bottom-up: a child survives only if the viewer is a member at
// that node or the child retained at least one surviving descendant.
// The root is never dropped.
//
// When the same organization is reachable through two parent chains it
// is projected once per path: flags are path-dependent, so the copies
// can legitimately differ. Cycles terminate because a node already on
// the current path is not re-entered. Disabled organizations are
// skipped entirely.
func (g *Graph) BuildTree(root OrgID, viewer UserID) (*OrganizationInfo, error) {
	if root == "" {
		panic("graph: BuildTree with empty root")
	}
	if viewer == "" {
		panic("graph: BuildTree with empty viewer")
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	o, ok := g.orgs[root]
	if !ok {
		return nil, ErrOrgNotFound
	}
	if _, ok := g.users[viewer]; !ok {
		return nil, ErrUserNotFound
	}

	path := map[OrgID]struct{}{root: {}}
	info := g.project(o, viewer, inherited{}, path)
	prune(info)
	return info, nil
}

func (g *Graph) project(o *Organization, viewer UserID, in inherited, path map[OrgID]struct{}) *OrganizationInfo {
	admin := o.hasUserEdge(viewer, RelAdmin)
	member := o.hasUserEdge(viewer, RelMember)

	info := &OrganizationInfo{
		ID:                             o.ID,
		Type:                           orgInfoType,
		Name:                           o.Name,
		YouAreMember:                   in.member || admin || member,
		YouCanAddMembers:               in.addMember || admin,
		YouCanCreateChildOrganizations: in.createOrg || admin,
	}
	down := inherited{
		member:    info.YouAreMember,
		addMember: info.YouCanAddMembers,
		createOrg: info.YouCanCreateChildOrganizations,
	}

	// Duplicate edges to the same child collapse here: two identical
	// edges are the same path, not two paths.
	seen := make(map[OrgID]struct{})
	for _, e := range o.inEdges {
		if e.Label != RelChildOf {
			continue
		}
		if _, dup := seen[e.Source]; dup {
			continue
		}
		seen[e.Source] = struct{}{}
		if _, onPath := path[e.Source]; onPath {
			continue
		}
		child, ok := g.orgs[e.Source]
		if !ok || child.Disabled {
			continue
		}
		path[e.Source] = struct{}{}
		info.Children = append(info.Children, g.project(child, viewer, down, path))
		delete(path, e.Source)
	}
	return info
}

// prune rewrites every node's child list depth-first, keeping a child
// only when the viewer is in scope there or some descendant survived.
func prune(info *OrganizationInfo) {
	kept := info.Children[:0]
	for _, c := range info.Children {
		prune(c)
		if c.YouAreMember || len(c.Children) > 0 {
			kept = append(kept, c)
		}
	}
	// Drop the tail so pruned subtrees are not retained by the backing
	// array.
	for i := len(kept); i < len(info.Children); i++ {
		info.Children[i] = nil
	}
	info.Children = kept
}
