package graph

// UserRelation labels a user→organization edge.
type UserRelation string

const (
	// RelAdmin marks the user as an administrator of the organization.
	RelAdmin UserRelation = "is_admin"
	// RelMember marks the user as a direct member of the organization.
	RelMember UserRelation = "is_member"
)

// OrgRelation labels an organization→organization edge.
type OrgRelation string

// RelChildOf is the only relation that drives hierarchy traversal: the
// edge's source is the child, its target is the parent.
const RelChildOf OrgRelation = "is_child_of"

// Edge is an immutable directed, labeled, privacy-scoped relationship
// record. Source and target are identifiers, never node pointers: nodes
// own their edge lists, edges own nothing.
type Edge[S ~string, L ~string, T ~string] struct {
	Source  S
	Label   L
	Target  T
	Privacy Privacy
}

// UserEdge relates a user (source) to an organization (target).
type UserEdge = Edge[UserID, UserRelation, OrgID]

// OrgEdge relates a child organization (source) to a parent (target).
type OrgEdge = Edge[OrgID, OrgRelation, OrgID]

// NewUserEdge builds a user→organization edge.
func NewUserEdge(user UserID, label UserRelation, org OrgID, privacy Privacy) UserEdge {
	return UserEdge{Source: user, Label: label, Target: org, Privacy: privacy}
}

// NewOrgEdge builds an organization→organization edge.
func NewOrgEdge(child OrgID, label OrgRelation, parent OrgID, privacy Privacy) OrgEdge {
	return OrgEdge{Source: child, Label: label, Target: parent, Privacy: privacy}
}

// matches reports whether the edge carries the given label and peer,
// ignoring privacy. Used by the remove operations, which drop every
// matching edge regardless of how it is scoped.
func matchesUser(e UserEdge, label UserRelation, user UserID) bool {
	return e.Label == label && e.Source == user
}

func matchesOrgSource(e OrgEdge, label OrgRelation, peer OrgID) bool {
	return e.Label == label && e.Source == peer
}

func matchesOrgTarget(e OrgEdge, label OrgRelation, peer OrgID) bool {
	return e.Label == label && e.Target == peer
}
