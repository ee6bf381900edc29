package graph

import "fmt"

// Privacy is the visibility scope attached to a node or an edge.
type Privacy string

const (
	// PrivacyPrivate limits visibility to the participants of the edge
	// (the user on a membership edge) and to admins of the organization.
	PrivacyPrivate Privacy = "private"
	// PrivacyWorld makes the node or edge visible to any viewer.
	PrivacyWorld Privacy = "world"
)

// ParsePrivacy validates a stored privacy string.
func ParsePrivacy(s string) (Privacy, error) {
	switch Privacy(s) {
	case PrivacyPrivate, PrivacyWorld:
		return Privacy(s), nil
	}
	return "", fmt.Errorf("unknown privacy level %q", s)
}

func (p Privacy) String() string { return string(p) }
