// Package graph implements the in-memory membership/ACL graph: user and
// organization nodes joined by typed, privacy-scoped edges, with ancestor
// closure, member/admin projection, and viewer-scoped hierarchy projection.
//
// The registry (Graph) is the only safe entry point for concurrent use; it
// guards all node state with a single RWMutex. Node methods mutate edge
// lists in place and are intended for callers that already hold the
// registry lock (or own the node exclusively, as tests do).
package graph

import (
	"errors"
	"strings"
)

// ErrEmptyID is returned when parsing a blank identifier.
var ErrEmptyID = errors.New("identifier must not be empty")

// UserID identifies a user node. Comparison is ordinal and case-sensitive.
type UserID string

// OrgID identifies an organization node. Comparison is ordinal and
// case-sensitive.
type OrgID string

// ParseUserID trims the input and rejects blank identifiers.
func ParseUserID(s string) (UserID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyID
	}
	return UserID(s), nil
}

// ParseOrgID trims the input and rejects blank identifiers.
func ParseOrgID(s string) (OrgID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyID
	}
	return OrgID(s), nil
}

func (id UserID) String() string { return string(id) }

func (id OrgID) String() string { return string(id) }

// Compare returns -1, 0, or 1 by ordinal string comparison.
func (id UserID) Compare(other UserID) int {
	return strings.Compare(string(id), string(other))
}

// Compare returns -1, 0, or 1 by ordinal string comparison.
func (id OrgID) Compare(other OrgID) int {
	return strings.Compare(string(id), string(other))
}
