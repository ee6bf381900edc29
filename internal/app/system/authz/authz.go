// Package authz provides role constants and request-scoped authorization
// helpers layered over the auth session context.
//
// Service roles gate the HTTP surface only: "admin" may manage any user
// or organization and send notifications; "user" may read what the
// graph's privacy rules allow and manage their own channels. Graph-level
// admin rights (who may add members to an organization) are per-org
// edges, resolved by the viewer projection, never by these roles.
package authz

import (
	"net/http"

	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/domain/graph"
)

// Service roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether the string names a known service role.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// Viewer returns the signed-in user's graph ID and a found flag.
func Viewer(r *http.Request) (graph.UserID, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok || u.ID == "" {
		return "", false
	}
	return graph.UserID(u.ID), true
}

// IsAdmin reports whether the signed-in user holds the admin service
// role.
func IsAdmin(r *http.Request) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.Role == RoleAdmin
}

// CanManageOrg reports whether the viewer may mutate the organization:
// service admins always, otherwise users holding a direct or inherited
// admin edge (an admin of any ancestor organization).
func CanManageOrg(r *http.Request, g *graph.Graph, org graph.OrgID) bool {
	if IsAdmin(r) {
		return true
	}
	viewer, ok := Viewer(r)
	if !ok {
		return false
	}
	u, ok := g.User(viewer)
	if !ok {
		return false
	}
	if u.HasEdge(graph.RelAdmin, org) {
		return true
	}
	for _, ancestor := range g.AllParents(org, nil) {
		if u.HasEdge(graph.RelAdmin, ancestor.ID) {
			return true
		}
	}
	return false
}
