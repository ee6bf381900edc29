// internal/app/features/organizations/routes.go
package organizations

import (
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Organization routes under the base path
// (typically "/organizations" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Signed-in reads. Privacy scoping happens per edge inside the
	// handlers, not at the route level.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/{id}", h.ServeGet)
		pr.Get("/{id}/parents", h.ServeParents)
		pr.Get("/{id}/children", h.ServeChildren)
		pr.Get("/{id}/members", h.ServeMembers)
		pr.Get("/{id}/admins", h.ServeAdmins)
		pr.Get("/{id}/tree", h.ServeTree)
	})

	// Mutations gated by graph admin rights (checked in the handlers;
	// service admins always pass).
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Put("/{id}", h.HandleUpdate)
		pr.Post("/{id}/links/parent", h.HandleLinkParent)
		pr.Delete("/{id}/links/parent/{parentID}", h.HandleUnlinkParent)
		pr.Post("/{id}/members", h.HandleAddMember)
		pr.Delete("/{id}/members/{userID}", h.HandleRemoveMember)
		pr.Post("/{id}/admins", h.HandleAddAdmin)
		pr.Delete("/{id}/admins/{userID}", h.HandleRemoveAdmin)
	})

	// Service-admin only.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole(authz.RoleAdmin))

		pr.Post("/", h.HandleCreate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
