// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the Users routes (typically under "/users" from
// bootstrap). Reads and self-updates require a session; create, list,
// and delete require the admin service role.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/{id}", h.ServeGet)
		// Self-or-admin check happens in the handler.
		pr.Put("/{id}", h.HandleUpdate)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole(authz.RoleAdmin))

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
