// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the notification routes (typically under
// "/notifications" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/", h.ServeFeed)
		pr.Post("/{id}/read", h.HandleMarkRead)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole(authz.RoleAdmin))
		pr.Post("/", h.HandleSend)
	})

	return r
}
