// internal/app/features/channels/routes.go
package channels

import (
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the channel registry routes (typically under
// "/channels" from bootstrap). All of them require a session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/", h.HandleRegister)
	r.Get("/", h.ServeList)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
