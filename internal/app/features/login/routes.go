// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes mounts the login endpoints (typically under "/login" from
// bootstrap). Logout is registered separately so it can sit at /logout.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandlePassword)
	r.Post("/token", h.HandleToken)
	r.Get("/google", h.ServeGoogleLogin)
	r.Get("/google/callback", h.ServeGoogleCallback)
	return r
}
