// internal/app/features/organizations/get.go
package organizations

import (
	"context"
	"errors"
	"net/http"

	organizationstore "github.com/dalemusser/orghub/internal/app/store/organizations"
	"github.com/dalemusser/orghub/internal/app/system/httpjson"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeGet handles GET /organizations/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, organizationstore.ErrNotFound) {
			httpjson.NotFound(w, "organization not found")
			return
		}
		h.Log.Error("organization lookup failed", zap.Error(err), zap.String("org_id", id))
		httpjson.ServerError(w)
		return
	}
	httpjson.OK(w, org)
}
