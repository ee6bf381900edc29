// internal/app/features/organizations/delete.go
package organizations

import (
	"context"
	"net/http"

	"github.com/dalemusser/orghub/internal/app/system/httpjson"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"github.com/dalemusser/orghub/internal/domain/graph"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /organizations/{id} (admin only): removes
// the document and every link touching it, then detaches the node.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	deleted, err := h.Orgs.Delete(ctx, id)
	if err != nil {
		h.Log.Error("organization delete failed", zap.Error(err), zap.String("org_id", id))
		httpjson.ServerError(w)
		return
	}
	if deleted == 0 {
		httpjson.NotFound(w, "organization not found")
		return
	}

	if _, err := h.Links.DeleteByEntity(ctx, id); err != nil {
		h.Log.Error("organization link cleanup failed", zap.Error(err), zap.String("org_id", id))
	}

	h.Graph.RemoveOrganization(graph.OrgID(id))

	h.Log.Info("organization deleted", zap.String("org_id", id))
	httpjson.OK(w, map[string]string{"status": "deleted"})
}
