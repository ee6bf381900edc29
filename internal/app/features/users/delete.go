// internal/app/features/users/delete.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/orghub/internal/app/system/httpjson"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"github.com/dalemusser/orghub/internal/domain/graph"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /users/{id} (admin only): removes the
// user document, their links, channels, and notifications, then
// detaches the node from the graph.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	deleted, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.Log.Error("user delete failed", zap.Error(err), zap.String("user_id", id))
		httpjson.ServerError(w)
		return
	}
	if deleted == 0 {
		httpjson.NotFound(w, "user not found")
		return
	}

	if _, err := h.Links.DeleteByEntity(ctx, id); err != nil {
		h.Log.Error("user link cleanup failed", zap.Error(err), zap.String("user_id", id))
	}
	if _, err := h.Channels.DeleteByUser(ctx, id); err != nil {
		h.Log.Error("user channel cleanup failed", zap.Error(err), zap.String("user_id", id))
	}
	if _, err := h.Notifications.DeleteByUser(ctx, id); err != nil {
		h.Log.Error("user notification cleanup failed", zap.Error(err), zap.String("user_id", id))
	}

	h.Graph.RemoveUser(graph.UserID(id))

	h.Log.Info("user deleted", zap.String("user_id", id))
	httpjson.OK(w, map[string]string{"status": "deleted"})
}
