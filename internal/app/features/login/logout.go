// internal/app/features/login/logout.go
package login

import (
	"net/http"

	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// HandleLogout handles POST /logout: clears the session cookie.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("session sign-out failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}
	if u, ok := auth.CurrentUser(r); ok {
		h.Log.Info("user signed out", zap.String("user_id", u.ID))
	}
	httpjson.OK(w, map[string]string{"status": "signed_out"})
}
