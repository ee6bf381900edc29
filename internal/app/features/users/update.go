// internal/app/features/users/update.go
package users

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	userstore "github.com/dalemusser/orghub/internal/app/store/users"
	"github.com/dalemusser/orghub/internal/app/system/authz"
	"github.com/dalemusser/orghub/internal/app/system/httpjson"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"github.com/dalemusser/orghub/internal/domain/graph"
	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type updateRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Privacy  string `json:"privacy"`
	Disabled *bool  `json:"disabled"`
}

// HandleUpdate handles PUT /users/{id}. Service admins may update any
// account; everyone else only their own, and never their role or the
// disabled flag.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	viewer, _ := authz.Viewer(r)
	isAdmin := authz.IsAdmin(r)
	if !isAdmin && string(viewer) != id {
		httpjson.Forbidden(w, "you can only update your own account")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)

	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			httpjson.BadRequest(w, "invalid email address")
			return
		}
	}
	if req.Role != "" {
		if !isAdmin {
			httpjson.Forbidden(w, "only service admins can change roles")
			return
		}
		if !authz.ValidRole(req.Role) {
			httpjson.BadRequest(w, "unknown role")
			return
		}
	}
	if req.Disabled != nil && !isAdmin {
		httpjson.Forbidden(w, "only service admins can disable accounts")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	current, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.NotFound(w, "user not found")
			return
		}
		h.Log.Error("user lookup failed", zap.Error(err), zap.String("user_id", id))
		httpjson.ServerError(w)
		return
	}

	privacy := graph.Privacy(current.Privacy)
	if req.Privacy != "" {
		if privacy, err = graph.ParsePrivacy(req.Privacy); err != nil {
			httpjson.BadRequest(w, err.Error())
			return
		}
	}
	disabled := current.Disabled
	if req.Disabled != nil {
		disabled = *req.Disabled
	}

	err = h.Users.Update(ctx, id, models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		Privacy:  privacy.String(),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.Conflict(w, err.Error())
			return
		}
		h.Log.Error("user update failed", zap.Error(err), zap.String("user_id", id))
		httpjson.ServerError(w)
		return
	}
	if req.Disabled != nil {
		if err := h.Users.SetDisabled(ctx, id, disabled); err != nil {
			h.Log.Error("user disable failed", zap.Error(err), zap.String("user_id", id))
			httpjson.ServerError(w)
			return
		}
	}

	if err := h.Graph.SetUserAttrs(graph.UserID(id), req.FullName, req.Email, privacy, disabled); err != nil {
		h.Log.Error("graph update failed after write",
			zap.Error(err), zap.String("user_id", id))
	}

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("user reload failed", zap.Error(err), zap.String("user_id", id))
		httpjson.ServerError(w)
		return
	}
	httpjson.OK(w, u)
}
