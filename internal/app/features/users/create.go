// internal/app/features/users/create.go
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
	"go.uber.org/zap"
)

type createRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Privacy  string `json:"privacy"`
}

// HandleCreate handles POST /users (admin only): persists the user,
// then registers the node in the graph.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	if req.FullName == "" {
		httpjson.BadRequest(w, "full_name is required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		httpjson.BadRequest(w, "a valid email is required")
		return
	}
	if req.Role != "" && !authz.ValidRole(req.Role) {
		httpjson.BadRequest(w, "role must be admin or user")
		return
	}
	privacy := graph.PrivacyWorld
	if req.Privacy != "" {
		var err error
		if privacy, err = graph.ParsePrivacy(req.Privacy); err != nil {
			httpjson.BadRequest(w, err.Error())
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		Privacy:  privacy.String(),
	}, req.Password)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.Conflict(w, err.Error())
			return
		}
		h.Log.Error("user create failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	node := graph.NewUser(graph.UserID(u.ID), u.FullName, u.Email, privacy)
	if err := h.Graph.AddUser(node); err != nil {
		// The document exists but the node does not; surface loudly.
		h.Log.Error("graph add user failed after insert",
			zap.Error(err), zap.String("user_id", u.ID))
		httpjson.ServerError(w)
		return
	}

	h.Log.Info("user created", zap.String("user_id", u.ID))
	httpjson.Created(w, u)
}
