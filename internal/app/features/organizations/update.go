// internal/app/features/organizations/update.go
package organizations

import (
	"context"
	"errors"
	"net/http"
	"strings"

	organizationstore "github.com/dalemusser/orghub/internal/app/store/organizations"
	"github.com/dalemusser/orghub/internal/app/system/authz"
	"github.com/dalemusser/orghub/internal/app/system/httpjson"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"github.com/dalemusser/orghub/internal/domain/graph"
	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type updateRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
	Email       string `json:"email"`
	Privacy     string `json:"privacy"`
	Disabled    *bool  `json:"disabled"`
}

// HandleUpdate handles PUT /organizations/{id}. Graph admins of the
// organization (or an ancestor) and service admins may update it.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !authz.CanManageOrg(r, h.Graph, graph.OrgID(id)) {
		httpjson.Forbidden(w, "not an admin of this organization")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	current, err := h.Orgs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, organizationstore.ErrNotFound) {
			httpjson.NotFound(w, "organization not found")
			return
		}
		h.Log.Error("organization lookup failed", zap.Error(err), zap.String("org_id", id))
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

	err = h.Orgs.Update(ctx, id, models.Organization{
		Name:        req.Name,
		ContactInfo: req.ContactInfo,
		Email:       req.Email,
		Privacy:     privacy.String(),
	})
	if err != nil {
		if errors.Is(err, organizationstore.ErrDuplicateOrganization) {
			httpjson.Conflict(w, err.Error())
			return
		}
		h.Log.Error("organization update failed", zap.Error(err), zap.String("org_id", id))
		httpjson.ServerError(w)
		return
	}
	if req.Disabled != nil {
		if err := h.Orgs.SetDisabled(ctx, id, disabled); err != nil {
			h.Log.Error("organization disable failed", zap.Error(err), zap.String("org_id", id))
			httpjson.ServerError(w)
			return
		}
	}

	if err := h.Graph.SetOrgAttrs(graph.OrgID(id), req.Name, req.Email, privacy, disabled); err != nil {
		h.Log.Error("graph update failed after write",
			zap.Error(err), zap.String("org_id", id))
	}

	org, err := h.Orgs.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("organization reload failed", zap.Error(err), zap.String("org_id", id))
		httpjson.ServerError(w)
		return
	}
	httpjson.OK(w, org)
}
