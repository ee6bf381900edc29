// internal/app/features/organizations/create.go
package organizations

import (
	"context"
	"errors"
	"net/http"
	"strings"

	organizationstore "github.com/dalemusser/orghub/internal/app/store/organizations"
	"github.com/dalemusser/orghub/internal/app/system/httpjson"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"github.com/dalemusser/orghub/internal/domain/graph"
	"github.com/dalemusser/orghub/internal/domain/models"
	"go.uber.org/zap"
)

type createRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
	Email       string `json:"email"`
	Privacy     string `json:"privacy"`
}

// HandleCreate handles POST /organizations (admin only).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		httpjson.BadRequest(w, "name is required")
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

	org, err := h.Orgs.Create(ctx, models.Organization{
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
		h.Log.Error("organization create failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	node := graph.NewOrganization(graph.OrgID(org.ID), org.Name, org.Email, privacy)
	if err := h.Graph.AddOrganization(node); err != nil {
		h.Log.Error("graph add organization failed after insert",
			zap.Error(err), zap.String("org_id", org.ID))
		httpjson.ServerError(w)
		return
	}

	h.Log.Info("organization created", zap.String("org_id", org.ID))
	httpjson.Created(w, org)
}
