// internal/app/features/organizations/links.go
package organizations

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/orghub/internal/app/store/graphload"
	"github.com/dalemusser/orghub/internal/app/system/authz"
	"github.com/dalemusser/orghub/internal/app/system/httpjson"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"github.com/dalemusser/orghub/internal/domain/graph"
	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type parentLinkRequest struct {
	ParentID string `json:"parent_id"`
	Privacy  string `json:"privacy"`
}

// HandleLinkParent handles POST /organizations/{id}/links/parent:
// records {id} --is_child_of--> parent. The caller must manage the
// parent, since attaching a child grants its members a place in the
// parent's hierarchy.
func (h *Handler) HandleLinkParent(w http.ResponseWriter, r *http.Request) {
	childID := chi.URLParam(r, "id")

	var req parentLinkRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	parentID, err := graph.ParseOrgID(req.ParentID)
	if err != nil {
		httpjson.BadRequest(w, "parent_id is required")
		return
	}
	if string(parentID) == childID {
		httpjson.BadRequest(w, "an organization cannot be its own parent")
		return
	}
	privacy := graph.PrivacyWorld
	if req.Privacy != "" {
		if privacy, err = graph.ParsePrivacy(req.Privacy); err != nil {
			httpjson.BadRequest(w, err.Error())
			return
		}
	}

	if !authz.CanManageOrg(r, h.Graph, parentID) {
		httpjson.Forbidden(w, "not an admin of the parent organization")
		return
	}
	if _, ok := h.Graph.Organization(graph.OrgID(childID)); !ok {
		httpjson.NotFound(w, "organization not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	link, err := h.Links.Add(ctx, models.OrgLink{
		Kind:     models.LinkKindOrgOrg,
		Relation: string(graph.RelChildOf),
		SourceID: childID,
		TargetID: string(parentID),
		Privacy:  privacy.String(),
	})
	if err != nil {
		h.Log.Error("link insert failed", zap.Error(err),
			zap.String("child", childID), zap.String("parent", string(parentID)))
		httpjson.ServerError(w)
		return
	}

	if err := graphload.ApplyLink(h.Graph, link); err != nil {
		h.Log.Error("graph link failed after insert", zap.Error(err), zap.String("link_id", link.ID))
		httpjson.ServerError(w)
		return
	}

	h.Log.Info("organization linked to parent",
		zap.String("child", childID), zap.String("parent", string(parentID)))
	httpjson.Created(w, link)
}

// HandleUnlinkParent handles DELETE /organizations/{id}/links/parent/{parentID}:
// removes every is_child_of link between the two organizations.
func (h *Handler) HandleUnlinkParent(w http.ResponseWriter, r *http.Request) {
	childID := chi.URLParam(r, "id")
	parentID := chi.URLParam(r, "parentID")

	if !authz.CanManageOrg(r, h.Graph, graph.OrgID(parentID)) {
		httpjson.Forbidden(w, "not an admin of the parent organization")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	removed, err := h.Links.RemoveMatching(ctx,
		models.LinkKindOrgOrg, string(graph.RelChildOf), childID, parentID)
	if err != nil {
		h.Log.Error("link remove failed", zap.Error(err),
			zap.String("child", childID), zap.String("parent", parentID))
		httpjson.ServerError(w)
		return
	}

	err = h.Graph.UnlinkChild(graph.OrgID(childID), graph.OrgID(parentID))
	if err != nil && !errors.Is(err, graph.ErrOrgNotFound) {
		h.Log.Error("graph unlink failed after delete", zap.Error(err))
	}

	httpjson.OK(w, map[string]any{"removed": removed})
}
