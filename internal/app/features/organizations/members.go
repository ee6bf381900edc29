// internal/app/features/organizations/members.go
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

type memberLinkRequest struct {
	UserID  string `json:"user_id"`
	Privacy string `json:"privacy"`
}

// HandleAddMember handles POST /organizations/{id}/members.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	h.addUserLink(w, r, graph.RelMember)
}

// HandleAddAdmin handles POST /organizations/{id}/admins.
func (h *Handler) HandleAddAdmin(w http.ResponseWriter, r *http.Request) {
	h.addUserLink(w, r, graph.RelAdmin)
}

// HandleRemoveMember handles DELETE /organizations/{id}/members/{userID}.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	h.removeUserLink(w, r, graph.RelMember)
}

// HandleRemoveAdmin handles DELETE /organizations/{id}/admins/{userID}.
func (h *Handler) HandleRemoveAdmin(w http.ResponseWriter, r *http.Request) {
	h.removeUserLink(w, r, graph.RelAdmin)
}

// addUserLink persists one user→organization edge and applies it to the
// graph. Duplicate edges are legal and accumulate; whether someone is a
// member is a question over the edge list, not a uniqueness rule on it.
func (h *Handler) addUserLink(w http.ResponseWriter, r *http.Request, label graph.UserRelation) {
	orgID := chi.URLParam(r, "id")
	if !authz.CanManageOrg(r, h.Graph, graph.OrgID(orgID)) {
		httpjson.Forbidden(w, "not an admin of this organization")
		return
	}

	var req memberLinkRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	userID, err := graph.ParseUserID(req.UserID)
	if err != nil {
		httpjson.BadRequest(w, "user_id is required")
		return
	}
	privacy := graph.PrivacyWorld
	if req.Privacy != "" {
		if privacy, err = graph.ParsePrivacy(req.Privacy); err != nil {
			httpjson.BadRequest(w, err.Error())
			return
		}
	}

	if _, ok := h.Graph.User(userID); !ok {
		httpjson.NotFound(w, "user not found")
		return
	}
	if _, ok := h.Graph.Organization(graph.OrgID(orgID)); !ok {
		httpjson.NotFound(w, "organization not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	link, err := h.Links.Add(ctx, models.OrgLink{
		Kind:     models.LinkKindUserOrg,
		Relation: string(label),
		SourceID: string(userID),
		TargetID: orgID,
		Privacy:  privacy.String(),
	})
	if err != nil {
		h.Log.Error("member link insert failed", zap.Error(err),
			zap.String("user_id", string(userID)), zap.String("org_id", orgID))
		httpjson.ServerError(w)
		return
	}

	if err := graphload.ApplyLink(h.Graph, link); err != nil {
		h.Log.Error("graph link failed after insert", zap.Error(err), zap.String("link_id", link.ID))
		httpjson.ServerError(w)
		return
	}

	h.Log.Info("user linked to organization",
		zap.String("user_id", string(userID)),
		zap.String("org_id", orgID),
		zap.String("relation", string(label)))
	httpjson.Created(w, link)
}

// removeUserLink removes every (label, user) edge between the user and
// the organization, in Mongo and in the graph.
func (h *Handler) removeUserLink(w http.ResponseWriter, r *http.Request, label graph.UserRelation) {
	orgID := chi.URLParam(r, "id")
	userID := chi.URLParam(r, "userID")

	if !authz.CanManageOrg(r, h.Graph, graph.OrgID(orgID)) {
		httpjson.Forbidden(w, "not an admin of this organization")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	removed, err := h.Links.RemoveMatching(ctx,
		models.LinkKindUserOrg, string(label), userID, orgID)
	if err != nil {
		h.Log.Error("member link remove failed", zap.Error(err),
			zap.String("user_id", userID), zap.String("org_id", orgID))
		httpjson.ServerError(w)
		return
	}

	err = h.Graph.UnlinkUser(graph.UserID(userID), label, graph.OrgID(orgID))
	if err != nil && !errors.Is(err, graph.ErrUserNotFound) && !errors.Is(err, graph.ErrOrgNotFound) {
		h.Log.Error("graph unlink failed after delete", zap.Error(err))
	}

	httpjson.OK(w, map[string]any{"removed": removed})
}
