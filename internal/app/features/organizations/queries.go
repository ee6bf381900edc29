// internal/app/features/organizations/queries.go
package organizations

import (
	"errors"
	"net/http"

	"github.com/dalemusser/orghub/internal/app/system/authz"
	"github.com/dalemusser/orghub/internal/app/system/httpjson"
	"github.com/dalemusser/orghub/internal/domain/graph"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// orgSummary is the JSON shape for hierarchy listings.
type orgSummary struct {
	ID   graph.OrgID `json:"id"`
	Name string      `json:"name"`
}

// ServeParents handles GET /organizations/{id}/parents: the full
// ancestor closure, cycle-safe, disabled organizations excluded.
func (h *Handler) ServeParents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.Graph.Organization(graph.OrgID(id)); !ok {
		httpjson.NotFound(w, "organization not found")
		return
	}

	ancestors := h.Graph.AllParents(graph.OrgID(id), func(o *graph.Organization) bool {
		return !o.Disabled
	})
	out := make([]orgSummary, 0, len(ancestors))
	for _, o := range ancestors {
		out = append(out, orgSummary{ID: o.ID, Name: o.Name})
	}
	httpjson.OK(w, out)
}

// ServeChildren handles GET /organizations/{id}/children: direct
// children only.
func (h *Handler) ServeChildren(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	org, ok := h.Graph.Organization(graph.OrgID(id))
	if !ok {
		httpjson.NotFound(w, "organization not found")
		return
	}

	out := make([]orgSummary, 0)
	for _, childID := range org.Children() {
		child, ok := h.Graph.Organization(childID)
		if !ok || child.Disabled {
			continue
		}
		out = append(out, orgSummary{ID: child.ID, Name: child.Name})
	}
	httpjson.OK(w, out)
}

// ServeMembers handles GET /organizations/{id}/members: direct members,
// with private edges hidden from viewers they do not concern.
func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
	h.serveUserList(w, r, h.Graph.MembersVisibleTo)
}

// ServeAdmins handles GET /organizations/{id}/admins.
func (h *Handler) ServeAdmins(w http.ResponseWriter, r *http.Request) {
	h.serveUserList(w, r, h.Graph.AdminsVisibleTo)
}

func (h *Handler) serveUserList(
	w http.ResponseWriter,
	r *http.Request,
	visible func(graph.OrgID, graph.UserID) []*graph.User,
) {
	id := chi.URLParam(r, "id")
	if _, ok := h.Graph.Organization(graph.OrgID(id)); !ok {
		httpjson.NotFound(w, "organization not found")
		return
	}

	viewer, _ := authz.Viewer(r)
	httpjson.OK(w, memberInfos(visible(graph.OrgID(id), viewer)))
}

// ServeTree handles GET /organizations/{id}/tree: the viewer-scoped
// hierarchy projection with capability flags, pruned to what the viewer
// may see.
func (h *Handler) ServeTree(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	viewer, ok := authz.Viewer(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}

	info, err := h.Graph.BuildTree(graph.OrgID(id), viewer)
	if err != nil {
		switch {
		case errors.Is(err, graph.ErrOrgNotFound):
			httpjson.NotFound(w, "organization not found")
		case errors.Is(err, graph.ErrUserNotFound):
			// A session can outlive its user account.
			httpjson.NotFound(w, "viewer account not found")
		default:
			h.Log.Error("tree projection failed", zap.Error(err), zap.String("org_id", id))
			httpjson.ServerError(w)
		}
		return
	}
	httpjson.OK(w, info)
}
