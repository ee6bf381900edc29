// internal/app/features/organizations/handler.go
package organizations

import (
	linkstore "github.com/dalemusser/orghub/internal/app/store/links"
	organizationstore "github.com/dalemusser/orghub/internal/app/store/organizations"
	userstore "github.com/dalemusser/orghub/internal/app/store/users"
	"github.com/dalemusser/orghub/internal/domain/graph"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Organizations. Every
// mutation writes Mongo first, then applies the same change to the
// in-memory graph so reads stay consistent without a reload.
type Handler struct {
	Orgs  *organizationstore.Store
	Links *linkstore.Store
	Users *userstore.Store
	Graph *graph.Graph
	Log   *zap.Logger
}

// NewHandler constructs an Organizations handler.
func NewHandler(
	orgs *organizationstore.Store,
	links *linkstore.Store,
	users *userstore.Store,
	g *graph.Graph,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Orgs:  orgs,
		Links: links,
		Users: users,
		Graph: g,
		Log:   logger,
	}
}

// memberInfo is the JSON shape for member and admin listings.
type memberInfo struct {
	ID    graph.UserID `json:"id"`
	Name  string       `json:"name"`
	Email string       `json:"email"`
}

func memberInfos(users []*graph.User) []memberInfo {
	out := make([]memberInfo, 0, len(users))
	for _, u := range users {
		out = append(out, memberInfo{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return out
}
