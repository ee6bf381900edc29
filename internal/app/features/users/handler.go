// internal/app/features/users/handler.go
package users

import (
	channelstore "github.com/dalemusser/orghub/internal/app/store/channels"
	linkstore "github.com/dalemusser/orghub/internal/app/store/links"
	notificationstore "github.com/dalemusser/orghub/internal/app/store/notifications"
	userstore "github.com/dalemusser/orghub/internal/app/store/users"
	"github.com/dalemusser/orghub/internal/domain/graph"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Users. Mutations write
// Mongo first, then apply the same change to the in-memory graph.
type Handler struct {
	Users         *userstore.Store
	Links         *linkstore.Store
	Channels      *channelstore.Store
	Notifications *notificationstore.Store
	Graph         *graph.Graph
	Log           *zap.Logger
}

// NewHandler constructs a Users handler.
func NewHandler(
	users *userstore.Store,
	links *linkstore.Store,
	channels *channelstore.Store,
	notifications *notificationstore.Store,
	g *graph.Graph,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Users:         users,
		Links:         links,
		Channels:      channels,
		Notifications: notifications,
		Graph:         g,
		Log:           logger,
	}
}
