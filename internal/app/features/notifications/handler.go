// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	notificationstore "github.com/dalemusser/orghub/internal/app/store/notifications"
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/app/system/httpjson"
	"github.com/dalemusser/orghub/internal/app/system/notify"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"github.com/dalemusser/orghub/internal/domain/graph"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler owns sending notifications and the dashboard feed.
type Handler struct {
	Dispatcher *notify.Dispatcher
	Inbox      *notificationstore.Store
	Graph      *graph.Graph
	Log        *zap.Logger
}

// NewHandler constructs a Notifications handler.
func NewHandler(dispatcher *notify.Dispatcher, inbox *notificationstore.Store, g *graph.Graph, logger *zap.Logger) *Handler {
	return &Handler{
		Dispatcher: dispatcher,
		Inbox:      inbox,
		Graph:      g,
		Log:        logger,
	}
}

type sendRequest struct {
	UserID   string `json:"user_id"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	HTMLBody string `json:"html_body"`
}

// HandleSend handles POST /notifications (admin only): fans the message
// out over the recipient's registered channels.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Subject == "" {
		httpjson.BadRequest(w, "subject is required")
		return
	}
	userID, err := graph.ParseUserID(req.UserID)
	if err != nil {
		httpjson.BadRequest(w, "user_id is required")
		return
	}
	if _, ok := h.Graph.User(userID); !ok {
		httpjson.NotFound(w, "user not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	msg := notify.Message{Subject: req.Subject, Body: req.Body, HTMLBody: req.HTMLBody}
	if err := h.Dispatcher.Notify(ctx, string(userID), msg); err != nil {
		h.Log.Error("notification dispatch failed",
			zap.Error(err), zap.String("user_id", string(userID)))
		httpjson.ServerError(w)
		return
	}

	h.Log.Info("notification dispatched", zap.String("user_id", string(userID)))
	httpjson.OK(w, map[string]string{"status": "dispatched"})
}

// ServeFeed handles GET /notifications: the signed-in user's dashboard
// inbox, newest first, plus the unread count. ?limit= caps the page.
func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	var limit int64
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Inbox.ListByUser(ctx, user.ID, limit)
	if err != nil {
		h.Log.Error("notification feed failed", zap.Error(err), zap.String("user_id", user.ID))
		httpjson.ServerError(w)
		return
	}
	unread, err := h.Inbox.CountUnread(ctx, user.ID)
	if err != nil {
		h.Log.Error("unread count failed", zap.Error(err), zap.String("user_id", user.ID))
		httpjson.ServerError(w)
		return
	}

	httpjson.OK(w, map[string]any{
		"notifications": items,
		"unread":        unread,
	})
}

// HandleMarkRead handles POST /notifications/{id}/read.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Inbox.MarkRead(ctx, id, user.ID); err != nil {
		if errors.Is(err, notificationstore.ErrNotFound) {
			httpjson.NotFound(w, "notification not found")
			return
		}
		h.Log.Error("mark read failed", zap.Error(err), zap.String("notification_id", id))
		httpjson.ServerError(w)
		return
	}
	httpjson.OK(w, map[string]string{"status": "read"})
}
