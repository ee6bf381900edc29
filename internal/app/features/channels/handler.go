// internal/app/features/channels/handler.go
package channels

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"net/url"
	"strings"

	channelstore "github.com/dalemusser/orghub/internal/app/store/channels"
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/app/system/httpjson"
	"github.com/dalemusser/orghub/internal/app/system/notify"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler owns the notification channel registry endpoints. Users
// manage only their own channels; the session identifies the owner.
type Handler struct {
	Channels *channelstore.Store
	Log      *zap.Logger
}

// NewHandler constructs a Channels handler.
func NewHandler(channels *channelstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Channels: channels, Log: logger}
}

type registerRequest struct {
	Kind    string `json:"kind"`
	Address string `json:"address,omitempty"`
	Number  string `json:"number,omitempty"`
	ChatID  string `json:"chat_id,omitempty"`
	URL     string `json:"url,omitempty"`
	Secret  string `json:"secret,omitempty"`
}

// HandleRegister handles POST /channels: registers one channel config
// for the signed-in user. Registering a config equal to an existing
// one returns 409.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}

	ch, err := channelFromRequest(req)
	if err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	stored, err := h.Channels.Register(ctx, notify.ToModel(user.ID, ch))
	if err != nil {
		if errors.Is(err, channelstore.ErrDuplicateChannel) {
			httpjson.Conflict(w, err.Error())
			return
		}
		h.Log.Error("channel register failed", zap.Error(err), zap.String("user_id", user.ID))
		httpjson.ServerError(w)
		return
	}

	h.Log.Info("notification channel registered",
		zap.String("user_id", user.ID), zap.String("kind", stored.Kind))
	httpjson.Created(w, stored)
}

// ServeList handles GET /channels: the signed-in user's channels.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	chs, err := h.Channels.ListByUser(ctx, user.ID)
	if err != nil {
		h.Log.Error("channel list failed", zap.Error(err), zap.String("user_id", user.ID))
		httpjson.ServerError(w)
		return
	}
	httpjson.OK(w, chs)
}

// HandleDelete handles DELETE /channels/{id}: removes one of the
// signed-in user's channels.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Channels.Delete(ctx, id, user.ID); err != nil {
		if errors.Is(err, channelstore.ErrNotFound) {
			httpjson.NotFound(w, "channel not found")
			return
		}
		h.Log.Error("channel delete failed", zap.Error(err), zap.String("channel_id", id))
		httpjson.ServerError(w)
		return
	}
	httpjson.OK(w, map[string]string{"status": "deleted"})
}

// channelFromRequest validates the request and builds the typed
// channel, which supplies the fingerprint.
func channelFromRequest(req registerRequest) (notify.Channel, error) {
	switch req.Kind {
	case models.ChannelEmail:
		if _, err := mail.ParseAddress(req.Address); err != nil {
			return nil, errors.New("a valid address is required for an email channel")
		}
		return notify.EmailChannel{Address: req.Address}, nil
	case models.ChannelSMS:
		number := strings.TrimSpace(req.Number)
		if number == "" {
			return nil, errors.New("number is required for an sms channel")
		}
		return notify.SMSChannel{Number: number}, nil
	case models.ChannelTelegram:
		chatID := strings.TrimSpace(req.ChatID)
		if chatID == "" {
			return nil, errors.New("chat_id is required for a telegram channel")
		}
		return notify.TelegramChannel{ChatID: chatID}, nil
	case models.ChannelWebhook:
		u, err := url.Parse(req.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, errors.New("a valid http(s) url is required for a webhook channel")
		}
		return notify.WebhookChannel{URL: req.URL, Secret: req.Secret}, nil
	case models.ChannelDashboard:
		return notify.DashboardChannel{}, nil
	default:
		return nil, errors.New("kind must be one of email, sms, telegram, webhook, dashboard")
	}
}
