// internal/app/system/notify/dispatcher.go
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	channelstore "github.com/dalemusser/orghub/internal/app/store/channels"
	notificationstore "github.com/dalemusser/orghub/internal/app/store/notifications"
	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Message is what callers hand to the dispatcher. Subject and Body are
// plain text; any markup is stripped before delivery. HTMLBody is
// optional rich content for the email leg: it is sanitized down to safe
// user markup rather than stripped, and the other transports ignore it.
type Message struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	HTMLBody string `json:"html_body,omitempty"`
}

// Envelope is one delivery job on the bus: a message bound to a single
// resolved channel. Workers subscribe per kind on notify.<kind>.
type Envelope struct {
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
	Kind      string `json:"kind"`

	Address string `json:"address,omitempty"`
	Number  string `json:"number,omitempty"`
	ChatID  string `json:"chat_id,omitempty"`
	URL     string `json:"url,omitempty"`
	Secret  string `json:"secret,omitempty"`

	Subject  string `json:"subject"`
	Body     string `json:"body"`
	HTMLBody string `json:"html_body,omitempty"`
}

// SubjectFor returns the bus subject a channel kind's envelopes ride on.
func SubjectFor(kind string) string {
	return "notify." + kind
}

// Dispatcher resolves a user's registered channels and fans a message
// out across them. The dashboard channel is handled inline (one Mongo
// insert); transport channels are published to the bus and picked up
// by the delivery workers.
type Dispatcher struct {
	channels *channelstore.Store
	inbox    *notificationstore.Store
	nc       *nats.Conn
	strip    *bluemonday.Policy
	html     *bluemonday.Policy
	log      *zap.Logger
}

func NewDispatcher(channels *channelstore.Store, inbox *notificationstore.Store, nc *nats.Conn, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		inbox:    inbox,
		nc:       nc,
		strip:    bluemonday.StrictPolicy(),
		html:     bluemonday.UGCPolicy(),
		log:      logger,
	}
}

// sanitize normalizes an incoming message: subject and body are reduced
// to plain text, the HTML body keeps safe user markup and loses
// everything else.
func (d *Dispatcher) sanitize(msg Message) Message {
	msg.Subject = strings.TrimSpace(d.strip.Sanitize(msg.Subject))
	msg.Body = strings.TrimSpace(d.strip.Sanitize(msg.Body))
	msg.HTMLBody = strings.TrimSpace(d.html.Sanitize(msg.HTMLBody))
	return msg
}

// Notify delivers msg to every channel the user has registered. A user
// with no channels gets nothing; that is not an error. Transport
// publish failures are logged per channel and do not stop the fan-out;
// an error is returned only when the channel lookup or the dashboard
// write fails.
func (d *Dispatcher) Notify(ctx context.Context, userID string, msg Message) error {
	msg = d.sanitize(msg)
	if msg.Subject == "" {
		return fmt.Errorf("notify: empty subject")
	}

	chs, err := d.channels.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("notify: list channels for %s: %w", userID, err)
	}

	for _, ch := range chs {
		if ch.Kind == models.ChannelDashboard {
			_, err := d.inbox.Insert(ctx, models.Notification{
				UserID:  userID,
				Subject: msg.Subject,
				Body:    msg.Body,
			})
			if err != nil {
				return fmt.Errorf("notify: dashboard insert for %s: %w", userID, err)
			}
			continue
		}

		env := Envelope{
			ChannelID: ch.ID,
			UserID:    userID,
			Kind:      ch.Kind,
			Address:   ch.Address,
			Number:    ch.Number,
			ChatID:    ch.ChatID,
			URL:       ch.URL,
			Secret:    ch.Secret,
			Subject:   msg.Subject,
			Body:      msg.Body,
			HTMLBody:  msg.HTMLBody,
		}
		data, err := json.Marshal(env)
		if err != nil {
			return fmt.Errorf("notify: marshal envelope: %w", err)
		}
		if err := d.nc.Publish(SubjectFor(ch.Kind), data); err != nil {
			d.log.Error("notification publish failed",
				zap.String("user_id", userID),
				zap.String("kind", ch.Kind),
				zap.Error(err))
		}
	}
	return nil
}
