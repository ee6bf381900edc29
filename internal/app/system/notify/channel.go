// Package notify implements the notification pipeline: typed channel
// configs, the dispatcher that fans a message out over a user's
// registered channels, and the delivery workers that drain the bus.
package notify

import (
	"fmt"
	"strings"

	"github.com/dalemusser/orghub/internal/domain/models"
)

// Channel is one delivery target config. Fingerprint is the equality
// key the registry dedups on: two configs with the same fingerprint
// are the same channel.
type Channel interface {
	Kind() string
	Fingerprint() string
}

// EmailChannel delivers over SMTP to a single address.
type EmailChannel struct {
	Address string
}

func (c EmailChannel) Kind() string        { return models.ChannelEmail }
func (c EmailChannel) Fingerprint() string { return fingerprint(c.Kind(), c.Address) }

// SMSChannel delivers through the configured SMS gateway.
type SMSChannel struct {
	Number string
}

func (c SMSChannel) Kind() string        { return models.ChannelSMS }
func (c SMSChannel) Fingerprint() string { return fingerprint(c.Kind(), c.Number) }

// TelegramChannel delivers through the Telegram Bot API to one chat.
type TelegramChannel struct {
	ChatID string
}

func (c TelegramChannel) Kind() string        { return models.ChannelTelegram }
func (c TelegramChannel) Fingerprint() string { return fingerprint(c.Kind(), c.ChatID) }

// WebhookChannel POSTs the message to a caller-owned URL. The secret
// signs the request so the receiver can verify origin; it is not part
// of the fingerprint, so re-registering the same URL with a new secret
// still counts as a duplicate.
type WebhookChannel struct {
	URL    string
	Secret string
}

func (c WebhookChannel) Kind() string        { return models.ChannelWebhook }
func (c WebhookChannel) Fingerprint() string { return fingerprint(c.Kind(), c.URL) }

// DashboardChannel is the durable in-app leg: delivery writes an inbox
// document instead of leaving the process. A user has at most one,
// since the fingerprint carries no fields.
type DashboardChannel struct{}

func (c DashboardChannel) Kind() string        { return models.ChannelDashboard }
func (c DashboardChannel) Fingerprint() string { return fingerprint(c.Kind()) }

func fingerprint(parts ...string) string {
	return strings.Join(parts, "|")
}

// FromModel rebuilds the typed channel from its persisted form.
func FromModel(m models.Channel) (Channel, error) {
	switch m.Kind {
	case models.ChannelEmail:
		return EmailChannel{Address: m.Address}, nil
	case models.ChannelSMS:
		return SMSChannel{Number: m.Number}, nil
	case models.ChannelTelegram:
		return TelegramChannel{ChatID: m.ChatID}, nil
	case models.ChannelWebhook:
		return WebhookChannel{URL: m.URL, Secret: m.Secret}, nil
	case models.ChannelDashboard:
		return DashboardChannel{}, nil
	default:
		return nil, fmt.Errorf("unknown channel kind %q", m.Kind)
	}
}

// ToModel flattens a typed channel into its persisted form for the
// given user. The store fills ID and CreatedAt.
func ToModel(userID string, ch Channel) models.Channel {
	m := models.Channel{
		UserID:      userID,
		Kind:        ch.Kind(),
		Fingerprint: ch.Fingerprint(),
	}
	switch c := ch.(type) {
	case EmailChannel:
		m.Address = c.Address
	case SMSChannel:
		m.Number = c.Number
	case TelegramChannel:
		m.ChatID = c.ChatID
	case WebhookChannel:
		m.URL = c.URL
		m.Secret = c.Secret
	}
	return m
}
