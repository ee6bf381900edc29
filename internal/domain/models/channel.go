// internal/domain/models/channel.go
package models

import "time"

// Notification channel kinds.
const (
	ChannelEmail     = "email"
	ChannelSMS       = "sms"
	ChannelTelegram  = "telegram"
	ChannelWebhook   = "webhook"
	ChannelDashboard = "dashboard"
)

// Channel is a persisted notification channel config for one user.
// Exactly the fields for the tagged kind are set; Fingerprint is the
// equality key the registry dedups on (kind plus the kind's own
// fields), so registering the same config twice is rejected by a
// unique (user_id, fingerprint) index.
type Channel struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Kind        string    `bson:"kind" json:"kind"`
	Fingerprint string    `bson:"fingerprint" json:"-"`

	Address string `bson:"address,omitempty" json:"address,omitempty"` // email
	Number  string `bson:"number,omitempty" json:"number,omitempty"`   // sms
	ChatID  string `bson:"chat_id,omitempty" json:"chat_id,omitempty"` // telegram
	URL     string `bson:"url,omitempty" json:"url,omitempty"`         // webhook
	Secret  string `bson:"secret,omitempty" json:"-"`                  // webhook signing secret

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
