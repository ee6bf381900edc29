// internal/domain/models/notification.go
package models

import "time"

// Notification is one dashboard inbox entry. The dashboard channel is
// the durable leg of dispatch: transport channels (email, sms, telegram,
// webhook) are fire-and-forget, this document is what the feed serves.
type Notification struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Subject   string    `bson:"subject" json:"subject"`
	Body      string    `bson:"body" json:"body"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ReadAt    time.Time `bson:"read_at,omitempty" json:"read_at,omitempty"`
}
