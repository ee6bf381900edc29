// internal/domain/models/organization.go
package models

import "time"

// Organization is the persisted twin of a graph organization node.
// Hierarchy and membership live in the org_links collection, never
// embedded here.
type Organization struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	NameCI      string    `bson:"name_ci" json:"-"` // always stored
	ContactInfo string    `bson:"contact_info" json:"contact_info,omitempty"`
	Email       string    `bson:"email,omitempty" json:"email,omitempty"`
	Privacy     string    `bson:"privacy" json:"privacy"` // "private" | "world"
	Disabled    bool      `bson:"disabled" json:"disabled"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
