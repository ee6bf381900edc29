// internal/domain/models/user.go
package models

import "time"

// User is the persisted twin of a graph user node.
//
// ID is a string UUID and doubles as the graph identifier. Role is the
// service-level role ("admin" | "user") used by the HTTP layer; graph
// admin rights are per-organization edges, not this field.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	FullName     string    `bson:"full_name" json:"full_name"`
	FullNameCI   string    `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string    `bson:"email" json:"email"`
	EmailCI      string    `bson:"email_ci" json:"-"`
	PasswordHash string    `bson:"password_hash,omitempty" json:"-"`
	Role         string    `bson:"role" json:"role"`
	Privacy      string    `bson:"privacy" json:"privacy"` // "private" | "world"
	Disabled     bool      `bson:"disabled" json:"disabled"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
