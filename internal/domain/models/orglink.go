// internal/domain/models/orglink.go
package models

import "time"

// Link kinds stored in the org_links collection.
const (
	LinkKindUserOrg = "user2org" // source is a user ID, target an org ID
	LinkKindOrgOrg  = "org2org"  // source is the child org, target the parent
)

// OrgLink is the durable form of a graph edge: one document per edge,
// duplicates permitted. The in-memory graph is rebuilt from these at
// startup; both directions of an org2org link come from the same
// document.
type OrgLink struct {
	ID        string    `bson:"_id" json:"id"`
	Kind      string    `bson:"kind" json:"kind"`         // user2org | org2org
	Relation  string    `bson:"relation" json:"relation"` // is_admin | is_member | is_child_of
	SourceID  string    `bson:"source_id" json:"source_id"`
	TargetID  string    `bson:"target_id" json:"target_id"`
	Privacy   string    `bson:"privacy" json:"privacy"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
