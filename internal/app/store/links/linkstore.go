// internal/app/store/links/linkstore.go
package linkstore

import (
	"context"
	"time"

	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store persists graph edges as one document per edge in org_links.
// There is no uniqueness constraint: duplicate edges are legal in the
// graph and accumulate here the same way.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("org_links")}
}

// Add inserts one edge document.
func (s *Store) Add(ctx context.Context, link models.OrgLink) (models.OrgLink, error) {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	link.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, link); err != nil {
		return models.OrgLink{}, err
	}
	return link, nil
}

// RemoveMatching deletes every edge with the exact (kind, relation,
// source, target). Removing edges that do not exist is a no-op.
// Returns the number of documents deleted.
func (s *Store) RemoveMatching(ctx context.Context, kind, relation, sourceID, targetID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"kind":      kind,
		"relation":  relation,
		"source_id": sourceID,
		"target_id": targetID,
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByEntity removes every edge touching the given entity ID on
// either end. Used when a user or organization is deleted.
func (s *Store) DeleteByEntity(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"$or": []bson.M{
			{"source_id": id},
			{"target_id": id},
		},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// All returns every stored edge. The graph loader consumes this at
// startup; the collection is expected to fit in memory.
func (s *Store) All(ctx context.Context) ([]models.OrgLink, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var links []models.OrgLink
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// ListBySource returns edges originating at the given entity.
func (s *Store) ListBySource(ctx context.Context, sourceID string) ([]models.OrgLink, error) {
	cur, err := s.c.Find(ctx, bson.M{"source_id": sourceID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var links []models.OrgLink
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// Count returns the number of edges matching the filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
