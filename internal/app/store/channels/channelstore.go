// internal/app/store/channels/channelstore.go
package channelstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/orghub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store is the dedup-by-equality registry of notification channel
// configs. Equality is the channel fingerprint (kind plus its own
// fields); a unique (user_id, fingerprint) index enforces it, so the
// same config registered twice yields ErrDuplicateChannel.
type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateChannel = errors.New("this notification channel is already registered")
	ErrNotFound         = errors.New("notification channel not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notification_channels")}
}

// Register inserts a channel config. The caller supplies the
// fingerprint (see notify.Channel.Fingerprint).
func (s *Store) Register(ctx context.Context, ch models.Channel) (models.Channel, error) {
	if ch.ID == "" {
		ch.ID = uuid.NewString()
	}
	ch.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, ch); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Channel{}, ErrDuplicateChannel
		}
		return models.Channel{}, err
	}
	return ch, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Channel, error) {
	var ch models.Channel
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ch)
	if err == mongo.ErrNoDocuments {
		return models.Channel{}, ErrNotFound
	}
	if err != nil {
		return models.Channel{}, err
	}
	return ch, nil
}

// ListByUser returns every channel registered for the user.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]models.Channel, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var chs []models.Channel
	if err := cur.All(ctx, &chs); err != nil {
		return nil, err
	}
	return chs, nil
}

// Delete removes one channel owned by the user. Returns ErrNotFound
// when nothing matched, so handlers can 404.
func (s *Store) Delete(ctx context.Context, id, userID string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUser removes every channel for a user (account deletion).
func (s *Store) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
