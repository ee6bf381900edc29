package channelstore

import (
	"testing"

	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/dalemusser/orghub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db := testutil.SetupTestDB(t)

	// The dedup index EnsureSchema would create in production.
	_, err := db.Collection("notification_channels").Indexes().CreateOne(t.Context(), mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "fingerprint", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		t.Fatalf("create index: %v", err)
	}
	return New(db)
}

func emailChannel(userID, address string) models.Channel {
	return models.Channel{
		UserID:      userID,
		Kind:        "email",
		Address:     address,
		Fingerprint: "email|" + address,
	}
}

func TestRegisterDedupPerUser(t *testing.T) {
	s := newStore(t)
	ctx := t.Context()

	if _, err := s.Register(ctx, emailChannel("user-1", "a@example.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.Register(ctx, emailChannel("user-1", "a@example.com")); err != ErrDuplicateChannel {
		t.Fatalf("Register duplicate = %v, want ErrDuplicateChannel", err)
	}

	// A different config for the same user is fine.
	if _, err := s.Register(ctx, emailChannel("user-1", "b@example.com")); err != nil {
		t.Errorf("Register different address: %v", err)
	}
	// The same config under another user is fine too.
	if _, err := s.Register(ctx, emailChannel("user-2", "a@example.com")); err != nil {
		t.Errorf("Register for second user: %v", err)
	}
}

func TestListByUserAndDelete(t *testing.T) {
	s := newStore(t)
	ctx := t.Context()

	mine, err := s.Register(ctx, emailChannel("user-1", "mine@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := s.Register(ctx, emailChannel("user-2", "theirs@example.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	list, err := s.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 || list[0].ID != mine.ID {
		t.Errorf("ListByUser = %+v, want only the owner's channel", list)
	}

	// Deleting with the wrong owner must not touch the channel.
	if err := s.Delete(ctx, mine.ID, "user-2"); err != ErrNotFound {
		t.Errorf("Delete as wrong user = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, mine.ID, "user-1"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if _, err := s.GetByID(ctx, mine.ID); err != ErrNotFound {
		t.Errorf("GetByID after delete = %v, want ErrNotFound", err)
	}
}

func TestDeleteByUser(t *testing.T) {
	s := newStore(t)
	ctx := t.Context()

	for _, addr := range []string{"a@example.com", "b@example.com"} {
		if _, err := s.Register(ctx, emailChannel("user-1", addr)); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	if _, err := s.Register(ctx, emailChannel("user-2", "keep@example.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	n, err := s.DeleteByUser(ctx, "user-1")
	if err != nil || n != 2 {
		t.Fatalf("DeleteByUser = (%d, %v), want (2, nil)", n, err)
	}
	left, _ := s.ListByUser(ctx, "user-2")
	if len(left) != 1 {
		t.Errorf("other user's channels affected: %+v", left)
	}
}
