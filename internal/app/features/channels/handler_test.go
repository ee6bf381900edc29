package channels_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/orghub/internal/app/features/channels"
	channelstore "github.com/dalemusser/orghub/internal/app/store/channels"
	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/dalemusser/orghub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) *channels.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)

	// The dedup index EnsureSchema would create in production.
	_, err := db.Collection("notification_channels").Indexes().CreateOne(
		t.Context(),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "fingerprint", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	if err != nil {
		t.Fatalf("create dedup index: %v", err)
	}

	return channels.NewHandler(channelstore.New(db), zap.NewNop())
}

func register(t *testing.T, h *channels.Handler, user testutil.TestUser, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, "POST", "/channels", body)
	req = testutil.WithUser(req, user)
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, req)
	return rec
}

func TestHandleRegister_DuplicateConflict(t *testing.T) {
	h := newHandler(t)
	user := testutil.RegularUser()
	body := map[string]string{"kind": "email", "address": "me@example.com"}

	if rec := register(t, h, user, body); rec.Code != http.StatusCreated {
		t.Fatalf("first register: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec := register(t, h, user, body); rec.Code != http.StatusConflict {
		t.Fatalf("second register: status = %d, want 409", rec.Code)
	}

	// A different address is a different channel.
	other := map[string]string{"kind": "email", "address": "other@example.com"}
	if rec := register(t, h, user, other); rec.Code != http.StatusCreated {
		t.Fatalf("different config: status = %d, want 201", rec.Code)
	}
}

func TestHandleRegister_SameConfigDifferentUsers(t *testing.T) {
	h := newHandler(t)
	body := map[string]string{"kind": "email", "address": "shared@example.com"}

	if rec := register(t, h, testutil.RegularUser(), body); rec.Code != http.StatusCreated {
		t.Fatalf("first user: status = %d", rec.Code)
	}
	if rec := register(t, h, testutil.RegularUser(), body); rec.Code != http.StatusCreated {
		t.Fatalf("second user: status = %d, dedup must be per user", rec.Code)
	}
}

func TestHandleRegister_Validation(t *testing.T) {
	h := newHandler(t)
	user := testutil.RegularUser()

	cases := []map[string]string{
		{"kind": "email", "address": "not-an-email"},
		{"kind": "sms"},
		{"kind": "telegram"},
		{"kind": "webhook", "url": "ftp://example.com"},
		{"kind": "pigeon"},
	}
	for _, body := range cases {
		if rec := register(t, h, user, body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %v: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestServeList_OwnChannelsOnly(t *testing.T) {
	h := newHandler(t)
	alice := testutil.RegularUser()
	bob := testutil.RegularUser()

	register(t, h, alice, map[string]string{"kind": "dashboard"})
	register(t, h, bob, map[string]string{"kind": "email", "address": "bob@example.com"})

	req := testutil.WithUser(httptest.NewRequest("GET", "/channels", nil), alice)
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var chs []models.Channel
	if err := json.Unmarshal(testutil.DecodeEnvelope(t, rec).Data, &chs); err != nil {
		t.Fatalf("decode channels: %v", err)
	}
	if len(chs) != 1 || chs[0].Kind != models.ChannelDashboard {
		t.Fatalf("alice's channels = %v, want one dashboard", chs)
	}
}

func TestHandleDelete_OtherUsersChannelIs404(t *testing.T) {
	h := newHandler(t)
	alice := testutil.RegularUser()
	bob := testutil.RegularUser()

	rec := register(t, h, alice, map[string]string{"kind": "dashboard"})
	var ch models.Channel
	if err := json.Unmarshal(testutil.DecodeEnvelope(t, rec).Data, &ch); err != nil {
		t.Fatalf("decode channel: %v", err)
	}

	req := testutil.WithUser(httptest.NewRequest("DELETE", "/channels/"+ch.ID, nil), bob)
	req = testutil.WithChiURLParam(req, "id", ch.ID)
	rec2 := httptest.NewRecorder()
	h.HandleDelete(rec2, req)
	if rec2.Code != http.StatusNotFound {
		t.Fatalf("bob deleting alice's channel: status = %d, want 404", rec2.Code)
	}

	req = testutil.WithUser(httptest.NewRequest("DELETE", "/channels/"+ch.ID, nil), alice)
	req = testutil.WithChiURLParam(req, "id", ch.ID)
	rec2 = httptest.NewRecorder()
	h.HandleDelete(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("alice deleting own channel: status = %d", rec2.Code)
	}
}
