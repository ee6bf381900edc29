package notifications_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/orghub/internal/app/features/notifications"
	channelstore "github.com/dalemusser/orghub/internal/app/store/channels"
	notificationstore "github.com/dalemusser/orghub/internal/app/store/notifications"
	"github.com/dalemusser/orghub/internal/app/system/notify"
	"github.com/dalemusser/orghub/internal/domain/graph"
	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/dalemusser/orghub/internal/testutil"
	"go.uber.org/zap"
)

// newHandler wires a dispatcher without a bus connection; tests use
// dashboard channels, which are delivered inline.
func newHandler(t *testing.T) (*notifications.Handler, *channelstore.Store, *graph.Graph) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	chans := channelstore.New(db)
	inbox := notificationstore.New(db)
	g := graph.New()

	d := notify.NewDispatcher(chans, inbox, nil, zap.NewNop())
	return notifications.NewHandler(d, inbox, g, zap.NewNop()), chans, g
}

func addGraphUser(t *testing.T, g *graph.Graph, id string) {
	t.Helper()
	u := graph.NewUser(graph.UserID(id), "User "+id, id+"@test.com", graph.PrivacyWorld)
	if err := g.AddUser(u); err != nil {
		t.Fatalf("add graph user: %v", err)
	}
}

func registerDashboard(t *testing.T, chans *channelstore.Store, userID string) {
	t.Helper()
	ch := notify.ToModel(userID, notify.DashboardChannel{})
	if _, err := chans.Register(context.Background(), ch); err != nil {
		t.Fatalf("register dashboard channel: %v", err)
	}
}

func TestHandleSend_LandsInDashboardFeed(t *testing.T) {
	h, chans, g := newHandler(t)
	addGraphUser(t, g, "alice")
	registerDashboard(t, chans, "alice")

	req := testutil.NewJSONRequest(t, "POST", "/notifications", map[string]string{
		"user_id": "alice",
		"subject": "Welcome",
		"body":    "Your account is ready.",
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.HandleSend(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("send: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	alice := testutil.TestUser{ID: "alice", Name: "Alice", Email: "alice@test.com", Role: "user"}
	feedReq := testutil.WithUser(httptest.NewRequest("GET", "/notifications", nil), alice)
	rec = httptest.NewRecorder()
	h.ServeFeed(rec, feedReq)

	if rec.Code != http.StatusOK {
		t.Fatalf("feed: status = %d", rec.Code)
	}
	var feed struct {
		Notifications []models.Notification `json:"notifications"`
		Unread        int64                 `json:"unread"`
	}
	if err := json.Unmarshal(testutil.DecodeEnvelope(t, rec).Data, &feed); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if len(feed.Notifications) != 1 {
		t.Fatalf("feed length = %d, want 1", len(feed.Notifications))
	}
	if feed.Notifications[0].Subject != "Welcome" {
		t.Errorf("subject = %q", feed.Notifications[0].Subject)
	}
	if feed.Unread != 1 {
		t.Errorf("unread = %d, want 1", feed.Unread)
	}
}

func TestHandleSend_NoChannelsIsStillOK(t *testing.T) {
	h, _, g := newHandler(t)
	addGraphUser(t, g, "bob")

	req := testutil.NewJSONRequest(t, "POST", "/notifications", map[string]string{
		"user_id": "bob",
		"subject": "Ping",
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.HandleSend(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, a user without channels is not an error", rec.Code)
	}
}

func TestHandleSend_UnknownUser(t *testing.T) {
	h, _, _ := newHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/notifications", map[string]string{
		"user_id": "ghost",
		"subject": "Boo",
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.HandleSend(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleSend_EmptySubject(t *testing.T) {
	h, _, g := newHandler(t)
	addGraphUser(t, g, "alice")

	req := testutil.NewJSONRequest(t, "POST", "/notifications", map[string]string{
		"user_id": "alice",
		"subject": "   ",
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.HandleSend(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleMarkRead(t *testing.T) {
	h, chans, g := newHandler(t)
	addGraphUser(t, g, "alice")
	registerDashboard(t, chans, "alice")

	req := testutil.NewJSONRequest(t, "POST", "/notifications", map[string]string{
		"user_id": "alice",
		"subject": "Welcome",
	})
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.HandleSend(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("send: status = %d", rec.Code)
	}

	items, err := h.Inbox.ListByUser(context.Background(), "alice", 0)
	if err != nil || len(items) != 1 {
		t.Fatalf("list inbox: %v (%d items)", err, len(items))
	}

	alice := testutil.TestUser{ID: "alice", Name: "Alice", Email: "alice@test.com", Role: "user"}
	markReq := testutil.WithUser(httptest.NewRequest("POST", "/x", nil), alice)
	markReq = testutil.WithChiURLParam(markReq, "id", items[0].ID)
	rec = httptest.NewRecorder()
	h.HandleMarkRead(rec, markReq)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark read: status = %d", rec.Code)
	}

	unread, err := h.Inbox.CountUnread(context.Background(), "alice")
	if err != nil {
		t.Fatalf("count unread: %v", err)
	}
	if unread != 0 {
		t.Errorf("unread = %d, want 0", unread)
	}

	// Another user cannot mark it read (already read here, but the
	// ownership filter is what the 404 checks).
	bob := testutil.TestUser{ID: "bob", Name: "Bob", Email: "bob@test.com", Role: "user"}
	markReq = testutil.WithUser(httptest.NewRequest("POST", "/x", nil), bob)
	markReq = testutil.WithChiURLParam(markReq, "id", items[0].ID)
	rec = httptest.NewRecorder()
	h.HandleMarkRead(rec, markReq)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign mark read: status = %d, want 404", rec.Code)
	}
}
