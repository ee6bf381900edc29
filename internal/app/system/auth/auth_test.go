package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/orghub/internal/app/system/auth"
	"go.uber.org/zap"
)

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"0123456789abcdef0123456789abcdef", "orghub-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "orghub-test", "", false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestSignInRoundTrip(t *testing.T) {
	sm := newManager(t)

	// Sign in and capture the cookie.
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	err := sm.SignIn(w, r, auth.SessionUser{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: "admin"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn set no cookie")
	}

	// Replay the cookie through the middleware.
	var got *auth.SessionUser
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r2.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), r2)

	if got == nil {
		t.Fatal("no user in context after LoadSessionUser")
	}
	if got.ID != "u1" || got.Role != "admin" {
		t.Errorf("user: got %+v, want u1/admin", got)
	}
}

func TestRequireSignedIn_Unauthenticated(t *testing.T) {
	handler := auth.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a user")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	ok := false
	handler := auth.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok = true
	}))

	// Wrong role → 403.
	w := httptest.NewRecorder()
	r := auth.WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil),
		&auth.SessionUser{ID: "u2", Role: "user"})
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Errorf("wrong role: got %d, want 403", w.Code)
	}
	if ok {
		t.Error("handler reached with wrong role")
	}

	// Matching role (case-insensitive) passes.
	w = httptest.NewRecorder()
	r = auth.WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil),
		&auth.SessionUser{ID: "u3", Role: "Admin"})
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK || !ok {
		t.Errorf("matching role: got %d, want 200 and handler reached", w.Code)
	}
}

func TestSignOut(t *testing.T) {
	sm := newManager(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	if err := sm.SignOut(w, r); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignOut set no cookie")
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("cookie MaxAge: got %d, want negative (expired)", cookies[0].MaxAge)
	}
}
