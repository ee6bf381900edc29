package apitoken_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/orghub/internal/app/system/apitoken"
	"github.com/dalemusser/orghub/internal/app/system/auth"
)

func TestIssueParseRoundTrip(t *testing.T) {
	svc := apitoken.New("test-secret", time.Hour)

	tok, err := svc.Issue("u1", "Alice", "alice@example.com", "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := svc.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "u1" || claims.Role != "admin" {
		t.Errorf("claims: got subject=%q role=%q, want u1/admin", claims.Subject, claims.Role)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := apitoken.New("secret-a", time.Hour).Issue("u1", "", "", "user")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := apitoken.New("secret-b", time.Hour).Parse(tok); err == nil {
		t.Error("expected error parsing token with wrong secret")
	}
}

func TestParse_Expired(t *testing.T) {
	svc := apitoken.New("test-secret", -time.Minute)
	tok, err := svc.Issue("u1", "", "", "user")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Parse(tok); err == nil {
		t.Error("expected error parsing expired token")
	}
}

func TestMiddleware(t *testing.T) {
	svc := apitoken.New("test-secret", time.Hour)
	tok, err := svc.Issue("u1", "Alice", "alice@example.com", "user")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var got *auth.SessionUser
	handler := svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))

	// Valid bearer token resolves to a user.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+tok)
	handler.ServeHTTP(httptest.NewRecorder(), r)
	if got == nil || got.ID != "u1" {
		t.Fatalf("user after middleware: got %+v, want u1", got)
	}

	// No header passes through anonymously.
	got = nil
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got != nil {
		t.Errorf("anonymous request resolved to %+v", got)
	}

	// Garbage token is rejected.
	w := httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer garbage")
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: got %d, want 401", w.Code)
	}
}
