package login_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/orghub/internal/app/features/login"
	userstore "github.com/dalemusser/orghub/internal/app/store/users"
	"github.com/dalemusser/orghub/internal/app/system/apitoken"
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/app/system/ratelimit"
	"github.com/dalemusser/orghub/internal/domain/models"
	"github.com/dalemusser/orghub/internal/testutil"
	"go.uber.org/zap"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

func newHandler(t *testing.T) (*login.Handler, *userstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	users := userstore.New(db)

	sm, err := auth.NewSessionManager(testSessionKey, "orghub_test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	tokens := apitoken.New("test-token-secret", time.Hour)
	return login.NewHandler(users, sm, tokens, "", "", "http://localhost:8080", testSessionKey, zap.NewNop()), users
}

func createUser(t *testing.T, users *userstore.Store, email, password string, disabled bool) models.User {
	t.Helper()
	u, err := users.Create(context.Background(), models.User{
		FullName: "Pat Example",
		Email:    email,
		Role:     "user",
		Disabled: disabled,
	}, password)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestHandlePassword_Success(t *testing.T) {
	h, users := newHandler(t)
	createUser(t, users, "pat@example.com", "hunter22", false)

	req := testutil.NewJSONRequest(t, "POST", "/login", map[string]string{
		"email":    "pat@example.com",
		"password": "hunter22",
	})
	rec := httptest.NewRecorder()
	h.HandlePassword(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := testutil.DecodeEnvelope(t, rec)
	if !env.Success {
		t.Fatal("expected success envelope")
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie to be set")
	}
}

func TestHandlePassword_WrongPassword(t *testing.T) {
	h, users := newHandler(t)
	createUser(t, users, "pat@example.com", "hunter22", false)

	req := testutil.NewJSONRequest(t, "POST", "/login", map[string]string{
		"email":    "pat@example.com",
		"password": "wrong",
	})
	rec := httptest.NewRecorder()
	h.HandlePassword(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestHandlePassword_UnknownEmailSameError(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	rec := httptest.NewRecorder()
	h.HandlePassword(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "invalid_credentials" {
		t.Fatalf("unknown email must look like a bad password, got %+v", env.Error)
	}
}

func TestHandlePassword_DisabledAccount(t *testing.T) {
	h, users := newHandler(t)
	createUser(t, users, "pat@example.com", "hunter22", true)

	req := testutil.NewJSONRequest(t, "POST", "/login", map[string]string{
		"email":    "pat@example.com",
		"password": "hunter22",
	})
	rec := httptest.NewRecorder()
	h.HandlePassword(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestHandlePassword_BadBody(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/login", map[string]string{"email": "x@example.com"})
	rec := httptest.NewRecorder()
	h.HandlePassword(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleToken_IssuesParsableToken(t *testing.T) {
	h, users := newHandler(t)
	u := createUser(t, users, "pat@example.com", "hunter22", false)

	req := testutil.NewJSONRequest(t, "POST", "/login/token", map[string]string{
		"email":    "pat@example.com",
		"password": "hunter22",
	})
	rec := httptest.NewRecorder()
	h.HandleToken(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := testutil.DecodeEnvelope(t, rec)
	var data map[string]string
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	claims, err := apitoken.New("test-token-secret", time.Hour).Parse(data["token"])
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Subject != u.ID {
		t.Errorf("token subject = %q, want %q", claims.Subject, u.ID)
	}
}

func TestGoogleLogin_NotConfigured(t *testing.T) {
	h, _ := newHandler(t)

	req := httptest.NewRequest("GET", "/login/google", nil)
	rec := httptest.NewRecorder()
	h.ServeGoogleLogin(rec, req)

	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want 501", rec.Code)
	}
}

func TestHandlePassword_Throttled(t *testing.T) {
	h, users := newHandler(t)
	h.Limits = ratelimit.NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)
	createUser(t, users, "target@example.com", "right-password", false)

	attempt := func(password string) *httptest.ResponseRecorder {
		req := testutil.NewJSONRequest(t, "POST", "/login", map[string]string{
			"email":    "target@example.com",
			"password": password,
		})
		rec := httptest.NewRecorder()
		h.HandlePassword(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := attempt("wrong"); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d, want 401", i+1, rec.Code)
		}
	}

	rec := attempt("right-password")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("throttled status = %d, want 429", rec.Code)
	}
	env := testutil.DecodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "rate_limited" {
		t.Errorf("error envelope = %+v, want code rate_limited", env.Error)
	}
}
