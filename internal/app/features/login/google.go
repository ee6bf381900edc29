// internal/app/features/login/google.go
package login

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	userstore "github.com/dalemusser/orghub/internal/app/store/users"
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/app/system/httpjson"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const stateCookie = "orghub_oauth_state"

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleConfigured returns true if Google OAuth is configured.
func (h *Handler) GoogleConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeGoogleLogin handles GET /login/google: stores a signed state
// cookie and redirects to Google's consent screen.
func (h *Handler) ServeGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.GoogleConfigured() {
		httpjson.Error(w, http.StatusNotImplemented, "oauth_disabled", "Google sign-in is not configured")
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	encoded, err := h.stateCodec.Encode(stateCookie, state)
	if err != nil {
		h.Log.Error("failed to encode OAuth state cookie", zap.Error(err))
		httpjson.ServerError(w)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    encoded,
		Path:     "/login/google",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.oauth2Config().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// ServeGoogleCallback handles GET /login/google/callback: validates the
// state, exchanges the code, resolves the Google account to a local
// user, and establishes a session. Unknown Google accounts are
// rejected; accounts are created through the users API, never
// implicitly on first sign-in.
func (h *Handler) ServeGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		httpjson.Error(w, http.StatusUnauthorized, "oauth_denied", "Google sign-in was denied")
		return
	}

	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(stateCookie)
	if state == "" || err != nil {
		httpjson.BadRequest(w, "missing OAuth state")
		return
	}
	var expected string
	if err := h.stateCodec.Decode(stateCookie, cookie.Value, &expected); err != nil || expected != state {
		h.Log.Warn("OAuth state mismatch")
		httpjson.BadRequest(w, "invalid OAuth state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		httpjson.BadRequest(w, "missing OAuth code")
		return
	}

	token, err := h.oauth2Config().Exchange(r.Context(), code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		httpjson.Error(w, http.StatusUnauthorized, "oauth_exchange", "could not complete Google sign-in")
		return
	}

	googleUser, err := fetchGoogleUserInfo(r.Context(), token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		httpjson.ServerError(w)
		return
	}
	if !googleUser.EmailVerified {
		httpjson.Error(w, http.StatusUnauthorized, "oauth_unverified", "Google account email is not verified")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, googleUser.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			h.Log.Info("Google OAuth: no account for email", zap.String("email", googleUser.Email))
			httpjson.Error(w, http.StatusUnauthorized, "no_account", "no account for this Google user")
			return
		}
		h.Log.Error("Google OAuth: user lookup failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}
	if u.Disabled {
		httpjson.Forbidden(w, "account is disabled")
		return
	}

	su := auth.SessionUser{ID: u.ID, Name: u.FullName, Email: u.Email, Role: u.Role}
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.Log.Error("session sign-in failed", zap.Error(err), zap.String("user_id", u.ID))
		httpjson.ServerError(w)
		return
	}

	h.Log.Info("user signed in via Google", zap.String("user_id", u.ID))
	httpjson.OK(w, userInfo{ID: u.ID, Name: u.FullName, Email: u.Email, Role: u.Role})
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &info, nil
}

// generateState returns a cryptographically random state value.
func generateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
