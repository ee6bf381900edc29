// internal/app/features/login/handler.go
package login

import (
	userstore "github.com/dalemusser/orghub/internal/app/store/users"
	"github.com/dalemusser/orghub/internal/app/system/apitoken"
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/app/system/ratelimit"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

// Handler owns the sign-in surface: password login, Google OAuth, API
// token issue, and logout.
type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	Tokens     *apitoken.Service
	Limits     *ratelimit.LoginLimiter
	Log        *zap.Logger

	// Google OAuth configuration. Empty ClientID disables the flow.
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// stateCodec signs the OAuth state cookie.
	stateCodec *securecookie.SecureCookie
}

// NewHandler constructs a login Handler. sessionKey also keys the OAuth
// state cookie so no extra secret is needed.
func NewHandler(
	users *userstore.Store,
	sessionMgr *auth.SessionManager,
	tokens *apitoken.Service,
	clientID, clientSecret, baseURL, sessionKey string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Users:        users,
		SessionMgr:   sessionMgr,
		Tokens:       tokens,
		Limits:       ratelimit.NewLoginLimiter(),
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/login/google/callback",
		stateCodec:   securecookie.New([]byte(sessionKey), nil),
	}
}
