// internal/app/features/login/password.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/orghub/internal/app/store/users"
	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/dalemusser/orghub/internal/app/system/httpjson"
	"github.com/dalemusser/orghub/internal/app/system/ratelimit"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"github.com/dalemusser/orghub/internal/domain/models"
	"go.uber.org/zap"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HandlePassword handles POST /login: verifies email and password and
// establishes a session cookie.
func (h *Handler) HandlePassword(w http.ResponseWriter, r *http.Request) {
	u, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	su := auth.SessionUser{ID: u.ID, Name: u.FullName, Email: u.Email, Role: u.Role}
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.Log.Error("session sign-in failed", zap.Error(err), zap.String("user_id", u.ID))
		httpjson.ServerError(w)
		return
	}

	h.Log.Info("user signed in", zap.String("user_id", u.ID))
	httpjson.OK(w, userInfo{ID: u.ID, Name: u.FullName, Email: u.Email, Role: u.Role})
}

// HandleToken handles POST /login/token: verifies the same credentials
// and returns a bearer token for API clients instead of a cookie.
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	u, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	token, err := h.Tokens.Issue(u.ID, u.FullName, u.Email, u.Role)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err), zap.String("user_id", u.ID))
		httpjson.ServerError(w)
		return
	}

	httpjson.OK(w, map[string]string{"token": token})
}

// authenticate decodes credentials and resolves them to an enabled
// user, writing the error response itself on failure.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	var creds credentials
	if err := httpjson.Decode(r, &creds); err != nil {
		httpjson.BadRequest(w, err.Error())
		return models.User{}, false
	}
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		httpjson.BadRequest(w, "email and password are required")
		return models.User{}, false
	}

	if !h.Limits.Check(r, creds.Email) {
		h.Log.Warn("login throttled", zap.String("ip", ratelimit.ClientIP(r)))
		httpjson.Error(w, http.StatusTooManyRequests, "rate_limited", "too many login attempts, try again later")
		return models.User{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.Error(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return models.User{}, false
		}
		h.Log.Error("login lookup failed", zap.Error(err))
		httpjson.ServerError(w)
		return models.User{}, false
	}

	if !h.Users.VerifyPassword(u, creds.Password) {
		httpjson.Error(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return models.User{}, false
	}
	if u.Disabled {
		httpjson.Forbidden(w, "account is disabled")
		return models.User{}, false
	}

	h.Limits.ResetEmail(creds.Email)
	return u, true
}
