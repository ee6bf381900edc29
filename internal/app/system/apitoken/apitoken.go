// Package apitoken issues and verifies HS256 bearer tokens for machine
// clients of the API. Tokens carry the same identity the session does,
// so a request authenticated either way lands in the same context slot.
package apitoken

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/orghub/internal/app/system/auth"
	"github.com/golang-jwt/jwt/v5"
)

// Service signs and parses API tokens with a shared secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// Claims is the token payload.
type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid API token")

// New builds a token service. A zero ttl defaults to 24h.
func New(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user.
func (s *Service) Issue(userID, name, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:  name,
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token string and returns its claims.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Middleware resolves a Bearer token into the request's user context.
// Requests without an Authorization header pass through untouched (the
// session middleware may have identified them already); a present but
// invalid token is rejected.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			http.Error(w, "unsupported authorization scheme", http.StatusUnauthorized)
			return
		}
		claims, err := s.Parse(tokenString)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		r = auth.WithUserContext(r, &auth.SessionUser{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
		})
		next.ServeHTTP(w, r)
	})
}
