package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ===== Session/JWT primitives =====

// AuthManager validates the HS256 bearer tokens the upstream identity
// provider mints (Supabase-style: audience "authenticated", user id in sub).
type AuthManager struct {
	secret   []byte
	audience string
}

func NewAuthManager(secret, audience string) *AuthManager {
	if audience == "" {
		audience = "authenticated"
	}
	return &AuthManager{secret: []byte(secret), audience: audience}
}

type UserClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

var errInvalidToken = errors.New("invalid token")

func (a *AuthManager) ParseFromRequest(r *http.Request) (*UserClaims, error) {
	hdr := r.Header.Get("Authorization")
	if hdr == "" || !strings.HasPrefix(strings.ToLower(hdr), "bearer ") {
		return nil, errInvalidToken
	}
	return a.parse(strings.TrimSpace(hdr[7:]))
}

func (a *AuthManager) parse(tok string) (*UserClaims, error) {
	claims := &UserClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(a.audience),
	)
	if err != nil || !tkn.Valid {
		return nil, errInvalidToken
	}
	if claims.Subject == "" {
		return nil, errInvalidToken
	}
	return claims, nil
}

type claimsCtxKey struct{}

func withClaims(ctx context.Context, c *UserClaims) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, c)
}

// ClaimsFrom returns the authenticated user's claims, or nil outside the
// auth middleware.
func ClaimsFrom(ctx context.Context) *UserClaims {
	c, _ := ctx.Value(claimsCtxKey{}).(*UserClaims)
	return c
}
