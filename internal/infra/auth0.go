// README: Auth0 JWKS token verifier.
package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

// AuthToken holds the verified identity data used by downstream middleware.
type AuthToken struct {
	Subject string
	Email   string
	Name    string
}

// TokenVerifier verifies a raw bearer token string and returns identity data.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*AuthToken, error)
}

var ErrInvalidToken = errors.New("invalid token")

// auth0Verifier validates RS256 tokens against the tenant's JWKS endpoint.
type auth0Verifier struct {
	jwks     *keyfunc.JWKS
	issuer   string
	audience string
}

// NewAuth0Verifier fetches the tenant JWKS and keeps it refreshed in the
// background. domain is the bare tenant host (e.g. "example.us.auth0.com").
func NewAuth0Verifier(domain, audience string) (TokenVerifier, error) {
	jwksURL := fmt.Sprintf("https://%s/.well-known/jwks.json", domain)
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval:  time.Hour,
		RefreshRateLimit: time.Minute,
		RefreshErrorHandler: func(err error) {
			// Stale keys keep working until the next successful refresh.
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}
	return &auth0Verifier{
		jwks:     jwks,
		issuer:   fmt.Sprintf("https://%s/", domain),
		audience: audience,
	}, nil
}

type auth0Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (v *auth0Verifier) VerifyIDToken(_ context.Context, idToken string) (*AuthToken, error) {
	claims := &auth0Claims{}
	token, err := jwt.ParseWithClaims(idToken, claims, v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != v.issuer {
		return nil, ErrInvalidToken
	}
	if v.audience != "" && !containsAudience(claims.Audience, v.audience) {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &AuthToken{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}

func containsAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
