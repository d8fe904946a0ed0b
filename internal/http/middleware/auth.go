// README: Optional bearer auth; anonymous requests continue as guest.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"uipathfinder/internal/infra"
)

const identityKey = "identity"

// Auth verifies a bearer token when one is present. Requests without an
// Authorization header pass through as guests; a header that is present but
// fails verification is rejected so a caller never silently loses their
// identity.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}
		if verifier == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(identityKey, token)
		c.Next()
	}
}

// Identity returns the verified caller, or nil for guest requests.
func Identity(c *gin.Context) *infra.AuthToken {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	token, _ := v.(*infra.AuthToken)
	return token
}
