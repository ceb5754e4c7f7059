package utils

import (
	"strings"

	"itdocsapi/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// ContextAccountKey is the gin context key holding the authenticated username.
const ContextAccountKey = "account"

// TokenVerifier validates a bearer token and returns the account it was issued to.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// AuthMiddleware rejects requests without a valid "Authorization: Bearer" token.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			ErrorResponse(c, &apperr.AuthorizationError{Reason: "missing bearer token"})
			return
		}
		username, err := verifier.VerifyToken(strings.TrimSpace(token))
		if err != nil {
			ErrorResponse(c, err)
			return
		}
		c.Set(ContextAccountKey, username)
		c.Next()
	}
}
