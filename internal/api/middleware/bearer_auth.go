package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/llvasconcellos/devconnector/internal/auth"
	"github.com/llvasconcellos/devconnector/internal/utils"
)

// IdentityKey is the gin context key the auth gate stores the decoded
// identity under.
const IdentityKey = "identity"

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// BearerAuth verifies the Authorization header against the token
// manager and injects the decoded identity into the request context.
// Every request is re-verified independently; no session state exists
// server-side.
func BearerAuth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: "missing bearer token",
			})
			return
		}

		id, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: "invalid token",
			})
			return
		}

		c.Set(IdentityKey, id)
		c.Next()
	}
}
