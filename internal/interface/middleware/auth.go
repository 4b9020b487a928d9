package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"forum-api/pkg/helpers"
	"forum-api/pkg/response"
)

const CtxUsernameKey = "username"

// Auth validates the bearer token from the Authorization header and
// injects the username claim into the Gin context. Handlers downstream
// only ever see a plain username, never the token.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}

		username, err := jwt.Parse(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}

		c.Set(CtxUsernameKey, username)
		c.Next()
	}
}
