package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/libhub/library-api/pkg/helpers"
	"github.com/libhub/library-api/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth reads the access_token cookie, validates it, and injects the user
// id into the Gin context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.Unauthorized(c, "missing access token")
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid access token")
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
