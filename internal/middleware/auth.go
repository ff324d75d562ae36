package middleware

import (
	"net/http"
	"strings"

	jwtsvc "cleanops/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// Auth validates the bearer token and puts owner_id into the gin context.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing or malformed Authorization header",
				},
			})
			return
		}

		claims, err := jwt.ValidateToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid or expired token",
				},
			})
			return
		}

		c.Set("owner_id", claims.OwnerID)
		c.Next()
	}
}

// OwnerID reads the authenticated owner from the gin context.
func OwnerID(c *gin.Context) string {
	return c.GetString("owner_id")
}
