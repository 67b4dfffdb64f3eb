package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminOnlyMiddleware runs after JWTAuthUserMiddleware and requires a
// staff or superuser account.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || (!u.IsStaff && !u.IsSuperuser) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Set("isAdmin", true)
		c.Next()
	}
}
