package middleware

import (
	"net/http"

	"github.com/KevinDarioIguaran/LCLGSC/models"

	"github.com/gin-gonic/gin"
)

// SellerOnlyMiddleware runs after JWTAuthUserMiddleware and requires a
// seller account. Staff and superusers pass as well.
func SellerOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || (!u.IsSeller && !u.IsStaff && !u.IsSuperuser) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Seller access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated account from the context, nil
// when the auth middleware did not run.
func CurrentUser(c *gin.Context) *models.User {
	val, exists := c.Get(CtxUser)
	if !exists {
		return nil
	}
	u, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return u
}
