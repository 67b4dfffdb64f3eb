package middleware

import (
	"net/http"
	"strings"

	userRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/user"
	"github.com/KevinDarioIguaran/LCLGSC/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	CtxUserCode = "userCode"
	CtxUser     = "currentUser"
)

// JWTAuthUserMiddleware authenticates the bearer token, checks it against
// the stored session hash and loads the account into the context.
func JWTAuthUserMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		code, err := utils.ExtractCodeFromToken(tokenString)
		if err != nil || code == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		authCache := utils.GetAuthCacheClient()
		if err := utils.VerifySessionToken(c.Request.Context(), authCache, code, utils.HashToken(tokenString)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			return
		}

		u, err := users.GetByCode(c.Request.Context(), code)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication error"})
			return
		}
		if !u.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
			return
		}

		c.Set(CtxUserCode, u.Code)
		c.Set(CtxUser, u)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
