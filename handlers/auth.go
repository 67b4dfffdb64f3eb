package handlers

import (
	"net/http"

	"github.com/KevinDarioIguaran/LCLGSC/middleware"
	userService "github.com/KevinDarioIguaran/LCLGSC/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterHandler creates an account and opens a session.
func (hb *HandlerBundle) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var req userService.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := hb.Users.Register(c.Request.Context(), req)
	if err != nil {
		logger.Warn("Registration failed", zap.String("code", req.Code), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler verifies credentials and opens a session.
func (hb *HandlerBundle) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Code     string `json:"code" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code and password are required"})
		return
	}

	resp, err := hb.Users.Authenticate(c.Request.Context(), req.Code, req.Password)
	if err != nil {
		logger.Warn("Login failed", zap.String("code", req.Code))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler revokes the current session.
func (hb *HandlerBundle) LogoutHandler(c *gin.Context) {
	userCode := c.GetString(middleware.CtxUserCode)
	if err := hb.Users.Revoke(c.Request.Context(), userCode); err != nil {
		getLogger(c).Error("Failed to revoke session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// ProfileHandler returns the authenticated account.
func (hb *HandlerBundle) ProfileHandler(c *gin.Context) {
	userCode := c.GetString(middleware.CtxUserCode)
	profile, err := hb.Users.GetProfile(c.Request.Context(), userCode)
	if err != nil {
		getLogger(c).Error("Failed to get profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
