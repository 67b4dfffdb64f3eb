package handlers

import (
	"net/http"

	"github.com/KevinDarioIguaran/LCLGSC/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RefundOrderHandler moves a pending order to refunded.
func (hb *HandlerBundle) RefundOrderHandler(c *gin.Context) {
	if err := hb.Orders.AdminRefund(c.Request.Context(), c.Param("id")); err != nil {
		status := orderErrorStatus(err)
		if status == http.StatusInternalServerError {
			getLogger(c).Error("Refund failed", zap.Error(err))
			c.JSON(status, gin.H{"error": "Refund failed"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order refunded"})
}

// ListUsersHandler returns all accounts.
func (hb *HandlerBundle) ListUsersHandler(c *gin.Context) {
	users, err := hb.Users.ListUsers(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// SetUserActiveHandler flips an account's active flag.
func (hb *HandlerBundle) SetUserActiveHandler(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Active flag is required"})
		return
	}

	if err := hb.Users.SetActive(c.Request.Context(), c.Param("code"), *req.Active); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PutCategoryHandler creates or renames a catalog category.
func (hb *HandlerBundle) PutCategoryHandler(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	cat, err := hb.Catalog.SaveCategory(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": cat})
}

// GetSiteConfigHandler returns the availability configuration.
func (hb *HandlerBundle) GetSiteConfigHandler(c *gin.Context) {
	cfg, err := hb.Site.Get(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to load site configuration", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load configuration"})
		return
	}
	if cfg == nil {
		c.JSON(http.StatusOK, gin.H{"config": nil, "message": "Shop is always open"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

// PutSiteConfigHandler validates and stores the availability configuration.
func (hb *HandlerBundle) PutSiteConfigHandler(c *gin.Context) {
	var cfg models.SiteConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Site.Put(c.Request.Context(), &cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

// DeleteSiteConfigHandler removes the availability configuration.
func (hb *HandlerBundle) DeleteSiteConfigHandler(c *gin.Context) {
	if err := hb.Site.Delete(c.Request.Context()); err != nil {
		getLogger(c).Error("Failed to delete site configuration", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete configuration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Configuration removed, shop is always open"})
}
