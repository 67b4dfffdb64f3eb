package handlers

import (
	"net/http"

	"github.com/KevinDarioIguaran/LCLGSC/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetCartHandler renders the cart with live prices and availability.
func (hb *HandlerBundle) GetCartHandler(c *gin.Context) {
	userCode := c.GetString(middleware.CtxUserCode)
	view, err := hb.Cart.Get(c.Request.Context(), userCode)
	if err != nil {
		getLogger(c).Error("Failed to load cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddToCartHandler puts a product in the cart.
func (hb *HandlerBundle) AddToCartHandler(c *gin.Context) {
	userCode := c.GetString(middleware.CtxUserCode)

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product is required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := hb.Cart.Add(c.Request.Context(), userCode, req.ProductID, req.Quantity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateCartHandler replaces a line's quantity. Zero removes the line.
func (hb *HandlerBundle) UpdateCartHandler(c *gin.Context) {
	userCode := c.GetString(middleware.CtxUserCode)

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product is required"})
		return
	}

	if err := hb.Cart.SetQuantity(c.Request.Context(), userCode, req.ProductID, req.Quantity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveFromCartHandler drops a product from the cart.
func (hb *HandlerBundle) RemoveFromCartHandler(c *gin.Context) {
	userCode := c.GetString(middleware.CtxUserCode)
	if err := hb.Cart.Remove(c.Request.Context(), userCode, c.Param("productID")); err != nil {
		getLogger(c).Error("Failed to update cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
