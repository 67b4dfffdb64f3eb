package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/KevinDarioIguaran/LCLGSC/middleware"
	"github.com/KevinDarioIguaran/LCLGSC/services/shop"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConfirmPickupHandler completes a pending order from a scanned QR code.
// The response keeps the {success, ...} shape the scanner page expects.
func (hb *HandlerBundle) ConfirmPickupHandler(c *gin.Context) {
	sellerCode := c.GetString(middleware.CtxUserCode)

	var req struct {
		OrderID string `json:"order_id" binding:"required"`
		QRCode  string `json:"qr_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order id and QR code are required"})
		return
	}

	if err := hb.Orders.ConfirmPickup(c.Request.Context(), req.OrderID, req.QRCode, sellerCode); err != nil {
		status := orderErrorStatus(err)
		if status == http.StatusInternalServerError {
			getLogger(c).Error("Pickup confirmation failed", zap.String("orderID", req.OrderID), zap.Error(err))
			c.JSON(status, gin.H{"success": false, "message": "Confirmation failed"})
			return
		}
		c.JSON(status, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "redirect_url": "/api/seller/orders"})
}

// PendingOrdersHandler lists orders awaiting pickup.
func (hb *HandlerBundle) PendingOrdersHandler(c *gin.Context) {
	sellerCode := c.GetString(middleware.CtxUserCode)
	orders, err := hb.Orders.PendingForSeller(c.Request.Context(), sellerCode)
	if err != nil {
		getLogger(c).Error("Failed to list pending orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pending orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// SellerOrderDetailHandler shows one pending order at the pickup counter.
func (hb *HandlerBundle) SellerOrderDetailHandler(c *gin.Context) {
	o, err := hb.Orders.PendingDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(orderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}

// CancelOrderHandler cancels a pending order over the selected products.
func (hb *HandlerBundle) CancelOrderHandler(c *gin.Context) {
	sellerCode := c.GetString(middleware.CtxUserCode)

	var req struct {
		ProductIDs []string `json:"product_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Select at least one product"})
		return
	}

	if err := hb.Orders.CancelForStock(c.Request.Context(), c.Param("id"), sellerCode, req.ProductIDs); err != nil {
		status := orderErrorStatus(err)
		if status == http.StatusInternalServerError {
			getLogger(c).Error("Order cancellation failed", zap.Error(err))
			c.JSON(status, gin.H{"error": "Cancellation failed"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}

// CreateProductHandler registers a new product.
func (hb *HandlerBundle) CreateProductHandler(c *gin.Context) {
	sellerCode := c.GetString(middleware.CtxUserCode)

	var req shop.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	p, err := hb.Seller.CreateProduct(c.Request.Context(), sellerCode, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateProductHandler edits one of the seller's products.
func (hb *HandlerBundle) UpdateProductHandler(c *gin.Context) {
	sellerCode := c.GetString(middleware.CtxUserCode)

	var req shop.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	p, err := hb.Seller.UpdateProduct(c.Request.Context(), sellerCode, c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProductHandler removes one of the seller's products.
func (hb *HandlerBundle) DeleteProductHandler(c *gin.Context) {
	sellerCode := c.GetString(middleware.CtxUserCode)
	if err := hb.Seller.DeleteProduct(c.Request.Context(), sellerCode, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// MyProductsHandler lists the seller's products, optionally filtered.
func (hb *HandlerBundle) MyProductsHandler(c *gin.Context) {
	sellerCode := c.GetString(middleware.CtxUserCode)

	name := c.Query("q")
	categoryID := c.Query("category")

	var err error
	var products interface{}
	if name != "" || categoryID != "" {
		products, err = hb.Seller.SearchMine(c.Request.Context(), sellerCode, name, categoryID)
	} else {
		products, err = hb.Seller.MyProducts(c.Request.Context(), sellerCode)
	}
	if err != nil {
		getLogger(c).Error("Failed to list seller products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// AnalyticsHandler returns the seller dashboard aggregations.
func (hb *HandlerBundle) AnalyticsHandler(c *gin.Context) {
	sellerCode := c.GetString(middleware.CtxUserCode)

	year := time.Now().Year()
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	analytics, err := hb.Seller.Analytics(c.Request.Context(), sellerCode, year)
	if err != nil {
		getLogger(c).Error("Failed to build seller analytics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics"})
		return
	}
	c.JSON(http.StatusOK, analytics)
}

// RechargeCreditHandler tops up a buyer's balance at the counter.
func (hb *HandlerBundle) RechargeCreditHandler(c *gin.Context) {
	var req struct {
		UserCode    string `json:"user_code" binding:"required"`
		AmountCents int64  `json:"amount_cents" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User code and amount are required"})
		return
	}

	if err := hb.Users.RechargeCredit(c.Request.Context(), req.UserCode, req.AmountCents); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
