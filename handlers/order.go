package handlers

import (
	"net/http"

	"github.com/KevinDarioIguaran/LCLGSC/middleware"
	orderService "github.com/KevinDarioIguaran/LCLGSC/services/order"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// orderErrorStatus maps the order service error taxonomy onto HTTP codes.
func orderErrorStatus(err error) int {
	switch {
	case orderService.IsValidation(err):
		return http.StatusBadRequest
	case orderService.IsConflict(err):
		return http.StatusConflict
	case orderService.IsInsufficient(err):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// CheckoutHandler turns the cart into a pending order.
func (hb *HandlerBundle) CheckoutHandler(c *gin.Context) {
	logger := getLogger(c)
	userCode := c.GetString(middleware.CtxUserCode)

	var req struct {
		SchoolAddress string `json:"school_address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery address is required"})
		return
	}

	o, err := hb.Orders.Checkout(c.Request.Context(), userCode, req.SchoolAddress)
	if err != nil {
		status := orderErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Checkout failed", zap.String("userCode", userCode), zap.Error(err))
			c.JSON(status, gin.H{"error": "Checkout failed"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, o)
}

// ListOrdersHandler returns the user's visible order history.
func (hb *HandlerBundle) ListOrdersHandler(c *gin.Context) {
	userCode := c.GetString(middleware.CtxUserCode)

	var (
		orders interface{}
		err    error
	)
	if query := c.Query("q"); query != "" {
		orders, err = hb.Orders.Search(c.Request.Context(), userCode, query)
	} else {
		orders, err = hb.Orders.ListByUser(c.Request.Context(), userCode)
	}
	if err != nil {
		getLogger(c).Error("Failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderHandler returns one of the user's orders.
func (hb *HandlerBundle) GetOrderHandler(c *gin.Context) {
	userCode := c.GetString(middleware.CtxUserCode)
	o, err := hb.Orders.Get(c.Request.Context(), c.Param("id"), userCode)
	if err != nil {
		c.JSON(orderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}

// OrderQRHandler streams the pickup code of a pending order as PNG.
func (hb *HandlerBundle) OrderQRHandler(c *gin.Context) {
	userCode := c.GetString(middleware.CtxUserCode)
	png, err := hb.Orders.QRImage(c.Request.Context(), c.Param("id"), userCode)
	if err != nil {
		status := orderErrorStatus(err)
		if status == http.StatusInternalServerError {
			getLogger(c).Error("Failed to render QR code", zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to render QR code"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// DeleteOrderHandler removes a pending order and refunds it.
func (hb *HandlerBundle) DeleteOrderHandler(c *gin.Context) {
	userCode := c.GetString(middleware.CtxUserCode)
	if err := hb.Orders.Delete(c.Request.Context(), c.Param("id"), userCode); err != nil {
		status := orderErrorStatus(err)
		if status == http.StatusInternalServerError {
			getLogger(c).Error("Failed to delete order", zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to delete order"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted and refunded"})
}

// HideOrderHandler soft-hides a delivered or cancelled order.
func (hb *HandlerBundle) HideOrderHandler(c *gin.Context) {
	userCode := c.GetString(middleware.CtxUserCode)
	if err := hb.Orders.Hide(c.Request.Context(), c.Param("id"), userCode); err != nil {
		c.JSON(orderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ReviewOrderHandler stores a rating and comment on a completed order.
func (hb *HandlerBundle) ReviewOrderHandler(c *gin.Context) {
	userCode := c.GetString(middleware.CtxUserCode)

	var req struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating is required"})
		return
	}

	if err := hb.Orders.Review(c.Request.Context(), c.Param("id"), userCode, req.Rating, req.Comment); err != nil {
		c.JSON(orderErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
