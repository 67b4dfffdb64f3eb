package handlers

import (
	"errors"
	"net/http"

	productRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/product"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HomeHandler returns the landing feed grouped by category.
func (hb *HandlerBundle) HomeHandler(c *gin.Context) {
	feed, err := hb.Catalog.Home(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to build home feed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load the shop"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"feed": feed})
}

// ProductDetailHandler returns a product and its related items.
func (hb *HandlerBundle) ProductDetailHandler(c *gin.Context) {
	detail, err := hb.Catalog.ProductDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, productRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		getLogger(c).Error("Failed to load product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// SearchHandler matches products by name, grouped by category.
func (hb *HandlerBundle) SearchHandler(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}
	feed, err := hb.Catalog.Search(c.Request.Context(), query)
	if err != nil {
		getLogger(c).Error("Product search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"feed": feed})
}

// CategoryHandler returns the products of one category slug.
func (hb *HandlerBundle) CategoryHandler(c *gin.Context) {
	feed, err := hb.Catalog.SearchByCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, productRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		getLogger(c).Error("Category lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load category"})
		return
	}
	c.JSON(http.StatusOK, feed)
}

// BestSellersHandler returns the storewide best sellers.
func (hb *HandlerBundle) BestSellersHandler(c *gin.Context) {
	products, err := hb.Catalog.BestSellers(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list best sellers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load best sellers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// CategoriesHandler lists all categories.
func (hb *HandlerBundle) CategoriesHandler(c *gin.Context) {
	categories, err := hb.Catalog.Categories(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
