package routes

import (
	"net/http"
	"time"

	"github.com/KevinDarioIguaran/LCLGSC/handlers"
	"github.com/KevinDarioIguaran/LCLGSC/middleware"
	"github.com/KevinDarioIguaran/LCLGSC/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", hb.ProfileHandler)
		api.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterCatalogRoutes registers the public storefront endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/shop")
	{
		api.GET("/", hb.HomeHandler)
		api.GET("/products/:id", hb.ProductDetailHandler)
		api.GET("/search", hb.SearchHandler)
		api.GET("/categories", hb.CategoriesHandler)
		api.GET("/categories/:slug", hb.CategoryHandler)
		api.GET("/best-sellers", hb.BestSellersHandler)
	}
}

// RegisterCartRoutes registers the cart endpoints.
func RegisterCartRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cart")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/", hb.GetCartHandler)
		api.POST("/add", hb.AddToCartHandler)
		api.POST("/update", hb.UpdateCartHandler)
		api.DELETE("/:productID", hb.RemoveFromCartHandler)
	}
}

// RegisterOrderRoutes registers the buyer-side order endpoints.
func RegisterOrderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/orders")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/checkout", hb.CheckoutHandler)
		api.GET("/", hb.ListOrdersHandler)
		api.GET("/:id", hb.GetOrderHandler)
		api.GET("/:id/qr", hb.OrderQRHandler)
		api.DELETE("/:id", hb.DeleteOrderHandler)
		api.POST("/:id/hide", hb.HideOrderHandler)
		api.POST("/:id/review", hb.ReviewOrderHandler)
	}
}

// RegisterSellerRoutes registers the seller tooling.
func RegisterSellerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/seller")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo), middleware.SellerOnlyMiddleware())
		api.GET("/orders", hb.PendingOrdersHandler)
		api.GET("/orders/:id", hb.SellerOrderDetailHandler)
		api.POST("/orders/confirm", hb.ConfirmPickupHandler)
		api.POST("/orders/:id/cancel", hb.CancelOrderHandler)

		api.GET("/products", hb.MyProductsHandler)
		api.POST("/products", hb.CreateProductHandler)
		api.PUT("/products/:id", hb.UpdateProductHandler)
		api.DELETE("/products/:id", hb.DeleteProductHandler)

		api.GET("/analytics", hb.AnalyticsHandler)
		api.POST("/recharge", hb.RechargeCreditHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo), middleware.AdminOnlyMiddleware())
		adminGroup.GET("/users", hb.ListUsersHandler)
		adminGroup.POST("/users/:code/active", hb.SetUserActiveHandler)
		adminGroup.POST("/orders/:id/refund", hb.RefundOrderHandler)
		adminGroup.PUT("/categories/:id", hb.PutCategoryHandler)
		adminGroup.GET("/site", hb.GetSiteConfigHandler)
		adminGroup.PUT("/site", hb.PutSiteConfigHandler)
		adminGroup.DELETE("/site", hb.DeleteSiteConfigHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
// The availability gate runs globally; its exempt prefixes keep the admin
// surface and the health check reachable while the shop is closed.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.AvailabilityMiddleware(hb.SiteRepo, hb.UserRepo))

	RegisterAuthRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterCartRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
	RegisterSellerRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
