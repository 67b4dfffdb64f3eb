package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KevinDarioIguaran/LCLGSC/config"
	"github.com/KevinDarioIguaran/LCLGSC/cron"
	"github.com/KevinDarioIguaran/LCLGSC/database"
	cartRepoPkg "github.com/KevinDarioIguaran/LCLGSC/database/repository/cart"
	orderRepoPkg "github.com/KevinDarioIguaran/LCLGSC/database/repository/order"
	productRepoPkg "github.com/KevinDarioIguaran/LCLGSC/database/repository/product"
	siteconfigRepoPkg "github.com/KevinDarioIguaran/LCLGSC/database/repository/siteconfig"
	userRepoPkg "github.com/KevinDarioIguaran/LCLGSC/database/repository/user"
	"github.com/KevinDarioIguaran/LCLGSC/handlers"
	"github.com/KevinDarioIguaran/LCLGSC/routes"
	orderService "github.com/KevinDarioIguaran/LCLGSC/services/order"
	"github.com/KevinDarioIguaran/LCLGSC/services/shop"
	siteService "github.com/KevinDarioIguaran/LCLGSC/services/site"
	userService "github.com/KevinDarioIguaran/LCLGSC/services/user"
	"github.com/KevinDarioIguaran/LCLGSC/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	productRepo := productRepoPkg.NewMongoProductRepo()
	cartRepo := cartRepoPkg.NewMongoCartRepo()
	orderRepo := orderRepoPkg.NewMongoOrderRepo()
	siteRepo := siteconfigRepoPkg.NewCachedRepository(
		siteconfigRepoPkg.NewMongoSiteConfigRepo(),
		utils.GetCacheClient(),
		time.Duration(config.AppConfig.SiteCacheTTLSeconds)*time.Second,
		logger,
	)

	// background reminder queue.
	reminderClient := cron.NewReminderClient()
	defer reminderClient.Close()
	cron.InitPickupReminderWorker(orderRepo)

	// services.
	usersSvc := &userService.DefaultUserService{
		Repo:           userRepo,
		Auth:           utils.GetAuthCacheClient(),
		CreditCapCents: config.AppConfig.CreditCapCents,
	}
	ordersSvc := &orderService.DefaultOrderService{
		Orders:    orderRepo,
		Users:     userRepo,
		Products:  productRepo,
		Carts:     cartRepo,
		Reminders: reminderClient,
		Sessions:  usersSvc,
		Logger:    logger,

		DeliveryFeeCents:            config.AppConfig.DeliveryFeeCents,
		RefundFullOnCancel:          config.AppConfig.RefundFullOnCancel,
		DeactivateOnForbiddenDelete: config.AppConfig.DeactivateOnForbiddenDelete,
		PickupReminderDelay:         30 * time.Minute,
	}
	catalogSvc := &shop.DefaultCatalogService{Products: productRepo}
	cartSvc := &shop.DefaultCartService{Carts: cartRepo, Products: productRepo}
	sellerSvc := &shop.DefaultSellerService{Products: productRepo, Orders: orderRepo}
	siteSvc := &siteService.DefaultSiteService{Repo: siteRepo}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,
		SiteRepo: siteRepo,

		Users:   usersSvc,
		Orders:  ordersSvc,
		Catalog: catalogSvc,
		Cart:    cartSvc,
		Seller:  sellerSvc,
		Site:    siteSvc,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
