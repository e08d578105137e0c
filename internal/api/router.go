package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/api/handlers"
	"github.com/jafarshop/storeconfig/internal/api/middleware"
	"github.com/jafarshop/storeconfig/internal/config"
	"github.com/jafarshop/storeconfig/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, services *service.Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.MetricsMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/marketplaces", handlers.HandleListMarketplaces(services.Marketplace, logger))
		v1.POST("/marketplaces", handlers.HandleCreateMarketplace(services.Marketplace, logger))

		v1.GET("/dashboard", handlers.HandleGetDashboard(services.Dashboard, logger))

		// Vendors
		vendors := v1.Group("/vendors")
		{
			vendors.GET("", handlers.HandleListVendors(services.Vendors, logger))
			vendors.POST("", handlers.HandleCreateVendor(services.Vendors, logger))
			vendors.GET("/:id", handlers.HandleGetVendor(services.Vendors, logger))
			vendors.PUT("/:id", handlers.HandleUpdateVendor(services.Vendors, logger))
			vendors.DELETE("/:id", handlers.HandleDeleteVendor(services.Vendors, logger))
			vendors.GET("/:id/prices", handlers.HandleGetVendorPrices(services.Vendors, logger))
		}

		// Products
		products := v1.Group("/products")
		{
			products.GET("", handlers.HandleListProducts(services.Operations, logger))
			products.POST("", handlers.HandleCreateProduct(services.Operations, logger))
			products.GET("/:id", handlers.HandleGetProduct(services.Operations, logger))
			products.DELETE("/:id", handlers.HandleDeleteProduct(services.Operations, logger))
		}

		// Store configuration
		stores := v1.Group("/stores")
		{
			stores.GET("", handlers.HandleListStores(services.StoreConfig, logger))
			stores.POST("/config", handlers.HandleCreateStoreConfig(services.StoreConfig, logger))
			stores.DELETE("/:id", handlers.HandleDeleteStore(services.StoreConfig, logger))
			stores.GET("/:id/config", handlers.HandleGetStoreConfig(services.StoreConfig, logger))
			stores.PUT("/:id/config", handlers.HandleUpdateStoreConfig(services.StoreConfig, logger))
			stores.POST("/:id/config/preview", handlers.HandlePreviewStoreConfig(services.StoreConfig, logger))
			stores.GET("/:id/config/events", handlers.HandleListConfigEvents(services.StoreConfig, logger))
			stores.GET("/:id/price-settings", handlers.HandleGetPriceSettings(services.StoreConfig, logger))
			stores.POST("/:id/price-settings", handlers.HandleAddPriceSettings(services.StoreConfig, logger))

			// Backend jobs
			stores.POST("/:id/products/upload", handlers.HandleUploadProducts(services.Operations, logger))
			stores.POST("/:id/scrapes", handlers.HandleStartScrape(services.Operations, logger))
			stores.POST("/:id/exports", handlers.HandleGenerateExport(services.Operations, logger))
			stores.GET("/:id/exports", handlers.HandleListExports(services.Operations, logger))
			stores.GET("/:id/exports/:kind/latest", handlers.HandleLatestExport(services.Operations, logger))
		}

		v1.GET("/scrapes/:id", handlers.HandleGetScrape(services.Operations, logger))
		v1.GET("/exports/:id", handlers.HandleGetExport(services.Operations, logger))
		v1.GET("/exports/:id/download", handlers.HandleDownloadExport(services.Operations, logger))
	}

	return router
}
