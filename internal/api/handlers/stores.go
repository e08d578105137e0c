package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/catalog"
	"github.com/jafarshop/storeconfig/internal/service"
	"github.com/jafarshop/storeconfig/internal/storeconfig"
)

// HandleListStores handles GET /v1/stores
func HandleListStores(svc *service.StoreConfigService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := catalog.StoreListParams{
			MarketplaceID: c.Query("marketplace_id"),
		}
		if raw, ok := c.GetQuery("active_only"); ok {
			activeOnly, err := strconv.ParseBool(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid active_only"})
				return
			}
			params.ActiveOnly = &activeOnly
		}

		stores, err := svc.ListStores(c.Request.Context(), params)
		if err != nil {
			respondError(c, logger, err, "list stores")
			return
		}

		c.JSON(http.StatusOK, gin.H{"stores": stores})
	}
}

// HandleGetStoreConfig handles GET /v1/stores/:id/config
func HandleGetStoreConfig(svc *service.StoreConfigService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse store ID
		storeID, ok := parseID(c, "id", "store ID")
		if !ok {
			return
		}

		store, err := svc.GetEditable(c.Request.Context(), storeID)
		if err != nil {
			respondError(c, logger, err, "get store configuration")
			return
		}

		c.JSON(http.StatusOK, store)
	}
}

// HandleCreateStoreConfig handles POST /v1/stores/config
func HandleCreateStoreConfig(svc *service.StoreConfigService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse request
		var form storeconfig.Form
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		store, err := svc.Create(c.Request.Context(), form)
		if err != nil {
			respondError(c, logger, err, "create store")
			return
		}

		logger.Info("Store configuration created", zap.Int64("store_id", store.ID))
		c.JSON(http.StatusCreated, store)
	}
}

// HandleUpdateStoreConfig handles PUT /v1/stores/:id/config
func HandleUpdateStoreConfig(svc *service.StoreConfigService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse store ID
		storeID, ok := parseID(c, "id", "store ID")
		if !ok {
			return
		}

		// Parse request
		var form storeconfig.Form
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		store, err := svc.Update(c.Request.Context(), storeID, form)
		if err != nil {
			respondError(c, logger, err, "update store")
			return
		}

		logger.Info("Store configuration updated", zap.Int64("store_id", storeID))
		c.JSON(http.StatusOK, store)
	}
}

// HandlePreviewStoreConfig handles POST /v1/stores/:id/config/preview
func HandlePreviewStoreConfig(svc *service.StoreConfigService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := parseID(c, "id", "store ID"); !ok {
			return
		}

		var form storeconfig.Form
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		result, err := svc.Preview(c.Request.Context(), form)
		if err != nil {
			respondError(c, logger, err, "preview store configuration")
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// HandleDeleteStore handles DELETE /v1/stores/:id
func HandleDeleteStore(svc *service.StoreConfigService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := parseID(c, "id", "store ID")
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), storeID); err != nil {
			respondError(c, logger, err, "delete store")
			return
		}

		logger.Info("Store deleted", zap.Int64("store_id", storeID))
		c.Status(http.StatusNoContent)
	}
}

// HandleListConfigEvents handles GET /v1/stores/:id/config/events
func HandleListConfigEvents(svc *service.StoreConfigService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := parseID(c, "id", "store ID")
		if !ok {
			return
		}
		limit, ok := queryInt(c, "limit")
		if !ok {
			return
		}

		events, err := svc.Events(c.Request.Context(), storeID, int(limit))
		if err != nil {
			respondError(c, logger, err, "list configuration events")
			return
		}

		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}

// HandleGetPriceSettings handles GET /v1/stores/:id/price-settings
func HandleGetPriceSettings(svc *service.StoreConfigService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := parseID(c, "id", "store ID")
		if !ok {
			return
		}

		settings, err := svc.PriceSettings(c.Request.Context(), storeID)
		if err != nil {
			respondError(c, logger, err, "get price settings")
			return
		}

		c.Data(http.StatusOK, "application/json", settings)
	}
}

// HandleAddPriceSettings handles POST /v1/stores/:id/price-settings with one
// vendor's pricing rules in the editable shape
func HandleAddPriceSettings(svc *service.StoreConfigService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := parseID(c, "id", "store ID")
		if !ok {
			return
		}

		var vendor storeconfig.VendorPriceForm
		if err := c.ShouldBindJSON(&vendor); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		saved, err := svc.AddVendorPriceSettings(c.Request.Context(), storeID, vendor)
		if err != nil {
			respondError(c, logger, err, "save price settings")
			return
		}

		c.Data(http.StatusCreated, "application/json", saved)
	}
}
