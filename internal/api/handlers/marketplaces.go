package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/service"
)

// HandleListMarketplaces handles GET /v1/marketplaces
func HandleListMarketplaces(svc *service.MarketplaceService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		marketplaces, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, "list marketplaces")
			return
		}

		c.JSON(http.StatusOK, gin.H{"marketplaces": marketplaces})
	}
}

// HandleCreateMarketplace handles POST /v1/marketplaces
func HandleCreateMarketplace(svc *service.MarketplaceService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateMarketplaceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		marketplace, err := svc.Create(c.Request.Context(), req.Name, req.Code)
		if err != nil {
			respondError(c, logger, err, "create marketplace")
			return
		}

		c.JSON(http.StatusCreated, marketplace)
	}
}
