package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/service"
)

// HandleGetDashboard handles GET /v1/dashboard. The summary, stores and
// vendors in the response were all fetched for the same filter.
func HandleGetDashboard(svc *service.DashboardService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := service.FilterFrom(c.Query("marketplace_id"), c.Query("store_id"))

		snap, err := svc.Load(c.Request.Context(), filter)
		if err != nil {
			respondError(c, logger, err, "load dashboard")
			return
		}

		c.JSON(http.StatusOK, snap)
	}
}
