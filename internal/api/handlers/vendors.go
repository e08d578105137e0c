package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/service"
)

// HandleListVendors handles GET /v1/vendors
func HandleListVendors(svc *service.VendorService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendors, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, "list vendors")
			return
		}

		c.JSON(http.StatusOK, gin.H{"vendors": vendors})
	}
}

// HandleGetVendor handles GET /v1/vendors/:id
func HandleGetVendor(svc *service.VendorService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, ok := parseID(c, "id", "vendor ID")
		if !ok {
			return
		}

		vendor, err := svc.Get(c.Request.Context(), vendorID)
		if err != nil {
			respondError(c, logger, err, "get vendor")
			return
		}

		c.JSON(http.StatusOK, vendor)
	}
}

// HandleCreateVendor handles POST /v1/vendors
func HandleCreateVendor(svc *service.VendorService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.VendorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		vendor, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "create vendor")
			return
		}

		c.JSON(http.StatusCreated, vendor)
	}
}

// HandleUpdateVendor handles PUT /v1/vendors/:id
func HandleUpdateVendor(svc *service.VendorService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, ok := parseID(c, "id", "vendor ID")
		if !ok {
			return
		}

		var req service.VendorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		vendor, err := svc.Update(c.Request.Context(), vendorID, req)
		if err != nil {
			respondError(c, logger, err, "update vendor")
			return
		}

		c.JSON(http.StatusOK, vendor)
	}
}

// HandleDeleteVendor handles DELETE /v1/vendors/:id
func HandleDeleteVendor(svc *service.VendorService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, ok := parseID(c, "id", "vendor ID")
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), vendorID); err != nil {
			respondError(c, logger, err, "delete vendor")
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// HandleGetVendorPrices handles GET /v1/vendors/:id/prices
func HandleGetVendorPrices(svc *service.VendorService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorID, ok := parseID(c, "id", "vendor ID")
		if !ok {
			return
		}

		prices, err := svc.Prices(c.Request.Context(), vendorID)
		if err != nil {
			respondError(c, logger, err, "get vendor prices")
			return
		}

		c.Data(http.StatusOK, "application/json", prices)
	}
}
