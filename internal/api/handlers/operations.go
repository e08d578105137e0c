package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/service"
)

// HandleUploadProducts handles POST /v1/stores/:id/products/upload. The
// file part is streamed to the catalog without being read here.
func HandleUploadProducts(svc *service.OperationsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := parseID(c, "id", "store ID")
		if !ok {
			return
		}

		vendorID, err := strconv.ParseInt(c.PostForm("vendor_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vendor_id"})
			return
		}

		file, header, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		defer file.Close()

		result, err := svc.UploadProducts(c.Request.Context(), storeID, vendorID, header.Filename, file)
		if err != nil {
			respondError(c, logger, err, "upload products")
			return
		}

		c.Data(http.StatusOK, "application/json", result)
	}
}

// HandleStartScrape handles POST /v1/stores/:id/scrapes
func HandleStartScrape(svc *service.OperationsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := parseID(c, "id", "store ID")
		if !ok {
			return
		}

		var req service.ScrapeRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
				return
			}
		}

		result, err := svc.StartScrape(c.Request.Context(), storeID, req)
		if err != nil {
			respondError(c, logger, err, "start scrape")
			return
		}

		c.Data(http.StatusAccepted, "application/json", result)
	}
}

// HandleGetScrape handles GET /v1/scrapes/:id
func HandleGetScrape(svc *service.OperationsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		scrapeID, ok := parseID(c, "id", "scrape ID")
		if !ok {
			return
		}

		result, err := svc.ScrapeStatus(c.Request.Context(), scrapeID)
		if err != nil {
			respondError(c, logger, err, "get scrape status")
			return
		}

		c.Data(http.StatusOK, "application/json", result)
	}
}

// HandleGenerateExport handles POST /v1/stores/:id/exports
func HandleGenerateExport(svc *service.OperationsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := parseID(c, "id", "store ID")
		if !ok {
			return
		}

		var req service.ExportRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
				return
			}
		}

		result, err := svc.GenerateExport(c.Request.Context(), storeID, req)
		if err != nil {
			respondError(c, logger, err, "generate export")
			return
		}

		c.Data(http.StatusAccepted, "application/json", result)
	}
}

// HandleListExports handles GET /v1/stores/:id/exports
func HandleListExports(svc *service.OperationsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := parseID(c, "id", "store ID")
		if !ok {
			return
		}
		limit, ok := queryInt(c, "limit")
		if !ok {
			return
		}

		result, err := svc.ListExports(c.Request.Context(), storeID, int(limit))
		if err != nil {
			respondError(c, logger, err, "list exports")
			return
		}

		c.Data(http.StatusOK, "application/json", result)
	}
}

// HandleLatestExport handles GET /v1/stores/:id/exports/:kind/latest by
// redirecting to the catalog download
func HandleLatestExport(svc *service.OperationsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, ok := parseID(c, "id", "store ID")
		if !ok {
			return
		}

		target, err := svc.LatestExportURL(storeID, c.Param("kind"))
		if err != nil {
			respondError(c, logger, err, "resolve export download")
			return
		}

		c.Redirect(http.StatusFound, target)
	}
}

// HandleGetExport handles GET /v1/exports/:id
func HandleGetExport(svc *service.OperationsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		exportID, ok := parseID(c, "id", "export ID")
		if !ok {
			return
		}

		export, err := svc.GetExport(c.Request.Context(), exportID)
		if err != nil {
			respondError(c, logger, err, "get export")
			return
		}

		c.Data(http.StatusOK, "application/json", export)
	}
}

// HandleDownloadExport handles GET /v1/exports/:id/download by redirecting
// to the catalog file
func HandleDownloadExport(svc *service.OperationsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		exportID, ok := parseID(c, "id", "export ID")
		if !ok {
			return
		}

		target, err := svc.ExportDownloadURL(c.Request.Context(), exportID)
		if err != nil {
			respondError(c, logger, err, "resolve export download")
			return
		}

		c.Redirect(http.StatusFound, target)
	}
}
