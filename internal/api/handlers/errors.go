package handlers

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/catalog"
	"github.com/jafarshop/storeconfig/pkg/errors"
)

// respondError maps a service error onto a status and JSON body
func respondError(c *gin.Context, logger *zap.Logger, err error, action string) {
	var (
		validation    *errors.ErrValidation
		notFound      *errors.ErrNotFound
		notConfigured *errors.ErrNotConfigured
		apiErr        *catalog.APIError
		urlErr        *url.Error
		netErr        net.Error
	)

	switch {
	case stderrors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation failed",
			"details": validation.Issues,
		})
	case stderrors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case stderrors.As(err, &notConfigured):
		logger.Error("Service not configured", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": notConfigured.Error()})
	case stderrors.As(err, &apiErr):
		logger.Warn("Catalog rejected request",
			zap.String("action", action),
			zap.Int("catalog_status", apiErr.StatusCode),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":          apiErr.Message,
			"catalog_status": apiErr.StatusCode,
		})
	case stderrors.As(err, &urlErr), stderrors.As(err, &netErr), stderrors.Is(err, context.DeadlineExceeded):
		logger.Error("Catalog unreachable", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog backend unavailable"})
	default:
		logger.Error("Request failed", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action})
	}
}

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, param, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + label})
		return 0, false
	}
	return id, true
}

// queryInt reads an optional non-negative integer query parameter
func queryInt(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}
