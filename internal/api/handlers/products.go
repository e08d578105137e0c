package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/catalog"
	"github.com/jafarshop/storeconfig/internal/service"
)

// HandleListProducts handles GET /v1/products
func HandleListProducts(svc *service.OperationsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := catalog.ProductListParams{Search: c.Query("search")}
		for name, dest := range map[string]*int64{
			"store_id":  &params.StoreID,
			"vendor_id": &params.VendorID,
			"limit":     &params.Limit,
			"offset":    &params.Offset,
		} {
			v, ok := queryInt(c, name)
			if !ok {
				return
			}
			*dest = v
		}

		products, err := svc.ListProducts(c.Request.Context(), params)
		if err != nil {
			respondError(c, logger, err, "list products")
			return
		}

		c.Data(http.StatusOK, "application/json", products)
	}
}

// HandleGetProduct handles GET /v1/products/:id
func HandleGetProduct(svc *service.OperationsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := parseID(c, "id", "product ID")
		if !ok {
			return
		}

		product, err := svc.GetProduct(c.Request.Context(), productID)
		if err != nil {
			respondError(c, logger, err, "get product")
			return
		}

		c.Data(http.StatusOK, "application/json", product)
	}
}

// HandleCreateProduct handles POST /v1/products. The body is forwarded to
// the catalog as is.
func HandleCreateProduct(svc *service.OperationsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil || !json.Valid(body) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		created, err := svc.CreateProduct(c.Request.Context(), body)
		if err != nil {
			respondError(c, logger, err, "create product")
			return
		}

		c.Data(http.StatusCreated, "application/json", created)
	}
}

// HandleDeleteProduct handles DELETE /v1/products/:id
func HandleDeleteProduct(svc *service.OperationsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := parseID(c, "id", "product ID")
		if !ok {
			return
		}

		if err := svc.DeleteProduct(c.Request.Context(), productID); err != nil {
			respondError(c, logger, err, "delete product")
			return
		}

		c.Status(http.StatusNoContent)
	}
}
