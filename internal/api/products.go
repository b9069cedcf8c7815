package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smartpantry/backend/internal/service"
)

// ProductHandler serves barcode lookups
type ProductHandler struct {
	products service.IProductLookup
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products service.IProductLookup) *ProductHandler {
	return &ProductHandler{products: products}
}

// RegisterRoutes registers the product routes
func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/products/:barcode", h.Lookup)
}

// Lookup handles GET /products/:barcode
func (h *ProductHandler) Lookup(c *gin.Context) {
	product, err := h.products.Lookup(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
