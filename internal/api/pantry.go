package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smartpantry/backend/internal/service"
)

// PantryHandler serves the pantry endpoints
type PantryHandler struct {
	pantry   service.IPantryService
	products service.IProductLookup
}

// NewPantryHandler creates a new PantryHandler
func NewPantryHandler(pantry service.IPantryService, products service.IProductLookup) *PantryHandler {
	return &PantryHandler{pantry: pantry, products: products}
}

// RegisterRoutes registers the pantry routes
func (h *PantryHandler) RegisterRoutes(router *gin.RouterGroup) {
	pantry := router.Group("/pantry")
	{
		pantry.GET("", h.List)
		pantry.POST("", h.Create)
		pantry.POST("/scan", h.Scan)
		pantry.GET("/:id", h.Get)
		pantry.PUT("/:id", h.Update)
		pantry.DELETE("/:id", h.Delete)
	}
}

// List handles GET /pantry
func (h *PantryHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	items, err := h.pantry.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create handles POST /pantry
func (h *PantryHandler) Create(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var in service.PantryItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, err := h.pantry.Create(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Get handles GET /pantry/:id
func (h *PantryHandler) Get(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.pantry.Get(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Update handles PUT /pantry/:id
func (h *PantryHandler) Update(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in service.PantryItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, err := h.pantry.Update(c.Request.Context(), uid, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /pantry/:id
func (h *PantryHandler) Delete(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.pantry.Delete(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type scanRequest struct {
	Barcode  string  `json:"barcode" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Scan handles POST /pantry/scan: the barcode is looked up and the product
// is added to the pantry, or its quantity bumped when already present.
func (h *PantryHandler) Scan(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	product, err := h.products.Lookup(c.Request.Context(), req.Barcode)
	if err != nil {
		respondError(c, err)
		return
	}

	item, created, err := h.pantry.AddOrIncrement(c.Request.Context(), uid, service.PantryItemInput{
		Name:     product.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Barcode:  product.Barcode,
		Category: product.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"item": item, "product": product, "created": created})
}
