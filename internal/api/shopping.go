package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smartpantry/backend/internal/service"
)

// ShoppingListHandler serves the shopping list endpoints
type ShoppingListHandler struct {
	shopping service.IShoppingListService
	export   service.IExportService
}

// NewShoppingListHandler creates a new ShoppingListHandler
func NewShoppingListHandler(shopping service.IShoppingListService, export service.IExportService) *ShoppingListHandler {
	return &ShoppingListHandler{shopping: shopping, export: export}
}

// RegisterRoutes registers the shopping list routes
func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup) {
	list := router.Group("/shopping-list")
	{
		list.GET("", h.List)
		list.POST("", h.Create)
		list.GET("/export", h.Export)
		list.DELETE("/checked", h.ClearChecked)
		list.POST("/checked/to-pantry", h.MoveCheckedToPantry)
		list.PUT("/:id", h.Update)
		list.DELETE("/:id", h.Delete)
		list.POST("/:id/toggle", h.Toggle)
	}
}

// List handles GET /shopping-list
func (h *ShoppingListHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	items, err := h.shopping.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create handles POST /shopping-list
func (h *ShoppingListHandler) Create(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var in service.ShoppingItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, err := h.shopping.Create(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update handles PUT /shopping-list/:id
func (h *ShoppingListHandler) Update(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in service.ShoppingItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, err := h.shopping.Update(c.Request.Context(), uid, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /shopping-list/:id
func (h *ShoppingListHandler) Delete(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.shopping.Delete(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Toggle handles POST /shopping-list/:id/toggle
func (h *ShoppingListHandler) Toggle(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.shopping.ToggleChecked(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ClearChecked handles DELETE /shopping-list/checked
func (h *ShoppingListHandler) ClearChecked(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	n, err := h.shopping.ClearChecked(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": n})
}

// MoveCheckedToPantry handles POST /shopping-list/checked/to-pantry
func (h *ShoppingListHandler) MoveCheckedToPantry(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	n, err := h.shopping.MoveCheckedToPantry(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved": n})
}

// Export handles GET /shopping-list/export. With storage configured the PDF
// is uploaded and a short-lived link returned, unless format=pdf asks for
// the document itself.
func (h *ShoppingListHandler) Export(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if h.export.CanUpload() && c.Query("format") != "pdf" {
		result, err := h.export.ExportShoppingList(c.Request.Context(), uid)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	pdf, err := h.export.ShoppingListPDF(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="shopping-list.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
