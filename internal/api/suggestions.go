package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smartpantry/backend/internal/service"
)

// SuggestionHandler serves recipe suggestions
type SuggestionHandler struct {
	suggestions service.ISuggestionService
	shopping    service.IShoppingListService
	limiter     gin.HandlerFunc
}

// NewSuggestionHandler creates a new SuggestionHandler. limiter guards the
// generation endpoint and may be nil.
func NewSuggestionHandler(suggestions service.ISuggestionService, shopping service.IShoppingListService, limiter gin.HandlerFunc) *SuggestionHandler {
	return &SuggestionHandler{suggestions: suggestions, shopping: shopping, limiter: limiter}
}

// RegisterRoutes registers the suggestion routes
func (h *SuggestionHandler) RegisterRoutes(router *gin.RouterGroup) {
	suggestions := router.Group("/suggestions")
	{
		if h.limiter != nil {
			suggestions.POST("", h.limiter, h.Suggest)
		} else {
			suggestions.POST("", h.Suggest)
		}
		suggestions.GET("/external", h.External)
		suggestions.POST("/missing-to-list", h.MissingToList)
	}
}

// Suggest handles POST /suggestions. An empty body is allowed.
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var opts service.SuggestionOptions
	if err := c.ShouldBindJSON(&opts); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err.Error())
		return
	}

	result, err := h.suggestions.Suggest(c.Request.Context(), uid, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// External handles GET /suggestions/external?limit=N
func (h *SuggestionHandler) External(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}

	result, err := h.suggestions.External(c.Request.Context(), uid, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type missingToListRequest struct {
	Title              string   `json:"title"`
	MissingIngredients []string `json:"missing_ingredients" binding:"required"`
}

// MissingToList handles POST /suggestions/missing-to-list
func (h *SuggestionHandler) MissingToList(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req missingToListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	added, err := h.shopping.AddMissing(c.Request.Context(), uid, req.Title, req.MissingIngredients)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}
