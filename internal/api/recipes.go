package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smartpantry/backend/internal/service"
)

// RecipeHandler serves saved recipes
type RecipeHandler struct {
	recipes service.ISavedRecipeService
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipes service.ISavedRecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.POST("", h.Save)
		recipes.GET("/search", h.Search)
		recipes.GET("/:id", h.Get)
		recipes.DELETE("/:id", h.Delete)
	}
}

type saveRecipeRequest struct {
	service.ScoredSuggestion
	Source string `json:"source"`
}

// List handles GET /recipes
func (h *RecipeHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	recipes, err := h.recipes.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// Save handles POST /recipes
func (h *RecipeHandler) Save(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req saveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	recipe, err := h.recipes.Save(c.Request.Context(), uid, req.Source, req.ScoredSuggestion)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// Search handles GET /recipes/search?q=
func (h *RecipeHandler) Search(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	recipes, err := h.recipes.Search(c.Request.Context(), uid, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// Get handles GET /recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	recipe, err := h.recipes.Get(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Delete handles DELETE /recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.recipes.Delete(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
