package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/smartpantry/backend/internal/api"
	"github.com/pageza/smartpantry/backend/internal/middleware"
)

// Handlers groups the API handlers mounted under /api/v1
type Handlers struct {
	Pantry      *api.PantryHandler
	Shopping    *api.ShoppingListHandler
	Suggestions *api.SuggestionHandler
	Recipes     *api.RecipeHandler
	Products    *api.ProductHandler
	Health      *api.HealthHandler
}

// SetupRouter configures the application routes. Everything below /api/v1
// except the health check requires a bearer token.
func SetupRouter(corsOrigins []string, tokens middleware.TokenValidator, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(corsOrigins))

	router.GET("/health", h.Health.Health)

	v1 := router.Group("/api/v1")
	v1.GET("/health", h.Health.Health)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		h.Pantry.RegisterRoutes(protected)
		h.Shopping.RegisterRoutes(protected)
		h.Suggestions.RegisterRoutes(protected)
		h.Recipes.RegisterRoutes(protected)
		h.Products.RegisterRoutes(protected)
	}

	return router
}
