package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/smartpantry/backend/config"
	"github.com/pageza/smartpantry/backend/internal/api"
	"github.com/pageza/smartpantry/backend/internal/database"
	"github.com/pageza/smartpantry/backend/internal/logger"
	"github.com/pageza/smartpantry/backend/internal/middleware"
	"github.com/pageza/smartpantry/backend/internal/router"
	"github.com/pageza/smartpantry/backend/internal/server"
	"github.com/pageza/smartpantry/backend/internal/service"
	"github.com/pageza/smartpantry/backend/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.Env.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.L().Fatal("failed to migrate database", zap.Error(err))
	}

	// Redis backs the suggestion cache and rate limiter; both are skipped without it.
	var redisClient *redis.Client
	if rc, err := database.NewRedisClient(cfg); err != nil {
		logger.Warn("redis unavailable, suggestion caching and rate limiting disabled", zap.Error(err))
	} else {
		redisClient = rc
		defer redisClient.Close()
	}

	tokens, err := session.NewTokenService(cfg.JWTSecret)
	if err != nil {
		logger.L().Fatal("failed to create token service", zap.Error(err))
	}

	generator, closeGenerator, err := newGenerator(ctx, cfg)
	if err != nil {
		logger.L().Fatal("failed to create text generator", zap.Error(err))
	}
	defer closeGenerator()

	storage, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		logger.L().Fatal("failed to configure export storage", zap.Error(err))
	}
	if storage == nil {
		logger.Info("S3_BUCKET_NAME not set, shopping list exports are streamed")
	}

	var finder service.RecipeFinder
	if cfg.RecipeAPIKey != "" {
		finder = service.NewRecipeAPIClient(cfg.RecipeAPIURL, cfg.RecipeAPIKey, nil)
	}

	pantry := service.NewPantryService(db)
	shopping := service.NewShoppingListService(db, pantry)
	saved := service.NewSavedRecipeService(db)
	products := service.NewProductClient(cfg.ProductAPIURL, nil)
	export := service.NewExportService(shopping, storage)
	suggestions := service.NewSuggestionService(pantry, generator, finder,
		service.NewSuggestionCache(redisClient, cfg.SuggestionCacheTTL))
	limiter := middleware.NewSuggestionRateLimiter(redisClient, cfg.SuggestionRateLimit)

	handler := router.SetupRouter(cfg.CORSOrigins, tokens, router.Handlers{
		Pantry:      api.NewPantryHandler(pantry, products),
		Shopping:    api.NewShoppingListHandler(shopping, export),
		Suggestions: api.NewSuggestionHandler(suggestions, shopping, limiter.RateLimitMiddleware()),
		Recipes:     api.NewRecipeHandler(saved),
		Products:    api.NewProductHandler(products),
		Health:      api.NewHealthHandler(db, redisClient),
	})

	srv := server.New(cfg.Addr(), handler)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			logger.L().Fatal("server error", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

// newGenerator builds the text generator selected by LLM_PROVIDER.
func newGenerator(ctx context.Context, cfg *config.Config) (service.TextGenerator, func(), error) {
	switch cfg.LLMProvider {
	case "gemini":
		g, err := service.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using gemini for suggestions", zap.String("model", cfg.GeminiModel))
		return g, func() { _ = g.Close() }, nil
	default:
		logger.Info("using openai-compatible server for suggestions",
			zap.String("base_url", cfg.LLMBaseURL),
			zap.String("model", cfg.LLMModel),
		)
		return service.NewChatClient(cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMAPIKey, cfg.LLMTimeout), func() {}, nil
	}
}
