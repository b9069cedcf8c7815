package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartpantry/backend/internal/api"
	"github.com/pageza/smartpantry/backend/internal/middleware"
	"github.com/pageza/smartpantry/backend/internal/router"
	"github.com/pageza/smartpantry/backend/internal/service"
	"github.com/pageza/smartpantry/backend/internal/session"
	"github.com/pageza/smartpantry/backend/internal/testdb"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type generatorFunc func(ctx context.Context, system, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, system, prompt string) (string, error) {
	return f(ctx, system, prompt)
}

type stubProducts map[string]*service.Product

func (s stubProducts) Lookup(_ context.Context, barcode string) (*service.Product, error) {
	if err := service.ValidateBarcode(barcode); err != nil {
		return nil, err
	}
	if p, ok := s[barcode]; ok {
		return p, nil
	}
	return nil, service.ErrProductNotFound
}

type testEnv struct {
	router    *gin.Engine
	tokens    *session.TokenService
	generator generatorFunc
}

type envOption func(*envConfig)

type envConfig struct {
	rateLimit int
}

func withRateLimit(n int) envOption {
	return func(c *envConfig) { c.rateLimit = n }
}

func newTestEnv(t *testing.T, gen generatorFunc, opts ...envOption) *testEnv {
	t.Helper()
	var cfg envConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	db := testdb.SQLite(t)
	redisClient, _ := testdb.Redis(t)

	tokens, err := session.NewTokenService("api-test-secret")
	require.NoError(t, err)

	pantry := service.NewPantryService(db)
	shopping := service.NewShoppingListService(db, pantry)
	saved := service.NewSavedRecipeService(db)
	export := service.NewExportService(shopping, nil)
	suggestions := service.NewSuggestionService(pantry, gen, nil, service.NewSuggestionCache(redisClient, time.Minute))
	products := stubProducts{
		"3017620422003": {Barcode: "3017620422003", Name: "Nutella", Brand: "Ferrero", Category: "Spreads"},
	}

	var limiter gin.HandlerFunc
	if cfg.rateLimit > 0 {
		limiter = middleware.NewSuggestionRateLimiter(redisClient, cfg.rateLimit).RateLimitMiddleware()
	}

	r := router.SetupRouter([]string{"http://localhost:5173"}, tokens, router.Handlers{
		Pantry:      api.NewPantryHandler(pantry, products),
		Shopping:    api.NewShoppingListHandler(shopping, export),
		Suggestions: api.NewSuggestionHandler(suggestions, shopping, limiter),
		Recipes:     api.NewRecipeHandler(saved),
		Products:    api.NewProductHandler(products),
		Health:      api.NewHealthHandler(db, redisClient),
	})
	return &testEnv{router: r, tokens: tokens, generator: gen}
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	tok, err := e.tokens.GenerateToken(session.User{ID: uuid.New(), Email: "cook@example.com"}, time.Hour)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func noGenerator(context.Context, string, string) (string, error) {
	return "", service.ErrUpstream
}

func TestHealthAndAuth(t *testing.T) {
	env := newTestEnv(t, noGenerator)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"ok"`)

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/health", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/v1/pantry", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/v1/pantry", "forged", nil).Code)
}
