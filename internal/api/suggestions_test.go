package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartpantry/backend/internal/service"
)

const modelAnswer = "```json\n{\"recipes\": [{\"title\": \"Scrambled eggs\", \"ingredients\": [\"3 eggs\", \"butter\"], \"steps\": [\"whisk\", \"cook\"], \"missing_ingredients\": [\"butter\"], \"estimated_time\": \"5 min\", \"calories\": \"280\"},]}\n```"

func fillPantry(t *testing.T, env *testEnv, token string, names ...string) {
	t.Helper()
	for _, name := range names {
		rec := env.do(t, http.MethodPost, "/api/v1/pantry", token, map[string]any{"name": name})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
}

func TestSuggestEndpoint(t *testing.T) {
	var prompts []string
	env := newTestEnv(t, func(_ context.Context, _, prompt string) (string, error) {
		prompts = append(prompts, prompt)
		return modelAnswer, nil
	})
	token := env.token(t)

	rec := env.do(t, http.MethodPost, "/api/v1/suggestions", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "empty_pantry", decode[errorBody](t, rec).Code)

	fillPantry(t, env, token, "eggs")

	rec = env.do(t, http.MethodPost, "/api/v1/suggestions", token, map[string]any{"preferences": []string{"breakfast"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[service.SuggestionResult](t, rec)
	assert.Equal(t, "ok", result.Status)
	require.Len(t, result.Recipes, 1)
	assert.Equal(t, "Scrambled eggs", result.Recipes[0].Title)
	assert.Equal(t, 50.0, result.Recipes[0].MatchPercentage)
	require.NotNil(t, result.Recipes[0].Calories)
	assert.Equal(t, 280, *result.Recipes[0].Calories)
	assert.NotContains(t, rec.Body.String(), "```", "raw model output never reaches the client")

	require.Len(t, prompts, 1)
	assert.True(t, strings.Contains(prompts[0], "eggs") && strings.Contains(prompts[0], "breakfast"))

	rec = env.do(t, http.MethodPost, "/api/v1/suggestions", token, map[string]any{"preferences": []string{"breakfast"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[service.SuggestionResult](t, rec).Cached)
	assert.Len(t, prompts, 1)
}

func TestSuggestEndpoint_Failures(t *testing.T) {
	tests := []struct {
		name     string
		gen      generatorFunc
		wantCode int
		wantErr  string
	}{
		{
			name:     "unparseable answer",
			gen:      func(context.Context, string, string) (string, error) { return `{"recipes": [`, nil },
			wantCode: http.StatusBadGateway,
			wantErr:  "unparseable_model_response",
		},
		{
			name:     "model server down",
			gen:      noGenerator,
			wantCode: http.StatusServiceUnavailable,
			wantErr:  "upstream_unavailable",
		},
		{
			name:     "deadline",
			gen:      func(context.Context, string, string) (string, error) { return "", context.DeadlineExceeded },
			wantCode: http.StatusGatewayTimeout,
			wantErr:  "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.gen)
			token := env.token(t)
			fillPantry(t, env, token, "rice")

			rec := env.do(t, http.MethodPost, "/api/v1/suggestions", token, nil)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantErr, decode[errorBody](t, rec).Code)
		})
	}
}

func TestSuggestEndpoint_BenignEmpty(t *testing.T) {
	env := newTestEnv(t, func(context.Context, string, string) (string, error) {
		return "Sorry, nothing comes to mind.", nil
	})
	token := env.token(t)
	fillPantry(t, env, token, "salt")

	rec := env.do(t, http.MethodPost, "/api/v1/suggestions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"recipes":[],"status":"empty","cached":false}`, rec.Body.String())
}

func TestSuggestEndpoint_RateLimited(t *testing.T) {
	env := newTestEnv(t, func(context.Context, string, string) (string, error) { return modelAnswer, nil }, withRateLimit(1))
	token := env.token(t)
	fillPantry(t, env, token, "eggs")

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/v1/suggestions", token, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, env.do(t, http.MethodPost, "/api/v1/suggestions", token, nil).Code)


	other := env.token(t)
	fillPantry(t, env, other, "eggs")
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/v1/suggestions", other, nil).Code)
}

func TestExternalSuggestions_NotConfigured(t *testing.T) {
	env := newTestEnv(t, noGenerator)
	token := env.token(t)
	fillPantry(t, env, token, "eggs")

	rec := env.do(t, http.MethodGet, "/api/v1/suggestions/external?limit=3", token, nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/v1/suggestions/external?limit=x", token, nil).Code)
}

func TestMissingToList(t *testing.T) {
	env := newTestEnv(t, noGenerator)
	token := env.token(t)

	rec := env.do(t, http.MethodPost, "/api/v1/suggestions/missing-to-list", token, map[string]any{
		"title":               "Pancakes",
		"missing_ingredients": []string{"flour", "Flour", "milk"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"source_recipe":"Pancakes"`)

	rec = env.do(t, http.MethodGet, "/api/v1/shopping-list", token, nil)
	assert.Len(t, decode[shoppingList](t, rec).Items, 2)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/v1/suggestions/missing-to-list", token, map[string]any{"title": "x"}).Code)
}
