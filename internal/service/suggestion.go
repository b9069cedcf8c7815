package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/smartpantry/backend/internal/logger"
	"github.com/pageza/smartpantry/backend/internal/matching"
	"github.com/pageza/smartpantry/backend/internal/suggestion"
)

const (
	defaultMaxRecipes = 3
	maxMaxRecipes     = 10
)

// SuggestionOptions tunes a suggestion request.
type SuggestionOptions struct {
	Preferences []string `json:"preferences"`
	Exclude     []string `json:"exclude"`
	MaxRecipes  int      `json:"max_recipes"`
	// Refresh bypasses the cache.
	Refresh bool `json:"refresh"`
}

// ScoredSuggestion is a suggestion annotated with how much of it the pantry covers.
type ScoredSuggestion struct {
	suggestion.RecipeSuggestion
	MatchPercentage float64 `json:"match_percentage"`
}

// SuggestionResult is returned to clients. Status is "ok" or "empty".
type SuggestionResult struct {
	Recipes []ScoredSuggestion `json:"recipes"`
	Status  string             `json:"status"`
	Cached  bool               `json:"cached"`
}

// PantryReader is the part of the pantry the suggestion flow needs.
type PantryReader interface {
	ListNames(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// RecipeFinder searches a third-party recipe catalogue.
type RecipeFinder interface {
	FindByIngredients(ctx context.Context, ingredients []string, limit int) ([]suggestion.RecipeSuggestion, error)
}

// SuggestionService turns a pantry into recipe suggestions.
type SuggestionService struct {
	pantry    PantryReader
	generator TextGenerator
	finder    RecipeFinder
	cache     *SuggestionCache
}

// NewSuggestionService creates a new SuggestionService. finder and cache may be nil.
func NewSuggestionService(pantry PantryReader, generator TextGenerator, finder RecipeFinder, cache *SuggestionCache) *SuggestionService {
	return &SuggestionService{pantry: pantry, generator: generator, finder: finder, cache: cache}
}

// Suggest asks the generator for recipes that use userID's pantry.
// Transport failures wrap ErrUpstream; unusable model output wraps
// suggestion.ErrMalformedResponse.
func (s *SuggestionService) Suggest(ctx context.Context, userID uuid.UUID, opts SuggestionOptions) (*SuggestionResult, error) {
	names, err := s.pantry.ListNames(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrEmptyPantry
	}
	opts.MaxRecipes = clampRecipes(opts.MaxRecipes)

	key := suggestionCacheKey(userID, names, opts)
	if !opts.Refresh {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("suggestion cache read failed", zap.Error(err))
		} else if ok {
			cached.Cached = true
			return cached, nil
		}
	}

	raw, err := s.generator.Generate(ctx, systemPrompt(opts.MaxRecipes), userPrompt(names, opts))
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestions: %w", err)
	}
	logger.Debug("model output", zap.String("user_id", userID.String()), zap.String("raw", raw))

	parsed, err := suggestion.FromModelOutput(raw)
	if err != nil {
		logger.Warn("model output could not be parsed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	recipes := parsed.Recipes
	if len(recipes) > opts.MaxRecipes {
		recipes = recipes[:opts.MaxRecipes]
	}
	result := &SuggestionResult{
		Recipes: score(names, recipes),
		Status:  parsed.Status.String(),
	}

	if err := s.cache.Set(ctx, key, result); err != nil {
		logger.Warn("suggestion cache write failed", zap.Error(err))
	}
	return result, nil
}

// External searches the recipe API with userID's pantry and scores the
// results the same way generated suggestions are scored.
func (s *SuggestionService) External(ctx context.Context, userID uuid.UUID, limit int) (*SuggestionResult, error) {
	if s.finder == nil {
		return nil, fmt.Errorf("%w: no recipe api", ErrNotConfigured)
	}
	names, err := s.pantry.ListNames(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrEmptyPantry
	}

	found, err := s.finder.FindByIngredients(ctx, names, clampRecipes(limit))
	if err != nil {
		return nil, err
	}
	status := suggestion.StatusOK
	if len(found) == 0 {
		status = suggestion.StatusEmpty
	}
	return &SuggestionResult{Recipes: score(names, found), Status: status.String()}, nil
}

func score(pantry []string, recipes []suggestion.RecipeSuggestion) []ScoredSuggestion {
	out := make([]ScoredSuggestion, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, ScoredSuggestion{
			RecipeSuggestion: r,
			MatchPercentage:  matching.Percentage(pantry, r.Ingredients),
		})
	}
	return out
}

func clampRecipes(n int) int {
	if n <= 0 {
		return defaultMaxRecipes
	}
	if n > maxMaxRecipes {
		return maxMaxRecipes
	}
	return n
}

func systemPrompt(maxRecipes int) string {
	return fmt.Sprintf(`You are a helpful home cook. Suggest up to %d recipes that make good use of the ingredients the user has.
Respond with a single JSON object and nothing else, using this structure:
{
    "recipes": [
        {
            "title": "Recipe name",
            "ingredients": ["2 eggs", "1 cup milk"],
            "steps": ["Whisk the eggs", "Cook over medium heat"],
            "missing_ingredients": ["ingredients the user does not have"],
            "estimated_time": "20 minutes",
            "calories": 350
        }
    ]
}

Note: calories must be a whole number. Prefer recipes with few missing ingredients.`, maxRecipes)
}

func userPrompt(pantry []string, opts SuggestionOptions) string {
	var sb strings.Builder
	sb.WriteString("Ingredients I have: ")
	sb.WriteString(strings.Join(pantry, ", "))
	sb.WriteString(".")
	if len(opts.Preferences) > 0 {
		sb.WriteString(" Preferences: ")
		sb.WriteString(strings.Join(opts.Preferences, ", "))
		sb.WriteString(".")
	}
	if len(opts.Exclude) > 0 {
		sb.WriteString(" Do not use: ")
		sb.WriteString(strings.Join(opts.Exclude, ", "))
		sb.WriteString(".")
	}
	return sb.String()
}
