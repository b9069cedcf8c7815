package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pageza/smartpantry/backend/internal/suggestion"
)

// RecipeAPIClient finds recipes by ingredient on a Spoonacular compatible API.
type RecipeAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewRecipeAPIClient creates a RecipeAPIClient. A nil httpClient gets a 15s timeout.
func NewRecipeAPIClient(baseURL, apiKey string, httpClient *http.Client) *RecipeAPIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &RecipeAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type apiIngredient struct {
	Name     string `json:"name"`
	Original string `json:"original"`
}

type apiRecipe struct {
	ID                int             `json:"id"`
	Title             string          `json:"title"`
	UsedIngredients   []apiIngredient `json:"usedIngredients"`
	MissedIngredients []apiIngredient `json:"missedIngredients"`
}

// FindByIngredients returns up to limit recipes that use the given ingredients.
// Results carry no steps; the API only lists ingredients for this call.
func (c *RecipeAPIClient) FindByIngredients(ctx context.Context, ingredients []string, limit int) ([]suggestion.RecipeSuggestion, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: recipe api key is not set", ErrNotConfigured)
	}
	if len(ingredients) == 0 {
		return []suggestion.RecipeSuggestion{}, nil
	}
	if limit <= 0 {
		limit = 5
	}

	q := url.Values{}
	q.Set("ingredients", strings.Join(ingredients, ","))
	q.Set("number", strconv.Itoa(limit))
	q.Set("ranking", "1")
	q.Set("ignorePantry", "true")
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/recipes/findByIngredients?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: recipe search failed: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: recipe search returned %d", ErrUpstream, resp.StatusCode)
	}

	var found []apiRecipe
	if err := json.NewDecoder(resp.Body).Decode(&found); err != nil {
		return nil, fmt.Errorf("%w: failed to decode recipes: %v", ErrUpstream, err)
	}

	out := make([]suggestion.RecipeSuggestion, 0, len(found))
	for _, r := range found {
		rs := suggestion.RecipeSuggestion{
			Title:              r.Title,
			Ingredients:        []string{},
			Steps:              []string{},
			MissingIngredients: []string{},
		}
		for _, ing := range r.UsedIngredients {
			rs.Ingredients = append(rs.Ingredients, ingredientText(ing))
		}
		for _, ing := range r.MissedIngredients {
			rs.Ingredients = append(rs.Ingredients, ingredientText(ing))
			rs.MissingIngredients = append(rs.MissingIngredients, ing.Name)
		}
		out = append(out, rs)
	}
	return out, nil
}

func ingredientText(ing apiIngredient) string {
	if ing.Original != "" {
		return ing.Original
	}
	return ing.Name
}
