package service

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/smartpantry/backend/internal/models"
	"github.com/pageza/smartpantry/backend/internal/suggestion"
	"github.com/pageza/smartpantry/backend/internal/testdb"
)

func scored(title string, ingredients ...string) ScoredSuggestion {
	return ScoredSuggestion{
		RecipeSuggestion: suggestion.RecipeSuggestion{
			Title:              title,
			Ingredients:        ingredients,
			Steps:              []string{"cook"},
			MissingIngredients: []string{},
		},
		MatchPercentage: 50,
	}
}

func exerciseSavedRecipes(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	svc := NewSavedRecipeService(db)
	userID := uuid.New()

	cal := 410
	soup := scored("Tomato Soup", "4 tomatoes", "1 onion", "salt")
	soup.Calories = &cal
	saved, err := svc.Save(ctx, userID, "", soup)
	require.NoError(t, err)
	assert.Equal(t, models.SourceAI, saved.Source)
	assert.Len(t, saved.Embedding.Slice(), models.EmbeddingDimensions)

	_, err = svc.Save(ctx, userID, models.SourceAPI, scored("Apple Pie", "apples", "flour", "butter"))
	require.NoError(t, err)
	_, err = svc.Save(ctx, uuid.New(), models.SourceAI, scored("Tomato Salad", "tomatoes"))
	require.NoError(t, err)

	got, err := svc.Get(ctx, userID, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"4 tomatoes", "1 onion", "salt"}, got.Ingredients)
	require.NotNil(t, got.Calories)
	assert.Equal(t, 410, *got.Calories)

	all, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := svc.Search(ctx, userID, "TOMATO")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Tomato Soup", found[0].Title)

	found, err = svc.Search(ctx, userID, "flour")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Apple Pie", found[0].Title)

	found, err = svc.Search(ctx, userID, "  ")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = svc.Get(ctx, uuid.New(), saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, svc.Delete(ctx, userID, saved.ID))
	assert.ErrorIs(t, svc.Delete(ctx, userID, saved.ID), ErrNotFound)
}

func TestSavedRecipeService_SQLite(t *testing.T) {
	exerciseSavedRecipes(t, testdb.SQLite(t))
}

func TestSavedRecipeService_Postgres(t *testing.T) {
	exerciseSavedRecipes(t, testdb.Postgres(t))
}

func TestSavedRecipeService_Validation(t *testing.T) {
	svc := NewSavedRecipeService(testdb.SQLite(t))

	_, err := svc.Save(context.Background(), uuid.New(), models.SourceAI, scored("  "))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Save(context.Background(), uuid.New(), "magazine", scored("Stew"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGenerateEmbedding(t *testing.T) {
	a := GenerateEmbedding("Tomato soup and onions")
	b := GenerateEmbedding("tomatoes, soup, onion")
	c := GenerateEmbedding("chocolate cake")

	assert.Equal(t, a.Slice(), b.Slice(), "normalization makes these identical")
	assert.Len(t, a.Slice(), models.EmbeddingDimensions)

	var norm float64
	for _, v := range c.Slice() {
		norm += float64(v * v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)

	empty := GenerateEmbedding("")
	for _, v := range empty.Slice() {
		assert.Zero(t, v)
	}
}
