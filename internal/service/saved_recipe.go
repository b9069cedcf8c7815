package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/smartpantry/backend/internal/models"
)

// SavedRecipeService keeps the suggestions a user wants to come back to
type SavedRecipeService struct {
	db *gorm.DB
}

// NewSavedRecipeService creates a new SavedRecipeService
func NewSavedRecipeService(db *gorm.DB) *SavedRecipeService {
	return &SavedRecipeService{db: db}
}

// Save stores a scored suggestion for userID. source is models.SourceAI or models.SourceAPI.
func (s *SavedRecipeService) Save(ctx context.Context, userID uuid.UUID, source string, in ScoredSuggestion) (*models.SavedRecipe, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	switch source {
	case "":
		source = models.SourceAI
	case models.SourceAI, models.SourceAPI:
	default:
		return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidInput, source)
	}

	recipe := &models.SavedRecipe{
		Base:               models.Base{UserID: userID},
		Title:              title,
		Ingredients:        models.StringList(in.Ingredients),
		Steps:              models.StringList(in.Steps),
		MissingIngredients: models.StringList(in.MissingIngredients),
		EstimatedTime:      in.EstimatedTime,
		Calories:           in.Calories,
		MatchPercentage:    in.MatchPercentage,
		Source:             source,
		Embedding:          GenerateEmbedding(title + " " + strings.Join(in.Ingredients, " ")),
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	return recipe, nil
}

// List returns userID's saved recipes, newest first
func (s *SavedRecipeService) List(ctx context.Context, userID uuid.UUID) ([]models.SavedRecipe, error) {
	recipes := []models.SavedRecipe{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	return recipes, nil
}

// Get returns a single saved recipe
func (s *SavedRecipeService) Get(ctx context.Context, userID, id uuid.UUID) (*models.SavedRecipe, error) {
	var recipe models.SavedRecipe
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saved recipe: %w", err)
	}
	return &recipe, nil
}

// Delete removes a saved recipe
func (s *SavedRecipeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.SavedRecipe{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete saved recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Search finds saved recipes matching query. On postgres keyword matches are
// ranked by embedding distance; other databases fall back to keyword search
// ordered by recency.
func (s *SavedRecipeService) Search(ctx context.Context, userID uuid.UUID, query string) ([]models.SavedRecipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx, userID)
	}

	like := "%" + strings.ToLower(query) + "%"
	db := s.db.WithContext(ctx)
	dbQuery := db.Where("user_id = ?", userID)

	if db.Dialector.Name() == "postgres" {
		vec := GenerateEmbedding(query)
		dbQuery = dbQuery.
			Where("LOWER(title) LIKE ? OR LOWER(ingredients::text) LIKE ?", like, like).
			Clauses(clause.OrderBy{Expression: clause.Expr{
				SQL:                "embedding <-> ?",
				Vars:               []interface{}{vec},
				WithoutParentheses: true,
			}})
	} else {
		dbQuery = dbQuery.
			Where("LOWER(title) LIKE ? OR LOWER(ingredients) LIKE ?", like, like).
			Order("created_at DESC")
	}

	recipes := []models.SavedRecipe{}
	if err := dbQuery.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to search saved recipes: %w", err)
	}
	return recipes, nil
}
