package models

import (
	pgvector "github.com/pgvector/pgvector-go"
)

// Recipe sources.
const (
	SourceAI  = "ai"
	SourceAPI = "api"
)

// EmbeddingDimensions is the width of SavedRecipe.Embedding.
const EmbeddingDimensions = 16

// SavedRecipe is a suggestion the user chose to keep.
type SavedRecipe struct {
	Base
	Title              string          `gorm:"size:255;not null" json:"title"`
	Ingredients        StringList      `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps              StringList      `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	MissingIngredients StringList      `gorm:"type:jsonb;not null;default:'[]'" json:"missing_ingredients"`
	EstimatedTime      string          `gorm:"size:64" json:"estimated_time"`
	Calories           *int            `json:"calories,omitempty"`
	MatchPercentage    float64         `json:"match_percentage"`
	Source             string          `gorm:"size:16;not null;default:'ai'" json:"source"`
	Embedding          pgvector.Vector `gorm:"type:vector(16)" json:"-"`
}
