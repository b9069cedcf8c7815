package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/smartpantry/backend/internal/logger"
	"github.com/pageza/smartpantry/backend/internal/models"
)

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to install pgvector extension: %w", err)
		}
	}

	if err := db.AutoMigrate(
		&models.PantryItem{},
		&models.ShoppingListItem{},
		&models.SavedRecipe{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Info("database schema is up to date")
	return nil
}
