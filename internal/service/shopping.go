package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/smartpantry/backend/internal/matching"
	"github.com/pageza/smartpantry/backend/internal/models"
)

// ShoppingItemInput is the writable part of a shopping list item.
type ShoppingItemInput struct {
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	Checked      bool    `json:"checked"`
	SourceRecipe string  `json:"source_recipe"`
}

func (in *ShoppingItemInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	return nil
}

// ShoppingListService manages a user's shopping list
type ShoppingListService struct {
	db     *gorm.DB
	pantry *PantryService
}

// NewShoppingListService creates a new ShoppingListService
func NewShoppingListService(db *gorm.DB, pantry *PantryService) *ShoppingListService {
	return &ShoppingListService{db: db, pantry: pantry}
}

// Create adds an item to the shopping list
func (s *ShoppingListService) Create(ctx context.Context, userID uuid.UUID, in ShoppingItemInput) (*models.ShoppingListItem, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	item := &models.ShoppingListItem{
		Base:         models.Base{UserID: userID},
		Name:         in.Name,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		Checked:      in.Checked,
		SourceRecipe: in.SourceRecipe,
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create shopping list item: %w", err)
	}
	return item, nil
}

// List returns the shopping list, unchecked items first, then in insertion order
func (s *ShoppingListService) List(ctx context.Context, userID uuid.UUID) ([]models.ShoppingListItem, error) {
	items := []models.ShoppingListItem{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("checked ASC").Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list shopping list: %w", err)
	}
	return items, nil
}

func (s *ShoppingListService) get(ctx context.Context, userID, id uuid.UUID) (*models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping list item: %w", err)
	}
	return &item, nil
}

// Update replaces the writable fields of an item
func (s *ShoppingListService) Update(ctx context.Context, userID, id uuid.UUID, in ShoppingItemInput) (*models.ShoppingListItem, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	item, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	item.Name = in.Name
	item.Quantity = in.Quantity
	item.Unit = in.Unit
	item.Checked = in.Checked
	item.SourceRecipe = in.SourceRecipe
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update shopping list item: %w", err)
	}
	return item, nil
}

// Delete removes an item from the list
func (s *ShoppingListService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.ShoppingListItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete shopping list item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleChecked flips the checked flag of an item
func (s *ShoppingListService) ToggleChecked(ctx context.Context, userID, id uuid.UUID) (*models.ShoppingListItem, error) {
	item, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	item.Checked = !item.Checked
	if err := s.db.WithContext(ctx).Model(item).Update("checked", item.Checked).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle shopping list item: %w", err)
	}
	return item, nil
}

// ClearChecked deletes every checked item and returns how many were removed
func (s *ShoppingListService) ClearChecked(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Where("user_id = ? AND checked = ?", userID, true).Delete(&models.ShoppingListItem{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear checked items: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// AddMissing puts a recipe's missing ingredients on the list. Names already on
// the list, or repeated in names, are skipped. Only the new items are returned.
func (s *ShoppingListService) AddMissing(ctx context.Context, userID uuid.UUID, recipeTitle string, names []string) ([]models.ShoppingListItem, error) {
	current, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(current)+len(names))
	for _, item := range current {
		seen[itemKey(item.Name)] = struct{}{}
	}

	added := []models.ShoppingListItem{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			key := itemKey(name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			item := models.ShoppingListItem{
				Base:         models.Base{UserID: userID},
				Name:         name,
				Quantity:     1,
				SourceRecipe: strings.TrimSpace(recipeTitle),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			added = append(added, item)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add missing ingredients: %w", err)
	}
	return added, nil
}

// MoveCheckedToPantry adds every checked item to the pantry and removes it
// from the list, in a single transaction. It returns the number moved.
func (s *ShoppingListService) MoveCheckedToPantry(ctx context.Context, userID uuid.UUID) (int, error) {
	moved := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var checked []models.ShoppingListItem
		if err := tx.Where("user_id = ? AND checked = ?", userID, true).Order("created_at ASC").Find(&checked).Error; err != nil {
			return err
		}

		pantry := s.pantry.WithTx(tx)
		for _, item := range checked {
			if _, _, err := pantry.AddOrIncrement(ctx, userID, PantryItemInput{
				Name:     item.Name,
				Quantity: item.Quantity,
				Unit:     item.Unit,
			}); err != nil {
				return err
			}
			if err := tx.Delete(&models.ShoppingListItem{}, "id = ?", item.ID).Error; err != nil {
				return err
			}
			moved++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to move checked items to pantry: %w", err)
	}
	return moved, nil
}

// itemKey is the identity used to spot duplicates on the list.
func itemKey(name string) string {
	if key := matching.Normalize(name); key != "" {
		return key
	}
	return strings.ToLower(strings.TrimSpace(name))
}
