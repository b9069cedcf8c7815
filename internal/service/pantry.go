package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/smartpantry/backend/internal/models"
)

// PantryItemInput is the writable part of a pantry item.
type PantryItemInput struct {
	Name      string     `json:"name"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	Barcode   string     `json:"barcode"`
	Category  string     `json:"category"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (in *PantryItemInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	in.Barcode = strings.TrimSpace(in.Barcode)
	in.Category = strings.TrimSpace(in.Category)
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

// PantryService manages a user's pantry
type PantryService struct {
	db *gorm.DB
}

// NewPantryService creates a new PantryService
func NewPantryService(db *gorm.DB) *PantryService {
	return &PantryService{db: db}
}

// WithTx returns a PantryService bound to tx.
func (s *PantryService) WithTx(tx *gorm.DB) *PantryService {
	return &PantryService{db: tx}
}

// Create adds a new pantry item for userID
func (s *PantryService) Create(ctx context.Context, userID uuid.UUID, in PantryItemInput) (*models.PantryItem, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	item := &models.PantryItem{
		Base:      models.Base{UserID: userID},
		Name:      in.Name,
		Quantity:  in.Quantity,
		Unit:      in.Unit,
		Barcode:   in.Barcode,
		Category:  in.Category,
		ExpiresAt: in.ExpiresAt,
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create pantry item: %w", err)
	}
	return item, nil
}

// List returns every pantry item of userID ordered by name
func (s *PantryService) List(ctx context.Context, userID uuid.UUID) ([]models.PantryItem, error) {
	items := []models.PantryItem{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("LOWER(name)").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list pantry items: %w", err)
	}
	return items, nil
}

// ListNames returns the names of userID's pantry items.
func (s *PantryService) ListNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var names []string
	if err := s.db.WithContext(ctx).Model(&models.PantryItem{}).
		Where("user_id = ?", userID).Order("LOWER(name)").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list pantry names: %w", err)
	}
	return names, nil
}

// Get returns a single pantry item
func (s *PantryService) Get(ctx context.Context, userID, id uuid.UUID) (*models.PantryItem, error) {
	var item models.PantryItem
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pantry item: %w", err)
	}
	return &item, nil
}

// Update replaces the writable fields of a pantry item
func (s *PantryService) Update(ctx context.Context, userID, id uuid.UUID, in PantryItemInput) (*models.PantryItem, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	item.Name = in.Name
	item.Quantity = in.Quantity
	item.Unit = in.Unit
	item.Barcode = in.Barcode
	item.Category = in.Category
	item.ExpiresAt = in.ExpiresAt
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update pantry item: %w", err)
	}
	return item, nil
}

// Delete removes a pantry item
func (s *PantryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.PantryItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete pantry item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddOrIncrement merges in into an existing item with the same barcode, or
// failing that the same case-insensitive name, and creates one otherwise.
// The boolean reports whether a new item was created.
func (s *PantryService) AddOrIncrement(ctx context.Context, userID uuid.UUID, in PantryItemInput) (*models.PantryItem, bool, error) {
	if err := in.normalize(); err != nil {
		return nil, false, err
	}

	var existing models.PantryItem
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	var err error
	if in.Barcode != "" {
		err = q.Where("barcode = ?", in.Barcode).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = s.db.WithContext(ctx).Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(in.Name)).First(&existing).Error
		}
	} else {
		err = q.Where("LOWER(name) = ?", strings.ToLower(in.Name)).First(&existing).Error
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		item, err := s.Create(ctx, userID, in)
		return item, err == nil, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up pantry item: %w", err)
	}

	existing.Quantity += in.Quantity
	if existing.Barcode == "" {
		existing.Barcode = in.Barcode
	}
	if existing.Category == "" {
		existing.Category = in.Category
	}
	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, false, fmt.Errorf("failed to update pantry item: %w", err)
	}
	return &existing, false, nil
}
