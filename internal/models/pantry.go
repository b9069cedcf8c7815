package models

import "time"

// PantryItem is something the user has at home.
type PantryItem struct {
	Base
	Name      string     `gorm:"size:255;not null" json:"name"`
	Quantity  float64    `gorm:"not null;default:1" json:"quantity"`
	Unit      string     `gorm:"size:32" json:"unit"`
	Barcode   string     `gorm:"size:32;index" json:"barcode,omitempty"`
	Category  string     `gorm:"size:64" json:"category,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ShoppingListItem is something the user intends to buy.
type ShoppingListItem struct {
	Base
	Name         string  `gorm:"size:255;not null" json:"name"`
	Quantity     float64 `gorm:"not null;default:1" json:"quantity"`
	Unit         string  `gorm:"size:32" json:"unit"`
	Checked      bool    `gorm:"not null;default:false" json:"checked"`
	SourceRecipe string  `gorm:"size:255" json:"source_recipe,omitempty"`
}
