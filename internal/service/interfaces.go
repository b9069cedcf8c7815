package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/smartpantry/backend/internal/models"
)

// IPantryService defines the interface for pantry operations
type IPantryService interface {
	Create(ctx context.Context, userID uuid.UUID, in PantryItemInput) (*models.PantryItem, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.PantryItem, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*models.PantryItem, error)
	Update(ctx context.Context, userID, id uuid.UUID, in PantryItemInput) (*models.PantryItem, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	AddOrIncrement(ctx context.Context, userID uuid.UUID, in PantryItemInput) (*models.PantryItem, bool, error)
}

// IShoppingListService defines the interface for shopping list operations
type IShoppingListService interface {
	Create(ctx context.Context, userID uuid.UUID, in ShoppingItemInput) (*models.ShoppingListItem, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.ShoppingListItem, error)
	Update(ctx context.Context, userID, id uuid.UUID, in ShoppingItemInput) (*models.ShoppingListItem, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ToggleChecked(ctx context.Context, userID, id uuid.UUID) (*models.ShoppingListItem, error)
	ClearChecked(ctx context.Context, userID uuid.UUID) (int64, error)
	AddMissing(ctx context.Context, userID uuid.UUID, recipeTitle string, names []string) ([]models.ShoppingListItem, error)
	MoveCheckedToPantry(ctx context.Context, userID uuid.UUID) (int, error)
}

// ISuggestionService defines the interface for recipe suggestions
type ISuggestionService interface {
	Suggest(ctx context.Context, userID uuid.UUID, opts SuggestionOptions) (*SuggestionResult, error)
	External(ctx context.Context, userID uuid.UUID, limit int) (*SuggestionResult, error)
}

// ISavedRecipeService defines the interface for saved recipe operations
type ISavedRecipeService interface {
	Save(ctx context.Context, userID uuid.UUID, source string, in ScoredSuggestion) (*models.SavedRecipe, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.SavedRecipe, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*models.SavedRecipe, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Search(ctx context.Context, userID uuid.UUID, query string) ([]models.SavedRecipe, error)
}

// IProductLookup resolves barcodes
type IProductLookup interface {
	Lookup(ctx context.Context, barcode string) (*Product, error)
}

// IExportService defines the interface for shopping list exports
type IExportService interface {
	CanUpload() bool
	ShoppingListPDF(ctx context.Context, userID uuid.UUID) ([]byte, error)
	ExportShoppingList(ctx context.Context, userID uuid.UUID) (*ExportResult, error)
}

var (
	_ IPantryService       = (*PantryService)(nil)
	_ IShoppingListService = (*ShoppingListService)(nil)
	_ ISuggestionService   = (*SuggestionService)(nil)
	_ ISavedRecipeService  = (*SavedRecipeService)(nil)
	_ IProductLookup       = (*ProductClient)(nil)
	_ IExportService       = (*ExportService)(nil)
	_ RecipeFinder         = (*RecipeAPIClient)(nil)
	_ PantryReader         = (*PantryService)(nil)
	_ TextGenerator        = (*ChatClient)(nil)
	_ TextGenerator        = (*GeminiGenerator)(nil)
)
