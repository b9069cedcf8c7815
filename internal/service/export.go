package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/pageza/smartpantry/backend/config"
	"github.com/pageza/smartpantry/backend/internal/models"
)

// ExportURLExpiry is how long a presigned export link stays valid.
const ExportURLExpiry = 15 * time.Minute

// ExportResult points at an uploaded shopping list.
type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExportService renders shopping lists for printing
type ExportService struct {
	shopping *ShoppingListService
	storage  *config.S3Config
	now      func() time.Time
}

// NewExportService creates a new ExportService. storage may be nil, in which
// case only ShoppingListPDF is available.
func NewExportService(shopping *ShoppingListService, storage *config.S3Config) *ExportService {
	return &ExportService{shopping: shopping, storage: storage, now: time.Now}
}

// CanUpload reports whether exports can be stored remotely.
func (s *ExportService) CanUpload() bool {
	return s.storage != nil
}

// ShoppingListPDF renders userID's shopping list.
func (s *ExportService) ShoppingListPDF(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	items, err := s.shopping.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return RenderShoppingListPDF("Shopping list", items, s.now())
}

// ExportShoppingList uploads the rendered list and returns a presigned link.
func (s *ExportService) ExportShoppingList(ctx context.Context, userID uuid.UUID) (*ExportResult, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("%w: export storage", ErrNotConfigured)
	}

	pdf, err := s.ShoppingListPDF(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	key := fmt.Sprintf("shopping-lists/%s/%s.pdf", userID, now.Format("20060102T150405Z"))
	if err := s.storage.Upload(ctx, key, "application/pdf", pdf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	url, err := s.storage.GeneratePresignedURL(ctx, key, ExportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return &ExportResult{Key: key, URL: url, ExpiresAt: now.Add(ExportURLExpiry)}, nil
}

// RenderShoppingListPDF lays the items out as a printable A4 checklist.
// Checked items get a crossed box.
func RenderShoppingListPDF(title string, items []models.ShoppingListItem, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetCreator("SmartPantry", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, "Generated "+generatedAt.Format("2 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 12)

	if len(items) == 0 {
		pdf.CellFormat(0, 8, "Nothing to buy.", "", 1, "L", false, 0, "")
	}

	const rowHeight = 8.0
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, item := range items {
		if pdf.GetY()+rowHeight > pageHeight-bottom {
			pdf.AddPage()
		}
		x, y := pdf.GetXY()
		pdf.Rect(x, y+2, 4, 4, "D")
		if item.Checked {
			pdf.Line(x, y+2, x+4, y+6)
			pdf.Line(x, y+6, x+4, y+2)
		}
		pdf.SetX(x + 7)
		pdf.CellFormat(0, rowHeight, tr(itemLine(item)), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func itemLine(item models.ShoppingListItem) string {
	line := item.Name
	if item.Quantity != 1 || item.Unit != "" {
		qty := strconv.FormatFloat(item.Quantity, 'f', -1, 64)
		if item.Unit != "" {
			qty += " " + item.Unit
		}
		line = qty + " " + line
	}
	if item.SourceRecipe != "" {
		line += "  (for " + item.SourceRecipe + ")"
	}
	return line
}
