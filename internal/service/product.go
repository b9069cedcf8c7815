package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var barcodePattern = regexp.MustCompile(`^\d{8,14}$`)

// Product is what a barcode lookup yields.
type Product struct {
	Barcode  string `json:"barcode"`
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`
	Quantity string `json:"quantity,omitempty"`
}

// ProductClient looks up products on an Open Food Facts compatible API.
type ProductClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewProductClient creates a ProductClient. A nil httpClient gets a 10s timeout.
func NewProductClient(baseURL string, httpClient *http.Client) *ProductClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &ProductClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// ValidateBarcode reports whether code looks like an EAN/UPC barcode.
func ValidateBarcode(code string) error {
	if !barcodePattern.MatchString(code) {
		return fmt.Errorf("%w: %q must be 8 to 14 digits", ErrInvalidBarcode, code)
	}
	return nil
}

// Lookup resolves barcode to a product.
func (c *ProductClient) Lookup(ctx context.Context, barcode string) (*Product, error) {
	barcode = strings.TrimSpace(barcode)
	if err := ValidateBarcode(barcode); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/api/v2/product/%s.json?fields=%s", c.baseURL, url.PathEscape(barcode),
		url.QueryEscape("code,product_name,generic_name,brands,categories,quantity"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "smartpantry/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: product lookup failed: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: product lookup returned %d", ErrUpstream, resp.StatusCode)
	}

	var result struct {
		Status  int `json:"status"`
		Product struct {
			ProductName string `json:"product_name"`
			GenericName string `json:"generic_name"`
			Brands      string `json:"brands"`
			Categories  string `json:"categories"`
			Quantity    string `json:"quantity"`
		} `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode product: %v", ErrUpstream, err)
	}
	if result.Status == 0 {
		return nil, ErrProductNotFound
	}

	name := strings.TrimSpace(result.Product.ProductName)
	if name == "" {
		name = strings.TrimSpace(result.Product.GenericName)
	}
	if name == "" {
		return nil, ErrProductNotFound
	}

	return &Product{
		Barcode:  barcode,
		Name:     name,
		Brand:    firstListEntry(result.Product.Brands),
		Category: firstListEntry(result.Product.Categories),
		Quantity: strings.TrimSpace(result.Product.Quantity),
	}, nil
}

// firstListEntry returns the first entry of a comma separated list.
func firstListEntry(s string) string {
	first, _, _ := strings.Cut(s, ",")
	return strings.TrimSpace(first)
}
