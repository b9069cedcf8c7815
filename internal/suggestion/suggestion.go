// Package suggestion extracts recipe suggestions from sanitized model output.
package suggestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/pageza/smartpantry/backend/internal/sanitize"
)

// ErrMalformedResponse reports model output that is still not JSON after
// sanitization. It is never returned for transport failures.
var ErrMalformedResponse = errors.New("unparseable model response")

// Status describes a successful parse.
type Status int

const (
	// StatusEmpty means the object was valid but carried no usable recipes.
	StatusEmpty Status = iota
	// StatusOK means at least one recipe was extracted.
	StatusOK
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// RecipeSuggestion is a single recipe proposed by a generator or recipe API.
// Slices are never nil. Calories is nil when the source had no integer value.
type RecipeSuggestion struct {
	Title              string   `json:"title"`
	Ingredients        []string `json:"ingredients"`
	Steps              []string `json:"steps"`
	MissingIngredients []string `json:"missing_ingredients"`
	EstimatedTime      string   `json:"estimated_time"`
	Calories           *int     `json:"calories,omitempty"`
}

// ParseResult is the outcome of ParseRecipes.
type ParseResult struct {
	Recipes []RecipeSuggestion
	Status  Status
}

// Empty reports whether the result holds no recipes.
func (r ParseResult) Empty() bool {
	return r.Status == StatusEmpty
}

// FromModelOutput sanitizes raw model output and parses the recipes in it.
func FromModelOutput(raw string) (ParseResult, error) {
	return ParseRecipes(sanitize.Sanitize(raw))
}

// ParseRecipes reads the "recipes" array of a JSON object. Invalid JSON
// yields an error wrapping ErrMalformedResponse. A valid document without a
// recipes array is StatusEmpty, not an error. Elements that are not objects
// are skipped and the order of the rest is preserved.
func ParseRecipes(text string) (ParseResult, error) {
	std, err := hujson.Standardize([]byte(text))
	if err != nil {
		return ParseResult{Recipes: []RecipeSuggestion{}}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	dec := json.NewDecoder(bytes.NewReader(std))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return ParseResult{Recipes: []RecipeSuggestion{}}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	result := ParseResult{Recipes: []RecipeSuggestion{}, Status: StatusEmpty}

	obj, ok := root.(map[string]any)
	if !ok {
		return result, nil
	}
	entries, ok := obj["recipes"].([]any)
	if !ok {
		return result, nil
	}

	for _, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		result.Recipes = append(result.Recipes, fromFields(fields))
	}
	if len(result.Recipes) > 0 {
		result.Status = StatusOK
	}
	return result, nil
}

func fromFields(fields map[string]any) RecipeSuggestion {
	return RecipeSuggestion{
		Title:              stringField(lookup(fields, "title")),
		Ingredients:        stringList(lookup(fields, "ingredients")),
		Steps:              stringList(lookup(fields, "steps")),
		MissingIngredients: stringList(lookup(fields, "missing_ingredients", "missingIngredients")),
		EstimatedTime:      stringField(lookup(fields, "estimated_time", "estimatedTime")),
		Calories:           intField(lookup(fields, "calories")),
	}
}

// lookup returns the first non-null value among keys.
func lookup(fields map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := fields[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringField(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch item.(type) {
		case string, json.Number, bool:
			out = append(out, stringField(item))
		}
	}
	return out
}

// intField accepts integral numbers, fractional numbers (truncated) and
// numeric strings. Anything else is absent.
func intField(v any) *int {
	var f float64
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return intPtr(i)
		}
		parsed, err := val.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		s := strings.TrimSpace(val)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return intPtr(i)
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	return intPtr(int64(f))
}

func intPtr(i int64) *int {
	if i > math.MaxInt32 || i < math.MinInt32 {
		return nil
	}
	n := int(i)
	return &n
}
