// Package matching compares recipe ingredients with pantry contents using
// loose text heuristics: case folding, unit and quantity stripping,
// singular/plural folding and whole-word containment.
package matching

import (
	"math"
	"regexp"
	"strings"

	"github.com/jinzhu/inflection"
)

var (
	quantity    = regexp.MustCompile(`\d+([./]\d+)?`)
	nonLetter   = regexp.MustCompile(`[^\p{L}\s]+`)
	parenthetic = regexp.MustCompile(`\([^)]*\)`)
)

// units and filler words dropped before comparison.
var stopWords = map[string]struct{}{
	"cup": {}, "cups": {}, "tbsp": {}, "tablespoon": {}, "tablespoons": {},
	"tsp": {}, "teaspoon": {}, "teaspoons": {}, "g": {}, "gram": {}, "grams": {},
	"kg": {}, "ml": {}, "l": {}, "liter": {}, "litre": {}, "oz": {}, "ounce": {},
	"ounces": {}, "lb": {}, "lbs": {}, "pound": {}, "pounds": {}, "pinch": {},
	"dash": {}, "clove": {}, "cloves": {}, "can": {}, "cans": {}, "slice": {},
	"slices": {}, "piece": {}, "pieces": {}, "of": {}, "a": {}, "an": {},
	"fresh": {}, "chopped": {}, "diced": {}, "minced": {}, "sliced": {},
	"large": {}, "small": {}, "medium": {}, "to": {}, "taste": {}, "and": {},
	"or": {}, "optional": {},
}

// Normalize reduces an ingredient line to its comparable core, e.g.
// "2 cups Chopped Tomatoes (ripe)" becomes "tomato".
func Normalize(name string) string {
	s := strings.ToLower(name)
	s = parenthetic.ReplaceAllString(s, " ")
	s = quantity.ReplaceAllString(s, " ")
	s = nonLetter.ReplaceAllString(s, " ")

	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if _, skip := stopWords[w]; skip {
			continue
		}
		kept = append(kept, inflection.Singular(w))
	}
	return strings.Join(kept, " ")
}

// Matches reports whether a pantry item satisfies an ingredient.
func Matches(pantryName, ingredient string) bool {
	return matchNormalized(Normalize(pantryName), Normalize(ingredient))
}

func matchNormalized(p, i string) bool {
	if p == "" || i == "" {
		return false
	}
	if p == i {
		return true
	}
	return containsWords(p, i) || containsWords(i, p)
}

// containsWords reports whether needle appears in haystack on word boundaries.
func containsWords(haystack, needle string) bool {
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}

// Percentage returns the share of ingredients covered by the pantry, from 0
// to 100 rounded to one decimal. No ingredients yields 0.
func Percentage(pantry, ingredients []string) float64 {
	if len(ingredients) == 0 {
		return 0
	}
	have := normalizeAll(pantry)
	matched := 0
	for _, ing := range ingredients {
		if anyMatch(have, Normalize(ing)) {
			matched++
		}
	}
	pct := float64(matched) / float64(len(ingredients)) * 100
	return math.Round(pct*10) / 10
}

// Missing lists the ingredients no pantry item satisfies, in input order.
func Missing(pantry, ingredients []string) []string {
	have := normalizeAll(pantry)
	missing := []string{}
	for _, ing := range ingredients {
		if !anyMatch(have, Normalize(ing)) {
			missing = append(missing, ing)
		}
	}
	return missing
}

func normalizeAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if norm := Normalize(n); norm != "" {
			out = append(out, norm)
		}
	}
	return out
}

func anyMatch(have []string, ingredient string) bool {
	for _, p := range have {
		if matchNormalized(p, ingredient) {
			return true
		}
	}
	return false
}
