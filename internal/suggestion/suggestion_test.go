package suggestion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartpantry/backend/internal/sanitize"
)

func TestParseRecipes_DefaultsMissingFields(t *testing.T) {
	result, err := ParseRecipes(`{"recipes":[{"title":"Soup"}]}`)
	require.NoError(t, err)
	require.Len(t, result.Recipes, 1)
	assert.Equal(t, StatusOK, result.Status)

	got := result.Recipes[0]
	assert.Equal(t, "Soup", got.Title)
	assert.NotNil(t, got.Ingredients)
	assert.Empty(t, got.Ingredients)
	assert.NotNil(t, got.Steps)
	assert.Empty(t, got.Steps)
	assert.NotNil(t, got.MissingIngredients)
	assert.Empty(t, got.MissingIngredients)
	assert.Equal(t, "", got.EstimatedTime)
	assert.Nil(t, got.Calories)
}

func TestParseRecipes_NoRecipesKey(t *testing.T) {
	result, err := ParseRecipes(`{}`)
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.NotNil(t, result.Recipes)
	assert.Empty(t, result.Recipes)
}

func TestParseRecipes_Malformed(t *testing.T) {
	inputs := []string{
		"{not json",
		sanitize.Sanitize("here: {not json"),
		`{"recipes": [}`,
		`{"a":1} trailing`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			result, err := ParseRecipes(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedResponse))
			assert.Empty(t, result.Recipes)
		})
	}
}

func TestParseRecipes_BenignEmpty(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty array", input: `{"recipes":[]}`},
		{name: "recipes is an object", input: `{"recipes":{"title":"Soup"}}`},
		{name: "recipes is a string", input: `{"recipes":"none"}`},
		{name: "recipes is null", input: `{"recipes":null}`},
		{name: "only non-object entries", input: `{"recipes":[1,"two",null,[3]]}`},
		{name: "top level array", input: `[{"title":"Soup"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseRecipes(tt.input)
			require.NoError(t, err)
			assert.Equal(t, StatusEmpty, result.Status)
			assert.Empty(t, result.Recipes)
		})
	}
}

func TestParseRecipes_FullEntryAndOrder(t *testing.T) {
	input := `{"recipes":[
		{"title":"Omelette","ingredients":["egg","milk"],"steps":["whisk","fry"],
		 "missing_ingredients":["chives"],"estimated_time":"10 min","calories":320},
		"skip me",
		{"title":"Toast","calories":"150"},
		{"title":"Salad","missingIngredients":["feta"],"estimatedTime":"5 min"}
	]}`

	result, err := ParseRecipes(input)
	require.NoError(t, err)
	require.Len(t, result.Recipes, 3)

	first := result.Recipes[0]
	assert.Equal(t, "Omelette", first.Title)
	assert.Equal(t, []string{"egg", "milk"}, first.Ingredients)
	assert.Equal(t, []string{"whisk", "fry"}, first.Steps)
	assert.Equal(t, []string{"chives"}, first.MissingIngredients)
	assert.Equal(t, "10 min", first.EstimatedTime)
	require.NotNil(t, first.Calories)
	assert.Equal(t, 320, *first.Calories)

	assert.Equal(t, "Toast", result.Recipes[1].Title)
	require.NotNil(t, result.Recipes[1].Calories)
	assert.Equal(t, 150, *result.Recipes[1].Calories)

	assert.Equal(t, "Salad", result.Recipes[2].Title)
	assert.Equal(t, []string{"feta"}, result.Recipes[2].MissingIngredients)
	assert.Equal(t, "5 min", result.Recipes[2].EstimatedTime)
}

func TestParseRecipes_WrongTypedFields(t *testing.T) {
	input := `{"recipes":[{"title":42,"ingredients":"egg","steps":[1,"stir",{"x":1},null,true],
		"missing_ingredients":null,"estimated_time":["10"],"calories":"lots"}]}`

	result, err := ParseRecipes(input)
	require.NoError(t, err)
	require.Len(t, result.Recipes, 1)

	got := result.Recipes[0]
	assert.Equal(t, "42", got.Title)
	assert.Equal(t, []string{}, got.Ingredients)
	assert.Equal(t, []string{"1", "stir", "true"}, got.Steps)
	assert.Equal(t, []string{}, got.MissingIngredients)
	assert.Equal(t, "", got.EstimatedTime)
	assert.Nil(t, got.Calories)
}

func TestParseRecipes_Calories(t *testing.T) {
	tests := []struct {
		raw      string
		expected *int
	}{
		{raw: `350`, expected: intPtr(350)},
		{raw: `350.9`, expected: intPtr(350)},
		{raw: `"420"`, expected: intPtr(420)},
		{raw: `" 99.5 "`, expected: intPtr(99)},
		{raw: `-10`, expected: intPtr(-10)},
		{raw: `"about 300"`, expected: nil},
		{raw: `null`, expected: nil},
		{raw: `true`, expected: nil},
		{raw: `[300]`, expected: nil},
		{raw: `1e20`, expected: nil},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			result, err := ParseRecipes(`{"recipes":[{"title":"x","calories":` + tt.raw + `}]}`)
			require.NoError(t, err)
			require.Len(t, result.Recipes, 1)
			assert.Equal(t, tt.expected, result.Recipes[0].Calories)
		})
	}
}

func TestFromModelOutput(t *testing.T) {
	raw := "Sure! Here are some ideas:\n```json\n{\n  // based on your pantry\n  \"recipes\": [\n    {\"title\": \"Fried Rice\", \"ingredients\": [\"rice\", \"egg\",],},\n  ],\n}\n```"

	result, err := FromModelOutput(raw)
	require.NoError(t, err)
	require.Len(t, result.Recipes, 1)
	assert.Equal(t, "Fried Rice", result.Recipes[0].Title)
	assert.Equal(t, []string{"rice", "egg"}, result.Recipes[0].Ingredients)
}

func TestFromModelOutput_GarbageIsBenignEmpty(t *testing.T) {
	result, err := FromModelOutput("I'm sorry, I can't help with that.")
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "empty", StatusEmpty.String())
	assert.Equal(t, "unknown", Status(9).String())
}
