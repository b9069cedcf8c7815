package api_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartpantry/backend/internal/models"
)

type shoppingList struct {
	Items []models.ShoppingListItem `json:"items"`
}

func TestShoppingListEndpoints(t *testing.T) {
	env := newTestEnv(t, noGenerator)
	token := env.token(t)

	rec := env.do(t, http.MethodPost, "/api/v1/shopping-list", token, map[string]any{"name": "milk", "quantity": 2, "unit": "l"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	milk := decode[models.ShoppingListItem](t, rec)

	rec = env.do(t, http.MethodPost, "/api/v1/shopping-list", token, map[string]any{"name": "bread"})
	require.Equal(t, http.StatusCreated, rec.Code)
	bread := decode[models.ShoppingListItem](t, rec)

	rec = env.do(t, http.MethodPost, "/api/v1/shopping-list/"+milk.ID.String()+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.ShoppingListItem](t, rec).Checked)

	rec = env.do(t, http.MethodPut, "/api/v1/shopping-list/"+bread.ID.String(), token, map[string]any{"name": "sourdough", "checked": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/shopping-list/export?format=pdf", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = env.do(t, http.MethodGet, "/api/v1/shopping-list/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, "without storage the pdf is streamed")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "shopping-list.pdf")

	rec = env.do(t, http.MethodPost, "/api/v1/shopping-list/checked/to-pantry", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"moved":2}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/pantry", token, nil)
	assert.Len(t, decode[pantryList](t, rec).Items, 2)

	rec = env.do(t, http.MethodGet, "/api/v1/shopping-list", token, nil)
	assert.Empty(t, decode[shoppingList](t, rec).Items)

	rec = env.do(t, http.MethodPost, "/api/v1/shopping-list", token, map[string]any{"name": "jam", "checked": true})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodDelete, "/api/v1/shopping-list/checked", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"removed":1}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/api/v1/shopping-list/"+milk.ID.String(), token, nil).Code)
}
