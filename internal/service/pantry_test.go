package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartpantry/backend/internal/testdb"
)

func TestPantryService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewPantryService(testdb.SQLite(t))
	userID := uuid.New()

	item, err := svc.Create(ctx, userID, PantryItemInput{Name: "  Eggs ", Unit: "pcs"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, "Eggs", item.Name)
	assert.Equal(t, 1.0, item.Quantity)

	_, err = svc.Create(ctx, userID, PantryItemInput{Name: "butter", Quantity: 250, Unit: "g"})
	require.NoError(t, err)

	items, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "butter", items[0].Name)
	assert.Equal(t, "Eggs", items[1].Name)

	names, err := svc.ListNames(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"butter", "Eggs"}, names)

	updated, err := svc.Update(ctx, userID, item.ID, PantryItemInput{Name: "Eggs", Quantity: 12})
	require.NoError(t, err)
	assert.Equal(t, 12.0, updated.Quantity)

	got, err := svc.Get(ctx, userID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.Quantity)

	require.NoError(t, svc.Delete(ctx, userID, item.ID))
	_, err = svc.Get(ctx, userID, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, userID, item.ID), ErrNotFound)
}

func TestPantryService_Validation(t *testing.T) {
	svc := NewPantryService(testdb.SQLite(t))

	_, err := svc.Create(context.Background(), uuid.New(), PantryItemInput{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), uuid.New(), PantryItemInput{Name: "rice", Quantity: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPantryService_UserIsolation(t *testing.T) {
	ctx := context.Background()
	svc := NewPantryService(testdb.SQLite(t))
	owner, other := uuid.New(), uuid.New()

	item, err := svc.Create(ctx, owner, PantryItemInput{Name: "milk"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, other, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Update(ctx, other, item.ID, PantryItemInput{Name: "stolen"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, other, item.ID), ErrNotFound)

	items, err := svc.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)

	still, err := svc.Get(ctx, owner, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "milk", still.Name)
}

func TestPantryService_AddOrIncrement(t *testing.T) {
	ctx := context.Background()
	svc := NewPantryService(testdb.SQLite(t))
	userID := uuid.New()

	first, created, err := svc.AddOrIncrement(ctx, userID, PantryItemInput{Name: "Nutella", Barcode: "3017620422003"})
	require.NoError(t, err)
	assert.True(t, created)

	t.Run("same barcode increments", func(t *testing.T) {
		item, created, err := svc.AddOrIncrement(ctx, userID, PantryItemInput{Name: "Hazelnut spread", Barcode: "3017620422003"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, item.ID)
		assert.Equal(t, 2.0, item.Quantity)
		assert.Equal(t, "Nutella", item.Name)
	})

	t.Run("same name ignoring case increments", func(t *testing.T) {
		item, created, err := svc.AddOrIncrement(ctx, userID, PantryItemInput{Name: "NUTELLA", Quantity: 3})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, item.ID)
		assert.Equal(t, 5.0, item.Quantity)
	})

	t.Run("unknown barcode falls back to name", func(t *testing.T) {
		item, created, err := svc.AddOrIncrement(ctx, userID, PantryItemInput{Name: "nutella", Barcode: "80176800"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, item.ID)
		assert.Equal(t, "3017620422003", item.Barcode)
	})

	t.Run("another user gets a new item", func(t *testing.T) {
		item, created, err := svc.AddOrIncrement(ctx, uuid.New(), PantryItemInput{Name: "Nutella", Barcode: "3017620422003"})
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEqual(t, first.ID, item.ID)
	})
}
