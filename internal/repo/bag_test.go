package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/packrat/internal/domain"
)

func TestBagRepo_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trip := f.createTrip(t)

	bag, err := f.repos.Bags.Create(ctx, domain.Bag{TripID: trip.ID, UserID: f.userID, Name: "carry-on"})
	require.NoError(t, err)
	assert.Empty(t, bag.Items)

	item, err := f.repos.Bags.AddItem(ctx, domain.BagItem{BagID: bag.ID, Name: "charger", Category: domain.CategoryElectronics})
	require.NoError(t, err)
	assert.False(t, item.Packed)

	toggled, err := f.repos.Bags.ToggleItem(ctx, bag.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Packed)

	bags, err := f.repos.Bags.List(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, bags, 1)
	require.Len(t, bags[0].Items, 1)
	assert.Equal(t, domain.CategoryElectronics, bags[0].Items[0].Category)

	require.NoError(t, f.repos.Bags.DeleteItem(ctx, bag.ID, item.ID))
	assert.ErrorIs(t, f.repos.Bags.DeleteItem(ctx, bag.ID, item.ID), domain.ErrNotFound)

	require.NoError(t, f.repos.Bags.Delete(ctx, trip.ID, bag.ID))
	_, err = f.repos.Bags.GetByID(ctx, trip.ID, bag.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBagRepo_List_EmptyItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trip := f.createTrip(t)

	_, err := f.repos.Bags.Create(ctx, domain.Bag{TripID: trip.ID, UserID: f.userID, Name: "backpack"})
	require.NoError(t, err)

	bags, err := f.repos.Bags.List(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, bags, 1)
	assert.NotNil(t, bags[0].Items)
}
