package restaurant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/fooddelivery/internal/database/dbtest"
	"github.com/Additional-Code/fooddelivery/internal/entity"
	"github.com/Additional-Code/fooddelivery/internal/repository/restaurant"
	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

func pizzaPalace() *entity.Restaurant {
	return &entity.Restaurant{
		Name:            "Pizza Palace",
		Location:        "123 Main St",
		FoodType:        "Italian",
		PrepTime:        20,
		ServesLunch:     true,
		ServesDinner:    true,
		ServesBreakfast: false,
	}
}

func TestRegisterWithMenu(t *testing.T) {
	ctx := context.Background()
	repo := restaurant.NewRepository(dbtest.Open(t))

	place := pizzaPalace()
	menu, err := repo.Register(ctx, place, []entity.MenuItem{
		{ItemName: "Margherita", Price: 12.99},
		{ItemName: "Pepperoni", Price: 14.99},
	})
	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Positive(t, place.ID)
	for _, item := range menu {
		assert.Positive(t, item.ID)
		assert.Equal(t, place.ID, item.RestaurantID)
	}

	got, err := repo.GetByID(ctx, place.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.DefaultOpeningTime, got.OpeningTime)
	assert.Equal(t, entity.DefaultClosingTime, got.ClosingTime)
	assert.False(t, got.ServesBreakfast)
	assert.True(t, got.ServesDinner)

	stored, err := repo.Menu(ctx, place.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Margherita", stored[0].ItemName)
	assert.InDelta(t, 14.99, stored[1].Price, 0.0001)
}

func TestRegisterRollsBackOnInvalidItem(t *testing.T) {
	ctx := context.Background()
	repo := restaurant.NewRepository(dbtest.Open(t))

	_, err := repo.Register(ctx, pizzaPalace(), []entity.MenuItem{
		{ItemName: "Margherita", Price: 12.99},
		{ItemName: "Free Lunch", Price: 0},
	})
	require.Error(t, err)
	assert.True(t, errorbank.Is(err, errorbank.KindInvalidInput))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRegisterRejectsBadFields(t *testing.T) {
	ctx := context.Background()
	repo := restaurant.NewRepository(dbtest.Open(t))

	noPrep := pizzaPalace()
	noPrep.PrepTime = 0
	_, err := repo.Register(ctx, noPrep, nil)
	assert.True(t, errorbank.Is(err, errorbank.KindInvalidInput))

	badClock := pizzaPalace()
	badClock.OpeningTime = "9am"
	_, err = repo.Register(ctx, badClock, nil)
	assert.True(t, errorbank.Is(err, errorbank.KindInvalidInput))
}

func TestAddMenuItem(t *testing.T) {
	ctx := context.Background()
	repo := restaurant.NewRepository(dbtest.Open(t))

	place := pizzaPalace()
	_, err := repo.Register(ctx, place, nil)
	require.NoError(t, err)

	item := &entity.MenuItem{RestaurantID: place.ID, ItemName: "Calzone", Price: 11}
	added, err := repo.AddMenuItem(ctx, item)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Positive(t, item.ID)

	added, err = repo.AddMenuItem(ctx, &entity.MenuItem{RestaurantID: place.ID + 100, ItemName: "Ghost", Price: 1})
	require.NoError(t, err)
	assert.False(t, added)

	_, err = repo.AddMenuItem(ctx, &entity.MenuItem{RestaurantID: place.ID, ItemName: "Free", Price: -1})
	assert.True(t, errorbank.Is(err, errorbank.KindInvalidInput))
}

func TestMenuItemsFiltersForeignIDs(t *testing.T) {
	ctx := context.Background()
	repo := restaurant.NewRepository(dbtest.Open(t))

	first := pizzaPalace()
	firstMenu, err := repo.Register(ctx, first, []entity.MenuItem{{ItemName: "Margherita", Price: 12.99}})
	require.NoError(t, err)

	second := &entity.Restaurant{Name: "Sushi Star", Location: "456 Oak Ave", FoodType: "Japanese", PrepTime: 25}
	secondMenu, err := repo.Register(ctx, second, []entity.MenuItem{{ItemName: "California Roll", Price: 8.99}})
	require.NoError(t, err)

	items, err := repo.MenuItems(ctx, first.ID, []int64{firstMenu[0].ID, secondMenu[0].ID, 9999})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Margherita", items[0].ItemName)

	items, err = repo.MenuItems(ctx, first.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListAndFoodTypes(t *testing.T) {
	ctx := context.Background()
	repo := restaurant.NewRepository(dbtest.Open(t))

	for _, r := range []*entity.Restaurant{
		{Name: "A", Location: "Location 1", FoodType: "Italian", PrepTime: 10},
		{Name: "B", Location: "Location 2", FoodType: "Japanese", PrepTime: 10},
		{Name: "C", Location: "Location 3", FoodType: "Italian", PrepTime: 10},
	} {
		_, err := repo.Register(ctx, r, nil)
		require.NoError(t, err)
	}

	italian, err := repo.List(ctx, "Italian")
	require.NoError(t, err)
	assert.Len(t, italian, 2)

	types, err := repo.FoodTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Italian", "Japanese"}, types)
}
