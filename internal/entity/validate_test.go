package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/fooddelivery/internal/entity"
	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

func TestValidateReportsColumnNames(t *testing.T) {
	t.Parallel()

	err := entity.Validate(&entity.User{Location: "Downtown"})
	require.Error(t, err)

	appErr := errorbank.From(err)
	assert.Equal(t, errorbank.KindInvalidInput, appErr.Kind())
	assert.Equal(t, "name is required", appErr.Message())
	assert.Equal(t, map[string]any{"name": "required"}, appErr.Details())
}

func TestValidateRestaurant(t *testing.T) {
	t.Parallel()

	valid := entity.Restaurant{
		Name:        "Pizza Palace",
		Location:    "123 Main St",
		FoodType:    "Italian",
		PrepTime:    20,
		OpeningTime: "00:00",
		ClosingTime: "23:00",
	}
	assert.NoError(t, entity.Validate(&valid))

	noPrep := valid
	noPrep.PrepTime = 0
	err := entity.Validate(&noPrep)
	require.Error(t, err)
	assert.Equal(t, "prep_time must be greater than 0", errorbank.From(err).Message())

	badClock := valid
	badClock.ClosingTime = "11pm"
	assert.True(t, errorbank.Is(entity.Validate(&badClock), errorbank.KindInvalidInput))
}

func TestValidateMenuItemPrice(t *testing.T) {
	t.Parallel()

	err := entity.Validate(&entity.MenuItem{RestaurantID: 1, ItemName: "Garlic Bread", Price: 0})
	require.Error(t, err)
	assert.Equal(t, map[string]any{"price": "gt"}, errorbank.From(err).Details())
}

func TestValidateOrderStatus(t *testing.T) {
	t.Parallel()

	order := entity.Order{RestaurantID: 1, Items: "Miso Soup", TotalPrice: 3.99, Status: "shipped"}
	err := entity.Validate(&order)
	require.Error(t, err)
	assert.Contains(t, errorbank.From(err).Message(), "status must be one of")

	order.Status = entity.OrderPlaced
	assert.NoError(t, entity.Validate(&order))
}

func TestOrderStatusValid(t *testing.T) {
	t.Parallel()

	for _, s := range entity.OrderStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, entity.OrderStatus("cancelled").Valid())
}

func TestRestaurantServes(t *testing.T) {
	t.Parallel()

	r := entity.Restaurant{ServesBreakfast: true, ServesDinner: true}
	assert.True(t, r.Serves(entity.MealBreakfast))
	assert.False(t, r.Serves(entity.MealLunch))
	assert.True(t, r.Serves(entity.MealDinner))
	assert.False(t, r.Serves("brunch"))
}
