package matching_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/database/dbtest"
	"github.com/Additional-Code/fooddelivery/internal/entity"
	"github.com/Additional-Code/fooddelivery/internal/matching"
	riderrepo "github.com/Additional-Code/fooddelivery/internal/repository/rider"
)

func TestDigits(t *testing.T) {
	t.Parallel()

	cases := map[string]int64{
		"Location 5":            5,
		"123 Main St, Apt 4":    1234,
		"Central Park":          0,
		"":                      0,
		"99999999999999999999x": math.MaxInt64,
	}
	for in, want := range cases {
		assert.Equal(t, want, matching.Digits(in), in)
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(3), matching.Distance("Location 2", "Location 5"))
	assert.Equal(t, int64(3), matching.Distance("Location 5", "Location 2"))
	assert.Equal(t, int64(0), matching.Distance("Park", "Beach"))
}

func TestEstimators(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 35, matching.FlatDeliveryEstimate(20, matching.DefaultFlatTravelMinutes))

	// Short distances clamp up to five minutes.
	assert.Equal(t, 25, matching.DistanceBasedDeliveryEstimate("Location 1", "Location 2", 20))
	// 1200 / 100 = 12 minutes of travel.
	assert.Equal(t, 22, matching.DistanceBasedDeliveryEstimate("100", "1300", 10))
	// Far away clamps down to thirty.
	assert.Equal(t, 40, matching.DistanceBasedDeliveryEstimate("1", "999999", 10))
}

func TestNearestBreaksTiesByID(t *testing.T) {
	t.Parallel()

	assert.Nil(t, matching.Nearest(nil, "Location 5"))

	candidates := []entity.RiderLoad{
		{ID: 4, Location: "Location 7"},
		{ID: 2, Location: "Location 3"},
		{ID: 9, Location: "Location 6"},
		{ID: 3, Location: "Location 4"},
	}
	nearest := matching.Nearest(candidates, "Location 5")
	require.NotNil(t, nearest)
	assert.Equal(t, int64(3), nearest.ID)

	// Input order is left untouched.
	assert.Equal(t, int64(4), candidates[0].ID)
}

func TestSuggestRestaurants(t *testing.T) {
	t.Parallel()

	restaurants := []entity.Restaurant{
		{ID: 1, Location: "Location 1", PrepTime: 20},
		{ID: 2, Location: "Location 5", PrepTime: 25},
		{ID: 3, Location: "Location 9", PrepTime: 15},
		{ID: 4, Location: "Location 2", PrepTime: 15},
		{ID: 5, Location: "Location 3", PrepTime: 40},
	}

	got := matching.SuggestRestaurants(restaurants, "Location 5", 30)
	require.Len(t, got, 4)
	// Same location means no travel.
	assert.Equal(t, int64(2), got[0].Restaurant.ID)
	assert.Equal(t, 25, got[0].EstimatedMinutes)
	assert.Equal(t, int64(3), got[1].Restaurant.ID)
	assert.Equal(t, 25, got[1].EstimatedMinutes)
	assert.Equal(t, int64(4), got[2].Restaurant.ID)
	assert.Equal(t, int64(1), got[3].Restaurant.ID)
	assert.Equal(t, 30, got[3].EstimatedMinutes)

	assert.Empty(t, matching.SuggestRestaurants(restaurants, "Location 5", 5))
}

func TestSuggestionTravelIgnoresPadding(t *testing.T) {
	t.Parallel()

	assert.Zero(t, matching.SuggestionTravelMinutes("Downtown ", "Downtown"))
	assert.Zero(t, matching.SuggestionTravelMinutes("Downtown", " Downtown"))
	assert.Equal(t, 10, matching.SuggestionTravelMinutes("Downtown", "Uptown"))

	got := matching.SuggestRestaurants([]entity.Restaurant{{ID: 1, Location: "Downtown ", PrepTime: 15}}, "Downtown", 15)
	require.Len(t, got, 1)
	assert.Equal(t, 15, got[0].EstimatedMinutes)
}

func TestMealPeriodAt(t *testing.T) {
	t.Parallel()

	at := func(h int) time.Time { return time.Date(2024, 1, 1, h, 30, 0, 0, time.UTC) }
	assert.Equal(t, entity.MealDinner, matching.MealPeriodAt(at(5)))
	assert.Equal(t, entity.MealBreakfast, matching.MealPeriodAt(at(6)))
	assert.Equal(t, entity.MealBreakfast, matching.MealPeriodAt(at(10)))
	assert.Equal(t, entity.MealLunch, matching.MealPeriodAt(at(11)))
	assert.Equal(t, entity.MealLunch, matching.MealPeriodAt(at(15)))
	assert.Equal(t, entity.MealDinner, matching.MealPeriodAt(at(16)))
	assert.Equal(t, entity.MealDinner, matching.MealPeriodAt(at(23)))
}

func TestIsOpen(t *testing.T) {
	t.Parallel()

	at := func(h, m int) time.Time { return time.Date(2024, 1, 1, h, m, 0, 0, time.UTC) }

	day := &entity.Restaurant{OpeningTime: "09:00", ClosingTime: "22:00"}
	assert.True(t, matching.IsOpen(day, at(9, 0)))
	assert.True(t, matching.IsOpen(day, at(22, 0)))
	assert.False(t, matching.IsOpen(day, at(22, 1)))
	assert.False(t, matching.IsOpen(day, at(8, 59)))

	night := &entity.Restaurant{OpeningTime: "18:00", ClosingTime: "03:00"}
	assert.True(t, matching.IsOpen(night, at(23, 0)))
	assert.True(t, matching.IsOpen(night, at(2, 0)))
	assert.False(t, matching.IsOpen(night, at(12, 0)))

	broken := &entity.Restaurant{OpeningTime: "soon", ClosingTime: "22:00"}
	assert.False(t, matching.IsOpen(broken, at(12, 0)))
}

func TestFindNearestRider(t *testing.T) {
	ctx := context.Background()
	conns := dbtest.Open(t)
	riders := riderrepo.NewRepository(conns)
	cfg := dbtest.Config(t)

	m := matching.New(cfg, riders, zap.NewNop())

	none, err := m.FindNearestRider(ctx, "Location 5")
	require.NoError(t, err)
	assert.Nil(t, none)

	far, err := riders.Register(ctx, "Far", "Location 90")
	require.NoError(t, err)
	near, err := riders.Register(ctx, "Near", "Location 6")
	require.NoError(t, err)

	got, err := m.FindNearestRider(ctx, "Location 5")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, near.ID, got.ID)

	_, err = riders.SetAvailability(ctx, near.ID, false)
	require.NoError(t, err)

	got, err = m.FindNearestRider(ctx, "Location 5")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, far.ID, got.ID)

	assert.Equal(t, 3, m.MaxActiveOrders())
	assert.Equal(t, 25, m.FlatDeliveryEstimate(10))
}
