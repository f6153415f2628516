package rider_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/database/dbtest"
	repo "github.com/Additional-Code/fooddelivery/internal/repository/rider"
	"github.com/Additional-Code/fooddelivery/internal/service/rider"
	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

func newService(t *testing.T) *rider.Service {
	t.Helper()
	return rider.NewService(rider.Params{
		Repository: repo.NewRepository(dbtest.Open(t)),
		Config:     dbtest.Config(t),
		Logger:     zap.NewNop(),
	})
}

func TestAvailabilityLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.Register(ctx, "John Doe", "Location 1")
	require.NoError(t, err)

	capacity, err := svc.AvailableWithCapacity(ctx)
	require.NoError(t, err)
	require.Len(t, capacity, 1)
	assert.Equal(t, created.ID, capacity[0].ID)

	require.NoError(t, svc.SetAvailability(ctx, created.ID, false))

	plain, err := svc.Available(ctx)
	require.NoError(t, err)
	assert.Empty(t, plain)

	require.NoError(t, svc.UpdateLocation(ctx, created.ID, "Location 9"))
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Location 9", got.Location)
	assert.False(t, got.IsAvailable)
}

func TestMissingRider(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	assert.True(t, errorbank.Is(svc.UpdateLocation(ctx, 5, "Location 2"), errorbank.KindNotFound))
	assert.True(t, errorbank.Is(svc.SetAvailability(ctx, 5, true), errorbank.KindNotFound))

	_, err := svc.Get(ctx, 5)
	assert.True(t, errorbank.Is(err, errorbank.KindNotFound))

	_, err = svc.Register(ctx, "", "Location 2")
	assert.True(t, errorbank.Is(err, errorbank.KindInvalidInput))
}
