package order_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/fooddelivery/internal/dto"
	"github.com/Additional-Code/fooddelivery/internal/entity"
	ordertransport "github.com/Additional-Code/fooddelivery/internal/transport/http/order"
	"github.com/Additional-Code/fooddelivery/internal/transport/http/transporttest"
)

type fixture struct {
	env        *transporttest.Env
	user       *entity.User
	restaurant *entity.Restaurant
	menu       []entity.MenuItem
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	env := transporttest.New(t)
	ordertransport.Register(env.Echo, ordertransport.NewHandler(env.Orders))

	user, err := env.Users.Register(ctx, "Alice", "Location 5")
	require.NoError(t, err)
	restaurant := &entity.Restaurant{Name: "Pizza Palace", Location: "Location 1", FoodType: "Italian", PrepTime: 20}
	menu, err := env.Restaurants.Register(ctx, restaurant, []entity.MenuItem{
		{ItemName: "Margherita", Price: 12.99},
		{ItemName: "Garlic Bread", Price: 4.99},
	})
	require.NoError(t, err)

	return &fixture{env: env, user: user, restaurant: restaurant, menu: menu}
}

func (f *fixture) place(t *testing.T) dto.PlacementResponse {
	t.Helper()
	rec := f.env.Do(t, http.MethodPost, "/place_order", dto.PlaceOrderRequest{
		UserID:       f.user.ID,
		RestaurantID: f.restaurant.ID,
		ItemIDs:      []int64{f.menu[0].ID, f.menu[1].ID},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return transporttest.Decode[dto.PlacementResponse](t, rec)
}

func TestPlaceOrderWithoutRiders(t *testing.T) {
	f := setup(t)

	got := f.place(t)
	assert.Equal(t, "Pizza Palace", got.Restaurant)
	assert.Equal(t, "Margherita, Garlic Bread", got.Items)
	assert.Equal(t, 17.98, got.TotalPrice)
	assert.Equal(t, "placed", got.Status)
	assert.Equal(t, "Pending", got.RiderStatus)
	assert.Nil(t, got.RiderID)
}

func TestPlaceOrderAssignsRider(t *testing.T) {
	f := setup(t)
	rider, err := f.env.Riders.Register(context.Background(), "John", "Location 2")
	require.NoError(t, err)

	got := f.place(t)
	assert.Equal(t, "assigned", got.Status)
	assert.Equal(t, "Assigned", got.RiderStatus)
	require.NotNil(t, got.RiderID)
	assert.Equal(t, rider.ID, *got.RiderID)
	require.NotNil(t, got.EstimatedDeliveryTime)
	assert.Equal(t, 35, *got.EstimatedDeliveryTime)
}

func TestPlaceOrderRejectsForeignItems(t *testing.T) {
	f := setup(t)

	rec := f.env.Do(t, http.MethodPost, "/place_order", dto.PlaceOrderRequest{
		UserID:       f.user.ID,
		RestaurantID: f.restaurant.ID,
		ItemIDs:      []int64{f.menu[0].ID, 404},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_input", transporttest.Decode[transporttest.ErrorBody](t, rec).Kind)

	rec = f.env.Do(t, http.MethodPost, "/place_order", map[string]any{"user_id": f.user.ID, "restaurant_id": f.restaurant.ID})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"item_ids": "required"}, transporttest.Decode[transporttest.ErrorBody](t, rec).Details)

	orders, err := f.env.Orders.UserOrders(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestGetOrderAndUpdateStatus(t *testing.T) {
	f := setup(t)
	placed := f.place(t)
	path := fmt.Sprintf("/api/orders/%d", placed.OrderID)

	rec := f.env.Do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	detail := transporttest.Decode[dto.OrderDetailResponse](t, rec)
	assert.Equal(t, "Pizza Palace", detail.RestaurantName)
	assert.Equal(t, "placed", detail.Status)
	assert.Nil(t, detail.RiderName)

	rec = f.env.Do(t, http.MethodPut, path+"/status", dto.UpdateOrderStatusRequest{Status: "in_progress"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Status updated"}`, rec.Body.String())
	assert.Equal(t, "in_progress", transporttest.Decode[dto.OrderDetailResponse](t, f.env.Do(t, http.MethodGet, path, nil)).Status)

	rec = f.env.Do(t, http.MethodPut, path+"/status", dto.UpdateOrderStatusRequest{Status: "shipped"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.env.Do(t, http.MethodPut, path+"/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "completed", transporttest.Decode[dto.OrderDetailResponse](t, f.env.Do(t, http.MethodGet, path, nil)).Status)

	assert.Equal(t, http.StatusNotFound, f.env.Do(t, http.MethodGet, "/api/orders/999", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.env.Do(t, http.MethodPut, "/api/orders/999/complete", nil).Code)
}

func TestQuickOrder(t *testing.T) {
	f := setup(t)

	rec := f.env.Do(t, http.MethodPost, "/api/orders", dto.QuickOrderRequest{
		RestaurantID: f.restaurant.ID,
		Items:        []dto.QuickItemRequest{{Name: "Margherita", Price: 12.99}, {Price: 1.01}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	got := transporttest.Decode[dto.QuickOrderResponse](t, rec)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, 14.0, got.TotalPrice)
	assert.Nil(t, got.RiderID)
	assert.Nil(t, got.Rider)

	rider, err := f.env.Riders.Register(context.Background(), "John", "Location 2")
	require.NoError(t, err)

	rec = f.env.Do(t, http.MethodPost, "/api/orders", dto.QuickOrderRequest{
		RestaurantID: f.restaurant.ID,
		Items:        []dto.QuickItemRequest{{Name: "Margherita", Price: 12.99}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got = transporttest.Decode[dto.QuickOrderResponse](t, rec)
	assert.Equal(t, "assigned", got.Status)
	require.NotNil(t, got.Rider)
	assert.Equal(t, dto.QuickOrderRider{Name: "John", ID: rider.ID}, *got.Rider)
	assert.NotNil(t, got.EstimatedTime)

	rec = f.env.Do(t, http.MethodPost, "/api/orders", dto.QuickOrderRequest{RestaurantID: f.restaurant.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.env.Do(t, http.MethodPost, "/api/orders", dto.QuickOrderRequest{
		RestaurantID: 77,
		Items:        []dto.QuickItemRequest{{Name: "Tea", Price: 1}},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssignRider(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	placed := f.place(t)

	rider, err := f.env.Riders.Register(ctx, "John", "Location 2")
	require.NoError(t, err)

	rec := f.env.Do(t, http.MethodPost, "/api/orders/assign_rider", dto.AssignRiderRequest{
		OrderID:       placed.OrderID,
		RiderID:       rider.ID,
		EstimatedTime: 40,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, dto.AssignRiderResponse{
		Message:       "Rider assigned successfully",
		OrderID:       placed.OrderID,
		RiderID:       rider.ID,
		EstimatedTime: 40,
	}, transporttest.Decode[dto.AssignRiderResponse](t, rec))

	detail, err := f.env.Orders.Get(ctx, placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderAssigned, detail.Status)
	require.NotNil(t, detail.RiderName)
	assert.Equal(t, "John", *detail.RiderName)

	rec = f.env.Do(t, http.MethodPost, "/api/orders/assign_rider", dto.AssignRiderRequest{OrderID: placed.OrderID, RiderID: 99, EstimatedTime: 40})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.env.Do(t, http.MethodPost, "/api/orders/assign_rider", dto.AssignRiderRequest{OrderID: 99, RiderID: rider.ID, EstimatedTime: 40})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssignRiderAtCapacity(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	rider, err := f.env.Riders.Register(ctx, "John", "Location 2")
	require.NoError(t, err)
	// Each placement goes to the only rider; start them all.
	for i := 0; i < 3; i++ {
		placed := f.place(t)
		require.Equal(t, "Assigned", placed.RiderStatus)
		require.NoError(t, f.env.Orders.UpdateStatus(ctx, placed.OrderID, entity.OrderInProgress))
	}
	extra := f.place(t)
	require.Equal(t, "Pending", extra.RiderStatus)

	rec := f.env.Do(t, http.MethodPost, "/api/orders/assign_rider", dto.AssignRiderRequest{OrderID: extra.OrderID, RiderID: rider.ID, EstimatedTime: 30})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", transporttest.Decode[transporttest.ErrorBody](t, rec).Kind)
}
