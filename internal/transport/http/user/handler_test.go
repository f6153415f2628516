package user_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/fooddelivery/internal/dto"
	"github.com/Additional-Code/fooddelivery/internal/entity"
	ordersvc "github.com/Additional-Code/fooddelivery/internal/service/order"
	"github.com/Additional-Code/fooddelivery/internal/transport/http/transporttest"
	usertransport "github.com/Additional-Code/fooddelivery/internal/transport/http/user"
)

func setup(t *testing.T) *transporttest.Env {
	t.Helper()
	env := transporttest.New(t)
	usertransport.Register(env.Echo, usertransport.NewHandler(env.Users, env.Orders))
	return env
}

func TestRegisterUser(t *testing.T) {
	env := setup(t)

	rec := env.Do(t, http.MethodPost, "/register_user", dto.RegisterUserRequest{Name: "Alice", Location: "Location 5"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := transporttest.Decode[dto.RegisterUserResponse](t, rec)
	assert.Positive(t, body.UserID)
	assert.Equal(t, "User registered successfully", body.Message)
}

func TestRegisterUserRequiresLocation(t *testing.T) {
	env := setup(t)

	rec := env.Do(t, http.MethodPost, "/register_user", map[string]string{"name": "Alice"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := transporttest.Decode[transporttest.ErrorBody](t, rec)
	assert.Equal(t, "invalid_input", body.Kind)
	assert.Equal(t, "location is required", body.Error)
	assert.Equal(t, map[string]any{"location": "required"}, body.Details)

	users, err := env.Users.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserHistory(t *testing.T) {
	ctx := context.Background()
	env := setup(t)

	user, err := env.Users.Register(ctx, "Alice", "Location 5")
	require.NoError(t, err)
	restaurant := &entity.Restaurant{Name: "Pizza Palace", Location: "Location 1", FoodType: "Italian", PrepTime: 20}
	menu, err := env.Restaurants.Register(ctx, restaurant, []entity.MenuItem{
		{ItemName: "Margherita", Price: 12.99},
		{ItemName: "Garlic Bread", Price: 4.99},
	})
	require.NoError(t, err)
	_, err = env.Orders.PlaceOrder(ctx, ordersvc.PlaceOrderInput{
		UserID:       user.ID,
		RestaurantID: restaurant.ID,
		ItemIDs:      []int64{menu[0].ID, menu[1].ID},
	})
	require.NoError(t, err)

	rec := env.Do(t, http.MethodGet, "/user/1/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := transporttest.Decode[dto.UserOrdersResponse](t, rec)
	assert.Equal(t, user.ID, body.UserID)
	require.Len(t, body.Orders, 1)
	assert.Equal(t, "Pizza Palace", body.Orders[0].Restaurant)
	assert.Equal(t, "Margherita, Garlic Bread", body.Orders[0].Items)
	assert.Equal(t, 17.98, body.Orders[0].TotalPrice)
	assert.Equal(t, "placed", body.Orders[0].Status)
	assert.Len(t, body.Orders[0].OrderedAt, len("2006-01-02 15:04:05"))

	details := env.Do(t, http.MethodGet, "/api/user/1/orders", nil)
	require.Equal(t, http.StatusOK, details.Code)
	rows := transporttest.Decode[[]dto.OrderDetailResponse](t, details)
	require.Len(t, rows, 1)
	assert.Equal(t, "Pizza Palace", rows[0].RestaurantName)
}

func TestUserHistoryNotFound(t *testing.T) {
	env := setup(t)

	rec := env.Do(t, http.MethodGet, "/user/42/orders", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", transporttest.Decode[transporttest.ErrorBody](t, rec).Kind)

	// The joined listing does not check the user.
	rec = env.Do(t, http.MethodGet, "/api/user/42/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = env.Do(t, http.MethodGet, "/user/abc/orders", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
