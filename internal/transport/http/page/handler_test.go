package page_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/entity"
	"github.com/Additional-Code/fooddelivery/internal/presentation/http/page"
	pagetransport "github.com/Additional-Code/fooddelivery/internal/transport/http/page"
	"github.com/Additional-Code/fooddelivery/internal/transport/http/transporttest"
)

func setup(t *testing.T) *transporttest.Env {
	t.Helper()
	env := transporttest.New(t)
	renderer, err := page.NewRenderer()
	require.NoError(t, err)
	env.Echo.Renderer = renderer
	pagetransport.Register(env.Echo, pagetransport.NewHandler(env.Users, env.Riders, env.Restaurants, zap.NewNop()))
	return env
}

func TestStaticPages(t *testing.T) {
	env := setup(t)

	for _, path := range []string{"/", "/register_user", "/register_rider", "/register_restaurant",
		"/assign_rider", "/update_rider_location", "/user_orders", "/rider_orders"} {
		rec := env.Do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "<html", path)
	}
}

func TestListingPagesReportEmptyStore(t *testing.T) {
	env := setup(t)

	assert.Contains(t, env.Do(t, http.MethodGet, "/users", nil).Body.String(), "No users found.")
	assert.Contains(t, env.Do(t, http.MethodGet, "/riders", nil).Body.String(), "No riders found.")
	assert.Contains(t, env.Do(t, http.MethodGet, "/restaurants", nil).Body.String(), "No restaurants found.")
}

func TestRestaurantPickersSortByName(t *testing.T) {
	ctx := context.Background()
	env := setup(t)

	for _, name := range []string{"Taco Town", "Burger Joint", "Pizza Palace"} {
		_, err := env.Restaurants.Register(ctx, &entity.Restaurant{Name: name, Location: "Location 1", FoodType: "Mixed", PrepTime: 10}, nil)
		require.NoError(t, err)
	}

	body := env.Do(t, http.MethodGet, "/view_menu", nil).Body.String()
	burger := strings.Index(body, "Burger Joint")
	pizza := strings.Index(body, "Pizza Palace")
	taco := strings.Index(body, "Taco Town")
	require.Positive(t, burger)
	assert.Less(t, burger, pizza)
	assert.Less(t, pizza, taco)

	suggest := env.Do(t, http.MethodGet, "/suggest_restaurants", nil)
	require.Equal(t, http.StatusOK, suggest.Code)
	assert.Contains(t, suggest.Body.String(), "<option>Mixed</option>")
}
