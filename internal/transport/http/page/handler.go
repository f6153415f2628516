// Package page serves the HTML pages.
package page

import (
	"cmp"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/entity"
	"github.com/Additional-Code/fooddelivery/internal/presentation/http/page"
	restaurantsvc "github.com/Additional-Code/fooddelivery/internal/service/restaurant"
	ridersvc "github.com/Additional-Code/fooddelivery/internal/service/rider"
	usersvc "github.com/Additional-Code/fooddelivery/internal/service/user"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/transport/http/page")

// Handler renders the HTML pages. Forms post to the JSON endpoints.
type Handler struct {
	users       *usersvc.Service
	riders      *ridersvc.Service
	restaurants *restaurantsvc.Service
	logger      *zap.Logger
}

// NewHandler constructs a page Handler.
func NewHandler(users *usersvc.Service, riders *ridersvc.Service, restaurants *restaurantsvc.Service, logger *zap.Logger) *Handler {
	return &Handler{users: users, riders: riders, restaurants: restaurants, logger: logger}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	static := map[string]string{
		"/":                      "Food Delivery",
		"/register_user":         "Register user",
		"/register_rider":        "Register rider",
		"/register_restaurant":   "Register restaurant",
		"/assign_rider":          "Assign rider",
		"/update_rider_location": "Update rider location",
		"/user_orders":           "User orders",
		"/rider_orders":          "Rider orders",
	}
	for route, title := range static {
		name := route[1:]
		if name == "" {
			name = "index"
		}
		e.GET(route, h.static(name, title))
	}

	e.GET("/users", h.usersPage)
	e.GET("/riders", h.ridersPage)
	e.GET("/restaurants", h.restaurantsPage)
	e.GET("/view_menu", h.restaurantPicker("view_menu", "Menus"))
	e.GET("/place_order", h.restaurantPicker("place_order", "Place order"))
	e.GET("/suggest_restaurants", h.suggestPage)
}

func (h *Handler) static(name, title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, name, page.Data{Title: title})
	}
}

func (h *Handler) usersPage(c echo.Context) error {
	ctx, span := httpTracer.Start(c.Request().Context(), "pages.users")
	defer span.End()

	data := page.Data{Title: "Users"}
	users, err := h.users.List(ctx)
	switch {
	case err != nil:
		h.logger.Error("load users page", zap.Error(err))
		data.Error = "Error loading users."
	case len(users) == 0:
		data.Error = "No users found."
	default:
		data.Users = users
	}
	return c.Render(http.StatusOK, "users", data)
}

func (h *Handler) ridersPage(c echo.Context) error {
	ctx, span := httpTracer.Start(c.Request().Context(), "pages.riders")
	defer span.End()

	data := page.Data{Title: "Riders"}
	riders, err := h.riders.List(ctx)
	switch {
	case err != nil:
		h.logger.Error("load riders page", zap.Error(err))
		data.Error = "Error loading riders."
	case len(riders) == 0:
		data.Error = "No riders found."
	default:
		data.Riders = riders
	}
	return c.Render(http.StatusOK, "riders", data)
}

func (h *Handler) restaurantsPage(c echo.Context) error {
	ctx, span := httpTracer.Start(c.Request().Context(), "pages.restaurants")
	defer span.End()

	data := page.Data{Title: "Restaurants"}
	restaurants, err := h.restaurants.List(ctx, "")
	switch {
	case err != nil:
		h.logger.Error("load restaurants page", zap.Error(err))
		data.Error = "Error loading restaurants."
	case len(restaurants) == 0:
		data.Error = "No restaurants found."
	default:
		data.Restaurants = restaurants
	}
	return c.Render(http.StatusOK, "restaurants", data)
}

// restaurantPicker renders a page offering every restaurant by name.
func (h *Handler) restaurantPicker(name, title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := httpTracer.Start(c.Request().Context(), "pages."+name)
		defer span.End()

		data := page.Data{Title: title}
		restaurants, err := h.restaurants.List(ctx, "")
		if err != nil {
			h.logger.Error("load restaurant picker", zap.String("page", name), zap.Error(err))
			data.Error = "Error loading restaurants."
		}
		data.Restaurants = byName(restaurants)
		return c.Render(http.StatusOK, name, data)
	}
}

func (h *Handler) suggestPage(c echo.Context) error {
	ctx, span := httpTracer.Start(c.Request().Context(), "pages.suggest_restaurants")
	defer span.End()

	data := page.Data{Title: "Suggest restaurants"}
	types, err := h.restaurants.FoodTypes(ctx)
	if err != nil {
		h.logger.Error("load food types", zap.Error(err))
		data.Error = "Error loading restaurants."
		return c.Render(http.StatusOK, "suggest_restaurants", data)
	}
	restaurants, err := h.restaurants.List(ctx, "")
	if err != nil {
		h.logger.Error("load restaurants", zap.Error(err))
		data.Error = "Error loading restaurants."
	}
	data.FoodTypes = types
	data.Restaurants = byName(restaurants)
	return c.Render(http.StatusOK, "suggest_restaurants", data)
}

func byName(in []entity.Restaurant) []entity.Restaurant {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b entity.Restaurant) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}
