package restaurant

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/fooddelivery/internal/dto"
	"github.com/Additional-Code/fooddelivery/internal/entity"
	"github.com/Additional-Code/fooddelivery/internal/presentation/http/request"
	"github.com/Additional-Code/fooddelivery/internal/presentation/http/response"
	service "github.com/Additional-Code/fooddelivery/internal/service/restaurant"
	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/transport/http/restaurant")

// Handler exposes restaurant and menu endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a restaurant Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	e.POST("/register_restaurant", h.register)
	e.POST("/add_menu_item", h.addMenuItem)
	e.GET("/menu/:restaurant_id", h.menu)
	e.GET("/api/restaurant/:id/menu", h.menuItems)
	e.GET("/api/restaurants/search", h.search)
	e.GET("/api/restaurants/suggest", h.suggest)
}

func (h *Handler) register(c echo.Context) error {
	b := response.New(c)

	var payload dto.RegisterRestaurantRequest
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}
	restaurant, items := payload.Entity()

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.register", trace.WithAttributes(
		attribute.String("restaurant.food_type", restaurant.FoodType),
		attribute.Int("menu.items", len(items)),
	))
	defer span.End()

	if _, err := h.svc.Register(ctx, restaurant, items); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.RegisterRestaurantResponse{
		RestaurantID: restaurant.ID,
		Message:      "Restaurant registered successfully",
	}).Build()
}

func (h *Handler) addMenuItem(c echo.Context) error {
	b := response.New(c)

	var payload dto.AddMenuItemRequest
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.addMenuItem", trace.WithAttributes(attribute.Int64("restaurant.id", payload.RestaurantID)))
	defer span.End()

	item := &entity.MenuItem{RestaurantID: payload.RestaurantID, ItemName: payload.ItemName, Price: payload.Price}
	if err := h.svc.AddMenuItem(ctx, item); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithMessage("Menu item added successfully").Build()
}

func (h *Handler) menu(c echo.Context) error {
	b := response.New(c)

	id, err := request.PathID(c, "restaurant_id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.menu", trace.WithAttributes(attribute.Int64("restaurant.id", id)))
	defer span.End()

	menu, err := h.svc.Menu(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.MenuResponse{
		RestaurantID:   menu.Restaurant.ID,
		RestaurantName: menu.Restaurant.Name,
		Menu:           dto.ToMenuItems(menu.Items),
	}).Build()
}

// menuItems backs the order form; an unknown restaurant has an empty menu.
func (h *Handler) menuItems(c echo.Context) error {
	b := response.New(c)

	id, err := request.PathID(c, "id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.menuItems", trace.WithAttributes(attribute.Int64("restaurant.id", id)))
	defer span.End()

	menu, err := h.svc.Menu(ctx, id)
	if errorbank.Is(err, errorbank.KindNotFound) {
		return b.WithData([]dto.MenuItemResponse{}).Build()
	}
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.ToMenuItems(menu.Items)).Build()
}

func (h *Handler) search(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.search")
	defer span.End()

	period, listings, err := h.svc.Search(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	out := make([]dto.SearchResult, 0, len(listings))
	for _, l := range listings {
		out = append(out, dto.SearchResult{
			RestaurantResponse: dto.ToRestaurantResponse(l.Restaurant),
			IsOpen:             l.IsOpen,
			MealPeriod:         period,
		})
	}
	return b.WithData(out).Build()
}

func (h *Handler) suggest(c echo.Context) error {
	b := response.New(c)

	var maxMinutes int
	if raw := strings.TrimSpace(c.QueryParam("max_delivery_time")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return b.WithError(errorbank.InvalidInput("max_delivery_time must be an integer",
				errorbank.WithDetail("max_delivery_time", raw), errorbank.WithCause(err))).Build()
		}
		maxMinutes = parsed
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "restaurants.suggest")
	defer span.End()

	suggestions, err := h.svc.Suggest(ctx, c.QueryParam("location"), c.QueryParam("food_type"), maxMinutes)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.ToSuggestions(suggestions)).Build()
}
