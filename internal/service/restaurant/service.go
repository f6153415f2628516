package restaurant

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/cache"
	"github.com/Additional-Code/fooddelivery/internal/config"
	"github.com/Additional-Code/fooddelivery/internal/entity"
	"github.com/Additional-Code/fooddelivery/internal/matching"
	repo "github.com/Additional-Code/fooddelivery/internal/repository/restaurant"
	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/service/restaurant")

// Service manages restaurants, their menus and restaurant discovery.
type Service struct {
	repo     *repo.Repository
	cache    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:     p.Repository,
		cache:    p.Cache,
		cacheTTL: p.Config.Cache.DefaultTTL,
		logger:   p.Logger,
		now:      time.Now,
	}
}

// Menu is a restaurant together with its items.
type Menu struct {
	Restaurant entity.Restaurant `json:"restaurant"`
	Items      []entity.MenuItem `json:"items"`
}

// Listing is a restaurant annotated with whether it is open right now.
type Listing struct {
	Restaurant entity.Restaurant
	IsOpen     bool
}

// Register creates a restaurant with an optional initial menu.
func (s *Service) Register(ctx context.Context, restaurant *entity.Restaurant, items []entity.MenuItem) ([]entity.MenuItem, error) {
	ctx, span := serviceTracer.Start(ctx, "RestaurantService.Register")
	defer span.End()

	menu, err := s.repo.Register(ctx, restaurant, items)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	s.logger.Info("restaurant registered",
		zap.Int64("restaurant_id", restaurant.ID),
		zap.Int("menu_items", len(menu)),
	)
	return menu, nil
}

// Get loads a restaurant or fails with not_found.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Restaurant, error) {
	restaurant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	if restaurant == nil {
		return nil, errorbank.NotFound("restaurant not found")
	}
	return restaurant, nil
}

// List returns restaurants, optionally restricted to one food type.
func (s *Service) List(ctx context.Context, foodType string) ([]entity.Restaurant, error) {
	restaurants, err := s.repo.List(ctx, foodType)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	return restaurants, nil
}

// FoodTypes returns the distinct cuisines on offer.
func (s *Service) FoodTypes(ctx context.Context) ([]string, error) {
	types, err := s.repo.FoodTypes(ctx)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	return types, nil
}

// AddMenuItem appends an item and drops the cached menu.
func (s *Service) AddMenuItem(ctx context.Context, item *entity.MenuItem) error {
	ctx, span := serviceTracer.Start(ctx, "RestaurantService.AddMenuItem", trace.WithAttributes(attribute.Int64("restaurant.id", item.RestaurantID)))
	defer span.End()

	added, err := s.repo.AddMenuItem(ctx, item)
	if err != nil {
		return errorbank.FromStorage(err)
	}
	if !added {
		return errorbank.NotFound("restaurant not found")
	}
	if err := s.cache.Delete(ctx, menuKey(item.RestaurantID)); err != nil {
		s.logger.Warn("menu cache invalidation failed", zap.Int64("restaurant_id", item.RestaurantID), zap.Error(err))
	}
	return nil
}

// Menu returns a restaurant and its items, consulting the cache first.
func (s *Service) Menu(ctx context.Context, restaurantID int64) (*Menu, error) {
	ctx, span := serviceTracer.Start(ctx, "RestaurantService.Menu", trace.WithAttributes(attribute.Int64("restaurant.id", restaurantID)))
	defer span.End()

	var cached Menu
	err := cache.GetJSON(ctx, s.cache, menuKey(restaurantID), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("menu cache read failed", zap.Int64("restaurant_id", restaurantID), zap.Error(err))
	}

	restaurant, err := s.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Menu(ctx, restaurantID)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}

	menu := &Menu{Restaurant: *restaurant, Items: items}
	if err := cache.SetJSON(ctx, s.cache, menuKey(restaurantID), menu, s.cacheTTL); err != nil {
		s.logger.Warn("menu cache write failed", zap.Int64("restaurant_id", restaurantID), zap.Error(err))
	}
	return menu, nil
}

// Search lists the restaurants serving the current meal period, each
// flagged open or closed.
func (s *Service) Search(ctx context.Context) (entity.MealPeriod, []Listing, error) {
	ctx, span := serviceTracer.Start(ctx, "RestaurantService.Search")
	defer span.End()

	now := s.now()
	period := matching.MealPeriodAt(now)
	span.SetAttributes(attribute.String("meal.period", string(period)))

	restaurants, err := s.repo.List(ctx, "")
	if err != nil {
		return period, nil, errorbank.FromStorage(err)
	}

	listings := make([]Listing, 0, len(restaurants))
	for i := range restaurants {
		if !restaurants[i].Serves(period) {
			continue
		}
		listings = append(listings, Listing{
			Restaurant: restaurants[i],
			IsOpen:     matching.IsOpen(&restaurants[i], now),
		})
	}
	return period, listings, nil
}

// Suggest ranks restaurants of a food type by how quickly they can deliver
// to location, keeping those within maxMinutes.
func (s *Service) Suggest(ctx context.Context, location, foodType string, maxMinutes int) ([]matching.Suggestion, error) {
	location = strings.TrimSpace(location)
	foodType = strings.TrimSpace(foodType)
	switch {
	case location == "":
		return nil, errorbank.InvalidInput("location is required", errorbank.WithDetail("location", "required"))
	case foodType == "":
		return nil, errorbank.InvalidInput("food_type is required", errorbank.WithDetail("food_type", "required"))
	case maxMinutes <= 0:
		return nil, errorbank.InvalidInput("max_delivery_time must be greater than 0", errorbank.WithDetail("max_delivery_time", "gt"))
	}

	ctx, span := serviceTracer.Start(ctx, "RestaurantService.Suggest", trace.WithAttributes(
		attribute.String("restaurant.food_type", foodType),
		attribute.Int("delivery.max_minutes", maxMinutes),
	))
	defer span.End()

	restaurants, err := s.repo.List(ctx, foodType)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	return matching.SuggestRestaurants(restaurants, location, maxMinutes), nil
}

func menuKey(restaurantID int64) string {
	return cache.Key("menu", restaurantID)
}
