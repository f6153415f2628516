// Package matching holds the rider matching and delivery estimation
// heuristics. Distances are derived from the digits embedded in free-text
// locations and carry no geographic meaning.
package matching

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/config"
	"github.com/Additional-Code/fooddelivery/internal/entity"
	riderrepo "github.com/Additional-Code/fooddelivery/internal/repository/rider"
)

var tracer = otel.Tracer("github.com/Additional-Code/fooddelivery/matching")

// Module provides the matcher to Fx.
var Module = fx.Provide(New)

// Matcher picks riders for orders.
type Matcher struct {
	riders          *riderrepo.Repository
	maxActiveOrders int
	flatTravel      int
	logger          *zap.Logger
}

// New builds a Matcher from the matching configuration.
func New(cfg config.Config, riders *riderrepo.Repository, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		riders:          riders,
		maxActiveOrders: cfg.Matching.MaxActiveOrders,
		flatTravel:      cfg.Matching.FlatTravelMinutes,
		logger:          logger,
	}
}

// MaxActiveOrders is the in_progress load at which a rider stops receiving orders.
func (m *Matcher) MaxActiveOrders() int {
	return m.maxActiveOrders
}

// FlatDeliveryEstimate applies the configured flat travel allowance.
func (m *Matcher) FlatDeliveryEstimate(prepTime int) int {
	return FlatDeliveryEstimate(prepTime, m.flatTravel)
}

// FindNearestRider returns the eligible rider closest to the restaurant, or
// nil when nobody has capacity. Equal distances go to the lowest rider id.
func (m *Matcher) FindNearestRider(ctx context.Context, restaurantLocation string) (*entity.RiderLoad, error) {
	ctx, span := tracer.Start(ctx, "Matcher.FindNearestRider")
	defer span.End()

	candidates, err := m.riders.ListAvailableWithCapacity(ctx, m.maxActiveOrders)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "candidate lookup failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("rider.candidates", len(candidates)))

	nearest := Nearest(candidates, restaurantLocation)
	if nearest == nil {
		m.logger.Debug("no rider with capacity", zap.String("restaurant_location", restaurantLocation))
		return nil, nil
	}
	span.SetAttributes(attribute.Int64("rider.id", nearest.ID))
	return nearest, nil
}

// Nearest ranks candidates by pseudo-distance to location and returns the
// first, or nil for an empty pool.
func Nearest(candidates []entity.RiderLoad, location string) *entity.RiderLoad {
	if len(candidates) == 0 {
		return nil
	}
	ranked := make([]entity.RiderLoad, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		di, dj := Distance(ranked[i].Location, location), Distance(ranked[j].Location, location)
		if di != dj {
			return di < dj
		}
		return ranked[i].ID < ranked[j].ID
	})
	return &ranked[0]
}

// Suggestion is a restaurant with its estimated delivery time for a user.
type Suggestion struct {
	Restaurant       entity.Restaurant
	EstimatedMinutes int
}

// SuggestRestaurants estimates prep plus travel for each restaurant, keeps
// those deliverable within maxMinutes, and orders them fastest first. Equal
// estimates keep ascending id order.
func SuggestRestaurants(restaurants []entity.Restaurant, userLocation string, maxMinutes int) []Suggestion {
	suggestions := make([]Suggestion, 0, len(restaurants))
	for _, r := range restaurants {
		estimate := r.PrepTime + SuggestionTravelMinutes(r.Location, userLocation)
		if estimate > maxMinutes {
			continue
		}
		suggestions = append(suggestions, Suggestion{Restaurant: r, EstimatedMinutes: estimate})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].EstimatedMinutes != suggestions[j].EstimatedMinutes {
			return suggestions[i].EstimatedMinutes < suggestions[j].EstimatedMinutes
		}
		return suggestions[i].Restaurant.ID < suggestions[j].Restaurant.ID
	})
	return suggestions
}
