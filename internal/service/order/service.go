package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/cache"
	"github.com/Additional-Code/fooddelivery/internal/config"
	"github.com/Additional-Code/fooddelivery/internal/entity"
	"github.com/Additional-Code/fooddelivery/internal/matching"
	"github.com/Additional-Code/fooddelivery/internal/messaging"
	"github.com/Additional-Code/fooddelivery/internal/observability"
	repo "github.com/Additional-Code/fooddelivery/internal/repository/order"
	restaurantrepo "github.com/Additional-Code/fooddelivery/internal/repository/restaurant"
	riderrepo "github.com/Additional-Code/fooddelivery/internal/repository/rider"
	userrepo "github.com/Additional-Code/fooddelivery/internal/repository/user"
	"github.com/Additional-Code/fooddelivery/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/fooddelivery/service/order")

// Rider status reported for a placement.
const (
	RiderAssigned = "Assigned"
	RiderPending  = "Pending"
)

// Service orchestrates order placement, rider assignment and order queries.
type Service struct {
	orders      *repo.Repository
	users       *userrepo.Repository
	restaurants *restaurantrepo.Repository
	riders      *riderrepo.Repository
	matcher     *matching.Matcher
	cache       cache.Store
	cacheTTL    time.Duration
	publisher   messaging.Client
	metrics     *observability.OrderMetrics
	logger      *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Orders      *repo.Repository
	Users       *userrepo.Repository
	Restaurants *restaurantrepo.Repository
	Riders      *riderrepo.Repository
	Matcher     *matching.Matcher
	Cache       cache.Store
	Config      config.Config
	Publisher   messaging.Client
	Metrics     *observability.OrderMetrics `optional:"true"`
	Logger      *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		orders:      p.Orders,
		users:       p.Users,
		restaurants: p.Restaurants,
		riders:      p.Riders,
		matcher:     p.Matcher,
		cache:       p.Cache,
		cacheTTL:    p.Config.Cache.DefaultTTL,
		publisher:   p.Publisher,
		metrics:     p.Metrics,
		logger:      p.Logger,
	}
}

// PlaceOrderInput is a customer's order for items on one restaurant's menu.
type PlaceOrderInput struct {
	UserID       int64
	RestaurantID int64
	ItemIDs      []int64
}

// Placement is the outcome of placing an order.
type Placement struct {
	OrderID               int64
	UserID                int64
	RestaurantName        string
	Items                 string
	TotalPrice            float64
	Status                entity.OrderStatus
	RiderStatus           string
	RiderID               *int64
	EstimatedDeliveryTime *int
	DistanceEstimate      *int
}

// assignment is a rider successfully put on an order.
type assignment struct {
	rider            entity.RiderLoad
	estimate         int
	distanceEstimate int
}

// PlaceOrder validates the request, persists the order as placed and then
// tries to hand it to the nearest rider with capacity. Failing to find or
// secure a rider is not an error: the order stays placed and the result
// reports Pending.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*Placement, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.PlaceOrder", trace.WithAttributes(
		attribute.Int64("user.id", in.UserID),
		attribute.Int64("restaurant.id", in.RestaurantID),
	))
	defer span.End()

	itemIDs := distinct(in.ItemIDs)
	if len(itemIDs) == 0 {
		return nil, errorbank.InvalidInput("item_ids must not be empty", errorbank.WithDetail("item_ids", "required"))
	}

	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if user == nil {
		return nil, errorbank.NotFound("user not found")
	}

	restaurant, err := s.restaurants.GetByID(ctx, in.RestaurantID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if restaurant == nil {
		return nil, errorbank.NotFound("restaurant not found")
	}

	items, err := s.restaurants.MenuItems(ctx, restaurant.ID, itemIDs)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if len(items) != len(itemIDs) {
		return nil, errorbank.InvalidInput("some items are not on this restaurant's menu",
			errorbank.WithDetail("item_ids", missingIDs(itemIDs, items)))
	}

	names := make([]string, len(items))
	var total float64
	for i, item := range items {
		names[i] = item.ItemName
		total += item.Price
	}

	userID := user.ID
	order := &entity.Order{
		UserID:       &userID,
		RestaurantID: restaurant.ID,
		Items:        strings.Join(names, ", "),
		TotalPrice:   roundCents(total),
		Status:       entity.OrderPlaced,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, s.fail(span, err)
	}
	s.metrics.OrderPlaced(ctx, "place")
	span.SetAttributes(attribute.Int64("order.id", order.ID))

	placement := &Placement{
		OrderID:        order.ID,
		UserID:         user.ID,
		RestaurantName: restaurant.Name,
		Items:          order.Items,
		TotalPrice:     order.TotalPrice,
		Status:         order.Status,
		RiderStatus:    RiderPending,
	}

	assigned := s.assign(ctx, order, restaurant)
	if assigned != nil {
		riderID := assigned.rider.ID
		placement.Status = entity.OrderAssigned
		placement.RiderStatus = RiderAssigned
		placement.RiderID = &riderID
		placement.EstimatedDeliveryTime = &assigned.estimate
		placement.DistanceEstimate = &assigned.distanceEstimate
	}

	s.logger.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", user.ID),
		zap.String("rider_status", placement.RiderStatus),
	)
	s.publish(ctx, EventOrderPlaced, order.ID, OrderPlacedEvent{
		OrderID:      order.ID,
		UserID:       order.UserID,
		RestaurantID: restaurant.ID,
		TotalPrice:   order.TotalPrice,
		RiderStatus:  placement.RiderStatus,
	})
	if assigned != nil {
		s.publishAssigned(ctx, order, assigned.rider.ID, assigned.estimate)
	}
	return placement, nil
}

// QuickItem is a free-form line item of a quick order.
type QuickItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// QuickOrderInput is an order placed without a customer account.
type QuickOrderInput struct {
	RestaurantID     int64
	Items            []QuickItem
	DeliveryLocation *string
}

// QuickPlacement is a stored quick order and, when one was found, the name
// of the rider put on it.
type QuickPlacement struct {
	*entity.Order
	RiderName *string
}

// QuickOrder stores free-form items against a restaurant and assigns the
// nearest rider when one has capacity. The order is assigned or stays pending.
func (s *Service) QuickOrder(ctx context.Context, in QuickOrderInput) (*QuickPlacement, error) {
	if len(in.Items) == 0 {
		return nil, errorbank.InvalidInput("items must not be empty", errorbank.WithDetail("items", "required"))
	}
	var total float64
	for i, item := range in.Items {
		if item.Price <= 0 {
			return nil, errorbank.InvalidInput("item price must be greater than 0",
				errorbank.WithDetail(fmt.Sprintf("items[%d].price", i), "gt"))
		}
		total += item.Price
	}

	ctx, span := serviceTracer.Start(ctx, "OrderService.QuickOrder", trace.WithAttributes(attribute.Int64("restaurant.id", in.RestaurantID)))
	defer span.End()

	restaurant, err := s.restaurants.GetByID(ctx, in.RestaurantID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if restaurant == nil {
		return nil, errorbank.NotFound("restaurant not found")
	}

	items, err := encodeItems(in.Items)
	if err != nil {
		return nil, errorbank.Internal("failed to encode items", errorbank.WithCause(err))
	}
	order := &entity.Order{
		RestaurantID:     restaurant.ID,
		Items:            items,
		TotalPrice:       roundCents(total),
		Status:           entity.OrderPending,
		DeliveryLocation: in.DeliveryLocation,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, s.fail(span, err)
	}
	s.metrics.OrderPlaced(ctx, "quick")

	placement := &QuickPlacement{Order: order}
	if assigned := s.assign(ctx, order, restaurant); assigned != nil {
		riderID := assigned.rider.ID
		riderName := assigned.rider.Name
		order.RiderID = &riderID
		order.Status = entity.OrderAssigned
		order.EstimatedDeliveryTime = &assigned.estimate
		placement.RiderName = &riderName
		s.publishAssigned(ctx, order, riderID, assigned.estimate)
	}

	s.logger.Info("quick order created", zap.Int64("order_id", order.ID), zap.String("status", string(order.Status)))
	return placement, nil
}

// RetryAssignment re-runs matching for an order still awaiting a rider. It
// reports whether a rider was assigned; orders that already left the
// pending/placed states are skipped.
func (s *Service) RetryAssignment(ctx context.Context, orderID int64) (bool, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.RetryAssignment", trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return false, s.fail(span, err)
	}
	if order == nil {
		return false, errorbank.NotFound("order not found")
	}
	if order.Status != entity.OrderPlaced && order.Status != entity.OrderPending {
		return false, nil
	}

	restaurant, err := s.restaurants.GetByID(ctx, order.RestaurantID)
	if err != nil {
		return false, s.fail(span, err)
	}
	if restaurant == nil {
		return false, errorbank.NotFound("restaurant not found")
	}

	assigned := s.assign(ctx, order, restaurant)
	if assigned == nil {
		return false, nil
	}
	s.publishAssigned(ctx, order, assigned.rider.ID, assigned.estimate)
	return true, nil
}

// ListAwaitingRider returns placed orders that have no rider yet, oldest first.
func (s *Service) ListAwaitingRider(ctx context.Context, limit int) ([]entity.Order, error) {
	orders, err := s.orders.ListByStatus(ctx, entity.OrderPlaced, limit)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	return orders, nil
}

// assign finds the nearest rider with capacity and secures them with a
// conditional update. Matching failures are logged and leave the order as is.
func (s *Service) assign(ctx context.Context, order *entity.Order, restaurant *entity.Restaurant) *assignment {
	rider, err := s.matcher.FindNearestRider(ctx, restaurant.Location)
	if err != nil {
		s.logger.Warn("rider lookup failed", zap.Int64("order_id", order.ID), zap.Error(err))
		s.metrics.AssignmentAttempted(ctx, observability.OutcomePending)
		return nil
	}
	if rider == nil {
		s.metrics.AssignmentAttempted(ctx, observability.OutcomePending)
		return nil
	}

	estimate := s.matcher.FlatDeliveryEstimate(restaurant.PrepTime)
	ok, err := s.orders.AssignIfCapacity(ctx, order.ID, rider.ID, estimate, s.matcher.MaxActiveOrders())
	if err != nil || !ok {
		if err != nil {
			s.logger.Warn("rider assignment failed", zap.Int64("order_id", order.ID), zap.Int64("rider_id", rider.ID), zap.Error(err))
		}
		s.metrics.AssignmentAttempted(ctx, observability.OutcomePending)
		return nil
	}

	s.metrics.AssignmentAttempted(ctx, observability.OutcomeAssigned)
	s.invalidate(ctx, order.ID)
	return &assignment{
		rider:            *rider,
		estimate:         estimate,
		distanceEstimate: matching.DistanceBasedDeliveryEstimate(restaurant.Location, rider.Location, restaurant.PrepTime),
	}
}

// Get returns an order joined with restaurant and rider names. Only the
// order row is cached; the names are read fresh so rider edits show up
// immediately.
func (s *Service) Get(ctx context.Context, id int64) (*entity.OrderDetail, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := s.cachedOrder(ctx, id)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if order == nil {
		return nil, errorbank.NotFound("order not found")
	}

	detail := &entity.OrderDetail{
		ID:                    order.ID,
		UserID:                order.UserID,
		RestaurantID:          order.RestaurantID,
		RiderID:               order.RiderID,
		Items:                 order.Items,
		TotalPrice:            order.TotalPrice,
		Status:                order.Status,
		OrderTime:             order.OrderTime,
		EstimatedDeliveryTime: order.EstimatedDeliveryTime,
		DeliveryLocation:      order.DeliveryLocation,
	}

	restaurant, err := s.restaurants.GetByID(ctx, order.RestaurantID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if restaurant != nil {
		detail.RestaurantName = restaurant.Name
	}

	if order.RiderID != nil {
		rider, err := s.riders.GetByID(ctx, *order.RiderID)
		if err != nil {
			return nil, s.fail(span, err)
		}
		if rider != nil {
			detail.RiderName = &rider.Name
			detail.RiderLocation = &rider.Location
		}
	}
	return detail, nil
}

// cachedOrder reads an order row through the cache.
func (s *Service) cachedOrder(ctx context.Context, id int64) (*entity.Order, error) {
	var cached entity.Order
	err := cache.GetJSON(ctx, s.cache, orderKey(id), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("orders cache read failed", zap.Int64("order_id", id), zap.Error(err))
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil || order == nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, s.cache, orderKey(id), order, s.cacheTTL); err != nil {
		s.logger.Warn("orders cache write failed", zap.Int64("order_id", id), zap.Error(err))
	}
	return order, nil
}

// UpdateStatus moves an order to status.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) error {
	ctx, span := serviceTracer.Start(ctx, "OrderService.UpdateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status", string(status)),
	))
	defer span.End()

	updated, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return s.fail(span, err)
	}
	if !updated {
		return errorbank.NotFound("order not found")
	}
	s.invalidate(ctx, id)
	return nil
}

// MarkCompleted moves an order to completed.
func (s *Service) MarkCompleted(ctx context.Context, id int64) error {
	return s.UpdateStatus(ctx, id, entity.OrderCompleted)
}

// AssignRider puts a specific rider on an order by hand. Availability is not
// consulted, but a rider already at capacity is refused.
func (s *Service) AssignRider(ctx context.Context, orderID, riderID int64, estimate int) error {
	if estimate <= 0 {
		return errorbank.InvalidInput("estimated_time must be greater than 0", errorbank.WithDetail("estimated_time", "gt"))
	}

	ctx, span := serviceTracer.Start(ctx, "OrderService.AssignRider", trace.WithAttributes(
		attribute.Int64("order.id", orderID),
		attribute.Int64("rider.id", riderID),
	))
	defer span.End()

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return s.fail(span, err)
	}
	if order == nil {
		return errorbank.NotFound("order not found")
	}
	rider, err := s.riders.GetByID(ctx, riderID)
	if err != nil {
		return s.fail(span, err)
	}
	if rider == nil {
		return errorbank.NotFound("rider not found")
	}

	active, err := s.riders.ActiveOrderCount(ctx, riderID)
	if err != nil {
		return s.fail(span, err)
	}
	if active >= s.matcher.MaxActiveOrders() {
		return errorbank.Conflict("rider is at capacity",
			errorbank.WithDetail("active_orders", active),
			errorbank.WithDetail("max_active_orders", s.matcher.MaxActiveOrders()))
	}

	updated, err := s.orders.AssignRider(ctx, orderID, riderID, &estimate)
	if err != nil {
		return s.fail(span, err)
	}
	if !updated {
		return errorbank.NotFound("order not found")
	}
	s.invalidate(ctx, orderID)
	s.publishAssigned(ctx, order, riderID, estimate)
	return nil
}

// UserOrders returns a user's orders, newest first. Unknown users simply
// have no orders.
func (s *Service) UserOrders(ctx context.Context, userID int64) ([]entity.OrderDetail, error) {
	details, err := s.orders.ListDetailedByUser(ctx, userID)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	return details, nil
}

// UserHistory is UserOrders for a user that must exist.
func (s *Service) UserHistory(ctx context.Context, userID int64) ([]entity.OrderDetail, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	if user == nil {
		return nil, errorbank.NotFound("user not found")
	}
	return s.UserOrders(ctx, userID)
}

// RiderOrders returns the orders assigned to a rider that must exist.
func (s *Service) RiderOrders(ctx context.Context, riderID int64) ([]entity.OrderDetail, error) {
	rider, err := s.riders.GetByID(ctx, riderID)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	if rider == nil {
		return nil, errorbank.NotFound("rider not found")
	}
	details, err := s.orders.ListDetailedByRider(ctx, riderID)
	if err != nil {
		return nil, errorbank.FromStorage(err)
	}
	return details, nil
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "order operation failed")
	return errorbank.FromStorage(err)
}

func (s *Service) invalidate(ctx context.Context, orderID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, orderKey(orderID)); err != nil {
		s.logger.Warn("orders cache invalidation failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
}

func orderKey(id int64) string {
	return cache.Key("order", id)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingIDs(requested []int64, found []entity.MenuItem) []int64 {
	have := make(map[int64]struct{}, len(found))
	for _, item := range found {
		have[item.ID] = struct{}{}
	}
	missing := make([]int64, 0)
	for _, id := range requested {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
