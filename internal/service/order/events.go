package order

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Additional-Code/fooddelivery/internal/entity"
	"github.com/Additional-Code/fooddelivery/internal/messaging"
)

// Event types published on the order topic.
const (
	EventOrderPlaced   = "order.placed"
	EventOrderAssigned = "order.assigned"
)

// OrderPlacedEvent is emitted once an order is persisted and matching ran.
type OrderPlacedEvent struct {
	OrderID      int64   `json:"order_id"`
	UserID       *int64  `json:"user_id,omitempty"`
	RestaurantID int64   `json:"restaurant_id"`
	TotalPrice   float64 `json:"total_price"`
	RiderStatus  string  `json:"rider_status"`
}

// OrderAssignedEvent is emitted whenever a rider is put on an order.
type OrderAssignedEvent struct {
	OrderID               int64  `json:"order_id"`
	UserID                *int64 `json:"user_id,omitempty"`
	RiderID               int64  `json:"rider_id"`
	EstimatedDeliveryTime int    `json:"estimated_delivery_time"`
}

func (s *Service) publishAssigned(ctx context.Context, order *entity.Order, riderID int64, estimate int) {
	s.publish(ctx, EventOrderAssigned, order.ID, OrderAssignedEvent{
		OrderID:               order.ID,
		UserID:                order.UserID,
		RiderID:               riderID,
		EstimatedDeliveryTime: estimate,
	})
}

// publish is best effort: the order is already stored, so a bus failure is
// logged rather than returned.
func (s *Service) publish(ctx context.Context, eventType string, orderID int64, payload any) {
	if s.publisher == nil {
		return
	}
	ev, err := messaging.NewEvent(eventType, payload)
	if err != nil {
		s.logger.Error("encode order event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := messaging.PublishEvent(ctx, s.publisher, fmt.Sprintf("order-%d", orderID), ev); err != nil {
		s.logger.Error("publish order event", zap.String("type", eventType), zap.Int64("order_id", orderID), zap.Error(err))
	}
}

func encodeItems(items []QuickItem) (string, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
