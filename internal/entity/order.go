package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderPlaced     OrderStatus = "placed"
	OrderAssigned   OrderStatus = "assigned"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
)

// OrderStatuses lists every accepted status in lifecycle order.
var OrderStatuses = []OrderStatus{OrderPending, OrderPlaced, OrderAssigned, OrderInProgress, OrderCompleted}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Order is a purchase from one restaurant, optionally assigned to a rider.
// UserID is nil for quick orders placed without a customer account.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID                    int64       `bun:"id,pk,autoincrement"`
	UserID                *int64      `bun:"user_id"`
	RestaurantID          int64       `bun:"restaurant_id,notnull" validate:"gt=0"`
	RiderID               *int64      `bun:"rider_id"`
	Items                 string      `bun:"items,notnull" validate:"required"`
	TotalPrice            float64     `bun:"total_price,notnull" validate:"gt=0"`
	Status                OrderStatus `bun:"status,notnull" validate:"required,oneof=pending placed assigned in_progress completed"`
	OrderTime             time.Time   `bun:"order_time,nullzero,notnull,default:current_timestamp"`
	EstimatedDeliveryTime *int        `bun:"estimated_delivery_time"`
	DeliveryLocation      *string     `bun:"delivery_location"`
}

// OrderDetail is an order joined with its restaurant and optional rider.
type OrderDetail struct {
	ID                    int64       `bun:"id"`
	UserID                *int64      `bun:"user_id"`
	RestaurantID          int64       `bun:"restaurant_id"`
	RiderID               *int64      `bun:"rider_id"`
	Items                 string      `bun:"items"`
	TotalPrice            float64     `bun:"total_price"`
	Status                OrderStatus `bun:"status"`
	OrderTime             time.Time   `bun:"order_time"`
	EstimatedDeliveryTime *int        `bun:"estimated_delivery_time"`
	DeliveryLocation      *string     `bun:"delivery_location"`
	RestaurantName        string      `bun:"restaurant_name"`
	RiderName             *string     `bun:"rider_name"`
	RiderLocation         *string     `bun:"rider_location"`
}
