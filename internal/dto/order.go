package dto

import (
	"math"
	"time"

	"github.com/Additional-Code/fooddelivery/internal/entity"
	ordersvc "github.com/Additional-Code/fooddelivery/internal/service/order"
)

// PlaceOrderRequest is the body of POST /place_order.
type PlaceOrderRequest struct {
	UserID       int64   `json:"user_id" validate:"gt=0"`
	RestaurantID int64   `json:"restaurant_id" validate:"gt=0"`
	ItemIDs      []int64 `json:"item_ids" validate:"required,min=1,dive,gt=0"`
}

// PlacementResponse reports a placed order and its rider assignment.
type PlacementResponse struct {
	OrderID               int64   `json:"order_id"`
	UserID                int64   `json:"user_id"`
	Restaurant            string  `json:"restaurant"`
	Items                 string  `json:"items"`
	TotalPrice            float64 `json:"total_price"`
	Status                string  `json:"status"`
	RiderStatus           string  `json:"rider_status"`
	RiderID               *int64  `json:"rider_id,omitempty"`
	EstimatedDeliveryTime *int    `json:"estimated_delivery_time,omitempty"`
	DistanceEstimate      *int    `json:"distance_estimate,omitempty"`
	Message               string  `json:"message"`
}

// ToPlacementResponse maps the orchestration result.
func ToPlacementResponse(p *ordersvc.Placement) PlacementResponse {
	message := "Order placed, waiting for an available rider"
	if p.RiderStatus == ordersvc.RiderAssigned {
		message = "Order placed and rider assigned"
	}
	return PlacementResponse{
		OrderID:               p.OrderID,
		UserID:                p.UserID,
		Restaurant:            p.RestaurantName,
		Items:                 p.Items,
		TotalPrice:            p.TotalPrice,
		Status:                string(p.Status),
		RiderStatus:           p.RiderStatus,
		RiderID:               p.RiderID,
		EstimatedDeliveryTime: p.EstimatedDeliveryTime,
		DistanceEstimate:      p.DistanceEstimate,
		Message:               message,
	}
}

// QuickItemRequest is a free-form line item.
type QuickItemRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price" validate:"gt=0"`
}

// QuickOrderRequest is the body of POST /api/orders.
type QuickOrderRequest struct {
	RestaurantID     int64              `json:"restaurant_id" validate:"gt=0"`
	Items            []QuickItemRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryLocation *string            `json:"delivery_location"`
}

// Input converts the request for the order service.
func (r QuickOrderRequest) Input() ordersvc.QuickOrderInput {
	items := make([]ordersvc.QuickItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, ordersvc.QuickItem{Name: item.Name, Price: item.Price})
	}
	return ordersvc.QuickOrderInput{
		RestaurantID:     r.RestaurantID,
		Items:            items,
		DeliveryLocation: r.DeliveryLocation,
	}
}

// QuickOrderRider names the rider put on a quick order.
type QuickOrderRider struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

// QuickOrderResponse reports a quick order.
type QuickOrderResponse struct {
	OrderID       int64            `json:"order_id"`
	Status        string           `json:"status"`
	TotalPrice    float64          `json:"total_price"`
	RiderID       *int64           `json:"rider_id,omitempty"`
	EstimatedTime *int             `json:"estimated_time,omitempty"`
	Rider         *QuickOrderRider `json:"rider,omitempty"`
}

// ToQuickOrderResponse maps a stored quick order.
func ToQuickOrderResponse(p *ordersvc.QuickPlacement) QuickOrderResponse {
	resp := QuickOrderResponse{
		OrderID:       p.ID,
		Status:        string(p.Status),
		TotalPrice:    Round2(p.TotalPrice),
		RiderID:       p.RiderID,
		EstimatedTime: p.EstimatedDeliveryTime,
	}
	if p.RiderID != nil && p.RiderName != nil {
		resp.Rider = &QuickOrderRider{Name: *p.RiderName, ID: *p.RiderID}
	}
	return resp
}

// OrderDetailResponse is an order joined with restaurant and rider names.
type OrderDetailResponse struct {
	OrderID               int64   `json:"order_id"`
	UserID                *int64  `json:"user_id"`
	RestaurantID          int64   `json:"restaurant_id"`
	RestaurantName        string  `json:"restaurant_name"`
	RiderID               *int64  `json:"rider_id"`
	RiderName             *string `json:"rider_name"`
	RiderLocation         *string `json:"rider_location"`
	Items                 string  `json:"items"`
	TotalPrice            float64 `json:"total_price"`
	Status                string  `json:"status"`
	OrderTime             string  `json:"order_time"`
	EstimatedDeliveryTime *int    `json:"estimated_delivery_time"`
	DeliveryLocation      *string `json:"delivery_location"`
}

// ToOrderDetailResponse maps a joined order row.
func ToOrderDetailResponse(d entity.OrderDetail) OrderDetailResponse {
	return OrderDetailResponse{
		OrderID:               d.ID,
		UserID:                d.UserID,
		RestaurantID:          d.RestaurantID,
		RestaurantName:        d.RestaurantName,
		RiderID:               d.RiderID,
		RiderName:             d.RiderName,
		RiderLocation:         d.RiderLocation,
		Items:                 d.Items,
		TotalPrice:            d.TotalPrice,
		Status:                string(d.Status),
		OrderTime:             FormatTime(d.OrderTime),
		EstimatedDeliveryTime: d.EstimatedDeliveryTime,
		DeliveryLocation:      d.DeliveryLocation,
	}
}

// ToOrderDetailResponses maps joined rows, never returning nil.
func ToOrderDetailResponses(in []entity.OrderDetail) []OrderDetailResponse {
	out := make([]OrderDetailResponse, 0, len(in))
	for _, d := range in {
		out = append(out, ToOrderDetailResponse(d))
	}
	return out
}

// UpdateOrderStatusRequest is the body of PUT /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AssignRiderRequest is the body of POST /api/orders/assign_rider.
type AssignRiderRequest struct {
	OrderID       int64 `json:"order_id" validate:"gt=0"`
	RiderID       int64 `json:"rider_id" validate:"gt=0"`
	EstimatedTime int   `json:"estimated_time" validate:"gt=0"`
}

// AssignRiderResponse acknowledges a manual assignment.
type AssignRiderResponse struct {
	Message       string `json:"message"`
	OrderID       int64  `json:"order_id"`
	RiderID       int64  `json:"rider_id"`
	EstimatedTime int    `json:"estimated_time"`
}

// FormattedOrder is the history view of an order.
type FormattedOrder struct {
	OrderID    int64   `json:"order_id"`
	Restaurant string  `json:"restaurant"`
	Items      string  `json:"items"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
	OrderedAt  string  `json:"ordered_at"`
}

// FormatOrders maps joined rows to the history view, never returning nil.
func FormatOrders(in []entity.OrderDetail) []FormattedOrder {
	out := make([]FormattedOrder, 0, len(in))
	for _, d := range in {
		out = append(out, FormattedOrder{
			OrderID:    d.ID,
			Restaurant: d.RestaurantName,
			Items:      d.Items,
			TotalPrice: Round2(d.TotalPrice),
			Status:     string(d.Status),
			OrderedAt:  FormatTime(d.OrderTime),
		})
	}
	return out
}

// UserOrdersResponse is the body of GET /user/:id/orders.
type UserOrdersResponse struct {
	UserID int64            `json:"user_id"`
	Orders []FormattedOrder `json:"orders"`
}

// RiderOrdersResponse is the body of GET /rider/:id/orders.
type RiderOrdersResponse struct {
	RiderID int64            `json:"rider_id"`
	Orders  []FormattedOrder `json:"orders"`
}

// Round2 rounds a price to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatTime renders timestamps as "YYYY-MM-DD HH:MM:SS" in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.DateTime)
}
