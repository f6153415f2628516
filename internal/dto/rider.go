package dto

import "github.com/Additional-Code/fooddelivery/internal/entity"

// RegisterRiderRequest is the body of POST /register_rider.
type RegisterRiderRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location" validate:"required"`
}

// RegisterRiderResponse acknowledges a new rider.
type RegisterRiderResponse struct {
	RiderID int64  `json:"rider_id"`
	Message string `json:"message"`
}

// UpdateRiderLocationRequest is the body of PUT /update_rider_location.
type UpdateRiderLocationRequest struct {
	RiderID  int64  `json:"rider_id" validate:"gt=0"`
	Location string `json:"location" validate:"required"`
}

// UpdateRiderAvailabilityRequest is the body of PUT /update_rider_availability.
type UpdateRiderAvailabilityRequest struct {
	RiderID     int64 `json:"rider_id" validate:"gt=0"`
	IsAvailable *bool `json:"is_available" validate:"required"`
}

// RiderResponse represents a rider, with its active load when known.
type RiderResponse struct {
	RiderID      int64  `json:"rider_id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	IsAvailable  bool   `json:"is_available"`
	ActiveOrders *int   `json:"active_orders,omitempty"`
}

// ToRiderResponse maps a rider entity.
func ToRiderResponse(r entity.Rider) RiderResponse {
	return RiderResponse{RiderID: r.ID, Name: r.Name, Location: r.Location, IsAvailable: r.IsAvailable}
}

// ToRiderLoadResponse maps a rider together with its in-progress count.
func ToRiderLoadResponse(r entity.RiderLoad) RiderResponse {
	active := r.ActiveOrders
	return RiderResponse{
		RiderID:      r.ID,
		Name:         r.Name,
		Location:     r.Location,
		IsAvailable:  r.IsAvailable,
		ActiveOrders: &active,
	}
}
