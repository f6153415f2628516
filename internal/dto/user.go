package dto

import "github.com/Additional-Code/fooddelivery/internal/entity"

// RegisterUserRequest is the body of POST /register_user.
type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location" validate:"required"`
}

// RegisterUserResponse acknowledges a new user.
type RegisterUserResponse struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

// UserResponse represents a user as exposed via transport layers.
type UserResponse struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// ToUserResponse maps a user entity.
func ToUserResponse(u entity.User) UserResponse {
	return UserResponse{UserID: u.ID, Name: u.Name, Location: u.Location}
}
