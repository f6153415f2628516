package dto

import (
	"time"

	"github.com/Additional-Code/fooddelivery/internal/entity"
)

// NotifyUserRequest is the body of POST /notify_user.
type NotifyUserRequest struct {
	UserID  int64  `json:"user_id"`
	OrderID *int64 `json:"order_id"`
	Message string `json:"message" validate:"required"`
}

// NotifyUserResponse acknowledges a logged notification.
type NotifyUserResponse struct {
	NotificationID int64  `json:"notification_id"`
	Message        string `json:"message"`
}

// ListNotificationsRequest is the body of POST /list_user_notifications.
type ListNotificationsRequest struct {
	UserID int64 `json:"user_id"`
}

// NotificationResponse is a single notification.
type NotificationResponse struct {
	NotificationID int64  `json:"notification_id"`
	OrderID        *int64 `json:"order_id"`
	Message        string `json:"message"`
	CreatedAt      string `json:"created_at"`
}

// NotificationsResponse lists a user's notifications, newest first.
type NotificationsResponse struct {
	UserID        int64                  `json:"user_id"`
	Notifications []NotificationResponse `json:"notifications"`
	Message       string                 `json:"message"`
}

// ToNotifications maps notification entities, never returning nil.
func ToNotifications(in []entity.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(in))
	for _, n := range in {
		out = append(out, NotificationResponse{
			NotificationID: n.ID,
			OrderID:        n.OrderID,
			Message:        n.Message,
			CreatedAt:      n.CreatedAt.UTC().Format(time.DateTime),
		})
	}
	return out
}
