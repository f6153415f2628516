package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Notification is a message logged for a user, optionally about an order.
type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:n"`

	ID        int64     `bun:"id,pk,autoincrement"`
	UserID    int64     `bun:"user_id,notnull"`
	OrderID   *int64    `bun:"order_id"`
	Message   string    `bun:"message,notnull" validate:"required"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
