package entity

import "github.com/uptrace/bun"

// User is a customer who places orders and receives notifications.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int64  `bun:"id,pk,autoincrement"`
	Name     string `bun:"name,notnull" validate:"required"`
	Location string `bun:"location,notnull" validate:"required"`
}
