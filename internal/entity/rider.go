package entity

import "github.com/uptrace/bun"

// Rider delivers orders. Availability is toggled explicitly and is never
// cleared by an assignment.
type Rider struct {
	bun.BaseModel `bun:"table:riders,alias:rd"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Name        string `bun:"name,notnull" validate:"required"`
	Location    string `bun:"location,notnull" validate:"required"`
	IsAvailable bool   `bun:"is_available,notnull"`
}

// RiderLoad is a rider together with its count of in_progress orders.
type RiderLoad struct {
	ID           int64  `bun:"id"`
	Name         string `bun:"name"`
	Location     string `bun:"location"`
	IsAvailable  bool   `bun:"is_available"`
	ActiveOrders int    `bun:"active_orders"`
}
