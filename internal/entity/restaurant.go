package entity

import "github.com/uptrace/bun"

// Defaults applied to restaurants registered without explicit values.
const (
	DefaultPrepTime    = 10
	DefaultFoodType    = "Mixed"
	DefaultOpeningTime = "09:00"
	DefaultClosingTime = "22:00"
)

// Restaurant serves menu items during its opening hours.
type Restaurant struct {
	bun.BaseModel `bun:"table:restaurants,alias:r"`

	ID              int64  `bun:"id,pk,autoincrement"`
	Name            string `bun:"name,notnull" validate:"required"`
	Location        string `bun:"location,notnull" validate:"required"`
	FoodType        string `bun:"food_type,notnull" validate:"required"`
	PrepTime        int    `bun:"prep_time,notnull" validate:"gt=0"`
	OpeningTime     string `bun:"opening_time,notnull" validate:"required,datetime=15:04"`
	ClosingTime     string `bun:"closing_time,notnull" validate:"required,datetime=15:04"`
	ServesBreakfast bool   `bun:"serves_breakfast,notnull"`
	ServesLunch     bool   `bun:"serves_lunch,notnull"`
	ServesDinner    bool   `bun:"serves_dinner,notnull"`
}

// Serves reports whether the restaurant serves the given meal period.
func (r *Restaurant) Serves(period MealPeriod) bool {
	switch period {
	case MealBreakfast:
		return r.ServesBreakfast
	case MealLunch:
		return r.ServesLunch
	case MealDinner:
		return r.ServesDinner
	default:
		return false
	}
}

// MealPeriod is the time-of-day bucket used by restaurant search.
type MealPeriod string

const (
	MealBreakfast MealPeriod = "breakfast"
	MealLunch     MealPeriod = "lunch"
	MealDinner    MealPeriod = "dinner"
)

// MenuItem belongs to exactly one restaurant.
type MenuItem struct {
	bun.BaseModel `bun:"table:menus,alias:m"`

	ID           int64   `bun:"id,pk,autoincrement"`
	RestaurantID int64   `bun:"restaurant_id,notnull" validate:"gt=0"`
	ItemName     string  `bun:"item_name,notnull" validate:"required"`
	Price        float64 `bun:"price,notnull" validate:"gt=0"`
}
