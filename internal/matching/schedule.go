package matching

import (
	"time"

	"github.com/Additional-Code/fooddelivery/internal/entity"
)

const clockLayout = "15:04"

// MealPeriodAt buckets the wall-clock hour of t into a meal period.
func MealPeriodAt(t time.Time) entity.MealPeriod {
	switch h := t.Hour(); {
	case h >= 6 && h < 11:
		return entity.MealBreakfast
	case h >= 11 && h < 16:
		return entity.MealLunch
	default:
		return entity.MealDinner
	}
}

// IsOpen reports whether the restaurant is open at the wall-clock time of t.
// Both ends are inclusive. Hours that close before they open wrap past
// midnight. Unparseable hours count as closed.
func IsOpen(r *entity.Restaurant, t time.Time) bool {
	opening, err := time.Parse(clockLayout, r.OpeningTime)
	if err != nil {
		return false
	}
	closing, err := time.Parse(clockLayout, r.ClosingTime)
	if err != nil {
		return false
	}

	now := t.Hour()*60 + t.Minute()
	open := opening.Hour()*60 + opening.Minute()
	closeAt := closing.Hour()*60 + closing.Minute()

	if closeAt < open {
		return now >= open || now <= closeAt
	}
	return now >= open && now <= closeAt
}
