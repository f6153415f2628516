package dto

import (
	"github.com/Additional-Code/fooddelivery/internal/entity"
	"github.com/Additional-Code/fooddelivery/internal/matching"
)

// MenuItemInput is one item of an initial menu.
type MenuItemInput struct {
	ItemName string  `json:"item_name" validate:"required"`
	Price    float64 `json:"price" validate:"gt=0"`
}

// RegisterRestaurantRequest is the body of POST /register_restaurant.
// Omitted optional fields take the entity defaults.
type RegisterRestaurantRequest struct {
	Name            string          `json:"name" validate:"required"`
	Location        string          `json:"location" validate:"required"`
	FoodType        string          `json:"food_type" validate:"required"`
	PrepTime        *int            `json:"prep_time" validate:"omitempty,gt=0"`
	OpeningTime     string          `json:"opening_time" validate:"omitempty,datetime=15:04"`
	ClosingTime     string          `json:"closing_time" validate:"omitempty,datetime=15:04"`
	ServesBreakfast *bool           `json:"serves_breakfast"`
	ServesLunch     *bool           `json:"serves_lunch"`
	ServesDinner    *bool           `json:"serves_dinner"`
	MenuItems       []MenuItemInput `json:"menu_items" validate:"omitempty,dive"`
}

// Entity converts the request into a restaurant and its initial menu.
func (r RegisterRestaurantRequest) Entity() (*entity.Restaurant, []entity.MenuItem) {
	restaurant := &entity.Restaurant{
		Name:            r.Name,
		Location:        r.Location,
		FoodType:        r.FoodType,
		PrepTime:        entity.DefaultPrepTime,
		OpeningTime:     r.OpeningTime,
		ClosingTime:     r.ClosingTime,
		ServesBreakfast: boolOr(r.ServesBreakfast, true),
		ServesLunch:     boolOr(r.ServesLunch, true),
		ServesDinner:    boolOr(r.ServesDinner, true),
	}
	if r.PrepTime != nil {
		restaurant.PrepTime = *r.PrepTime
	}

	items := make([]entity.MenuItem, 0, len(r.MenuItems))
	for _, in := range r.MenuItems {
		items = append(items, entity.MenuItem{ItemName: in.ItemName, Price: in.Price})
	}
	return restaurant, items
}

// RegisterRestaurantResponse acknowledges a new restaurant.
type RegisterRestaurantResponse struct {
	RestaurantID int64  `json:"restaurant_id"`
	Message      string `json:"message"`
}

// AddMenuItemRequest is the body of POST /add_menu_item.
type AddMenuItemRequest struct {
	RestaurantID int64   `json:"restaurant_id" validate:"gt=0"`
	ItemName     string  `json:"item_name" validate:"required"`
	Price        float64 `json:"price" validate:"gt=0"`
}

// MenuItemResponse is a single menu entry.
type MenuItemResponse struct {
	MenuID   int64   `json:"menu_id"`
	ItemName string  `json:"item_name"`
	Price    float64 `json:"price"`
}

// MenuResponse is the body of GET /menu/:restaurant_id.
type MenuResponse struct {
	RestaurantID   int64              `json:"restaurant_id"`
	RestaurantName string             `json:"restaurant_name"`
	Menu           []MenuItemResponse `json:"menu"`
}

// ToMenuItems maps menu entities, never returning nil.
func ToMenuItems(items []entity.MenuItem) []MenuItemResponse {
	out := make([]MenuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, MenuItemResponse{MenuID: item.ID, ItemName: item.ItemName, Price: item.Price})
	}
	return out
}

// RestaurantResponse represents a restaurant.
type RestaurantResponse struct {
	RestaurantID    int64  `json:"restaurant_id"`
	Name            string `json:"name"`
	Location        string `json:"location"`
	FoodType        string `json:"food_type"`
	PrepTime        int    `json:"prep_time"`
	OpeningTime     string `json:"opening_time"`
	ClosingTime     string `json:"closing_time"`
	ServesBreakfast bool   `json:"serves_breakfast"`
	ServesLunch     bool   `json:"serves_lunch"`
	ServesDinner    bool   `json:"serves_dinner"`
}

// ToRestaurantResponse maps a restaurant entity.
func ToRestaurantResponse(r entity.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		RestaurantID:    r.ID,
		Name:            r.Name,
		Location:        r.Location,
		FoodType:        r.FoodType,
		PrepTime:        r.PrepTime,
		OpeningTime:     r.OpeningTime,
		ClosingTime:     r.ClosingTime,
		ServesBreakfast: r.ServesBreakfast,
		ServesLunch:     r.ServesLunch,
		ServesDinner:    r.ServesDinner,
	}
}

// SearchResult is a restaurant serving the current meal period.
type SearchResult struct {
	RestaurantResponse
	IsOpen     bool              `json:"is_open"`
	MealPeriod entity.MealPeriod `json:"meal_period"`
}

// SuggestionResponse is a restaurant that can deliver within the limit.
type SuggestionResponse struct {
	RestaurantResponse
	EstimatedDeliveryTime int `json:"estimated_delivery_time"`
}

// ToSuggestions maps matcher suggestions, never returning nil.
func ToSuggestions(in []matching.Suggestion) []SuggestionResponse {
	out := make([]SuggestionResponse, 0, len(in))
	for _, s := range in {
		out = append(out, SuggestionResponse{
			RestaurantResponse:    ToRestaurantResponse(s.Restaurant),
			EstimatedDeliveryTime: s.EstimatedMinutes,
		})
	}
	return out
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
