package seeder

import "github.com/Additional-Code/fooddelivery/internal/entity"

type menuEntry struct {
	name  string
	price float64
}

func restaurant(name, location, foodType string, prep int, opens, closes string, breakfast, lunch, dinner bool) entity.Restaurant {
	return entity.Restaurant{
		Name:            name,
		Location:        location,
		FoodType:        foodType,
		PrepTime:        prep,
		OpeningTime:     opens,
		ClosingTime:     closes,
		ServesBreakfast: breakfast,
		ServesLunch:     lunch,
		ServesDinner:    dinner,
	}
}

func sampleRestaurants() []entity.Restaurant {
	return []entity.Restaurant{
		restaurant("Pizza Palace", "123 Main St", "Italian", 20, "00:00", "23:00", false, true, true),
		restaurant("Sushi Wave", "456 Oak Ave", "Japanese", 15, "11:00", "22:00", false, true, true),
		restaurant("Breakfast Club", "789 Pine Rd", "American", 15, "06:00", "15:00", true, true, false),
		restaurant("24/7 Diner", "321 Elm St", "American", 15, "00:00", "23:59", true, true, true),
		restaurant("Lunch Box", "654 Maple Dr", "Mixed", 12, "10:00", "16:00", false, true, false),
		restaurant("Dinner Palace", "987 Cedar Ln", "Fine Dining", 30, "16:00", "23:00", false, false, true),
		restaurant("All Day Cafe", "147 Olive St", "Cafe", 10, "07:00", "20:00", true, true, true),
		restaurant("Evening Bistro", "258 Cherry Ave", "French", 25, "16:00", "23:00", false, false, true),
		restaurant("Morning Glory", "369 Bamboo Rd", "Breakfast", 15, "06:00", "14:00", true, true, false),
		restaurant("Late Night Eats", "741 Vine St", "Mixed", 20, "18:00", "03:00", false, false, true),
	}
}

// sampleMenus is indexed like sampleRestaurants.
var sampleMenus = [][]menuEntry{
	{{"Margherita Pizza", 12.99}, {"Pepperoni Pizza", 14.99}, {"Garlic Bread", 4.99}, {"Caesar Salad", 8.99}},
	{{"California Roll", 8.99}, {"Salmon Nigiri", 12.99}, {"Miso Soup", 3.99}, {"Tempura Udon", 14.99}},
	{{"Street Tacos", 9.99}, {"Burrito Supreme", 11.99}, {"Guacamole & Chips", 6.99}, {"Mexican Rice", 3.99}},
	{{"Kung Pao Chicken", 13.99}, {"Fried Rice", 10.99}, {"Spring Rolls", 5.99}, {"Mapo Tofu", 12.99}},
	{{"Classic Burger", 10.99}, {"Cheese Fries", 5.99}, {"Milkshake", 4.99}, {"Onion Rings", 4.99}},
	{{"Butter Chicken", 14.99}, {"Naan Bread", 2.99}, {"Vegetable Biryani", 12.99}, {"Samosas", 5.99}},
	{{"Hummus Plate", 7.99}, {"Falafel Wrap", 9.99}, {"Greek Salad", 8.99}, {"Shawarma Plate", 13.99}},
	{{"Bibimbap", 13.99}, {"Kimchi Jjigae", 11.99}, {"Korean BBQ", 15.99}, {"Japchae", 10.99}},
	{{"Pad Thai", 12.99}, {"Green Curry", 13.99}, {"Tom Yum Soup", 6.99}, {"Mango Sticky Rice", 5.99}},
	{{"Spaghetti Carbonara", 13.99}, {"Fettuccine Alfredo", 12.99}, {"Garlic Knots", 4.99}, {"Tiramisu", 6.99}},
}

func sampleRiders() []entity.Rider {
	return []entity.Rider{
		{Name: "John Rider", Location: "Downtown Area", IsAvailable: true},
		{Name: "Sarah Delivery", Location: "Uptown Area", IsAvailable: true},
		{Name: "Mike Speed", Location: "Westside", IsAvailable: true},
		{Name: "Lisa Quick", Location: "Eastside", IsAvailable: true},
		{Name: "Tom Swift", Location: "Central Area", IsAvailable: true},
	}
}

func sampleUsers() []entity.User {
	return []entity.User{
		{Name: "Alice Johnson", Location: "123 Park Ave"},
		{Name: "Bob Smith", Location: "456 Lake St"},
		{Name: "Carol Wilson", Location: "789 River Rd"},
		{Name: "David Brown", Location: "321 Hill Dr"},
		{Name: "Eva Davis", Location: "654 Forest Ln"},
		{Name: "Frank Miller", Location: "987 Beach Rd"},
		{Name: "Grace Taylor", Location: "147 Mountain Ave"},
		{Name: "Henry Clark", Location: "258 Valley St"},
		{Name: "Iris White", Location: "369 Ocean Dr"},
		{Name: "Jack Green", Location: "741 Desert Rd"},
	}
}

// sampleOrders are pending orders awaiting a rider, one each for the first
// three users.
func sampleOrders(users []entity.User, restaurants []entity.Restaurant) []entity.Order {
	lines := []struct {
		items string
		total float64
	}{
		{`[{"name":"Margherita Pizza","price":12.99}]`, 12.99},
		{`[{"name":"California Roll","price":8.99}]`, 8.99},
		{`[{"name":"Butter Chicken","price":14.99}]`, 14.99},
	}

	orders := make([]entity.Order, 0, len(lines))
	for i, line := range lines {
		userID := users[i].ID
		location := users[i].Location
		orders = append(orders, entity.Order{
			UserID:           &userID,
			RestaurantID:     restaurants[i].ID,
			Items:            line.items,
			TotalPrice:       line.total,
			Status:           entity.OrderPending,
			DeliveryLocation: &location,
		})
	}
	return orders
}
