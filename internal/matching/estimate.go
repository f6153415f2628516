package matching

import "strings"

// DefaultFlatTravelMinutes is the travel allowance used by the flat estimator.
const DefaultFlatTravelMinutes = 15

// Bounds applied to the distance-based travel time.
const (
	minDistanceTravel = 5
	maxDistanceTravel = 30
)

// Suggestion travel assumptions: five blocks at two minutes each, or no
// travel at all when the user is at the restaurant.
const (
	suggestionBlocks       = 5
	suggestionBlockMinutes = 2
)

// FlatDeliveryEstimate adds a fixed travel allowance to the preparation time.
func FlatDeliveryEstimate(prepTime, travelMinutes int) int {
	return prepTime + travelMinutes
}

// DistanceBasedDeliveryEstimate adds a travel time derived from the
// pseudo-distance, clamped to [5, 30] minutes.
func DistanceBasedDeliveryEstimate(restaurantLocation, riderLocation string, prepTime int) int {
	travel := Distance(restaurantLocation, riderLocation) / 100
	switch {
	case travel < minDistanceTravel:
		travel = minDistanceTravel
	case travel > maxDistanceTravel:
		travel = maxDistanceTravel
	}
	return prepTime + int(travel)
}

// SuggestionTravelMinutes is the travel time used when ranking restaurants
// for a user. Surrounding whitespace is ignored on both sides.
func SuggestionTravelMinutes(restaurantLocation, userLocation string) int {
	if strings.TrimSpace(restaurantLocation) == strings.TrimSpace(userLocation) {
		return 0
	}
	return suggestionBlocks * suggestionBlockMinutes
}
