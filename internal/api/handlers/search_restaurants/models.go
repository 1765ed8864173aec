package search_restaurants

import (
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/restaurants/models"
	searchRestaurants "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/search_restaurants"
)

// SearchResponse HTTP response model
type SearchResponse struct {
	Count       int                `json:"count"`
	Restaurants []RestaurantResult `json:"restaurants"`
}

// RestaurantResult ресторан со свободным временем
type RestaurantResult struct {
	RestaurantID   int64                  `json:"restaurantId"`
	Name           string                 `json:"name"`
	Cuisine        string                 `json:"cuisine,omitempty"`
	Address        models.AddressResponse `json:"address"`
	Rating         float64                `json:"rating"`
	AvailableSlots []AvailableSlot        `json:"availableSlots"`
}

// AvailableSlot время начала и столик, который будет предложен
type AvailableSlot struct {
	Time    string `json:"time"`
	TableID int64  `json:"tableId"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchRestaurants.Response) *SearchResponse {
	result := &SearchResponse{
		Count:       len(resp.Restaurants),
		Restaurants: make([]RestaurantResult, 0, len(resp.Restaurants)),
	}

	for _, item := range resp.Restaurants {
		slots := make([]AvailableSlot, len(item.Slots))
		for i, slot := range item.Slots {
			slots[i] = AvailableSlot{
				Time:    slot.StartTime.String(),
				TableID: slot.TableID,
			}
		}

		result.Restaurants = append(result.Restaurants, RestaurantResult{
			RestaurantID:   item.Restaurant.ID,
			Name:           item.Restaurant.Name,
			Cuisine:        item.Restaurant.Cuisine,
			Address:        models.FromDomainAddress(item.Restaurant.Address),
			Rating:         item.Restaurant.Rating,
			AvailableSlots: slots,
		})
	}

	return result
}
