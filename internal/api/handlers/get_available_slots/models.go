package get_available_slots

import (
	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	RestaurantID  int64           `json:"restaurantId"`
	Date          string          `json:"date"`
	Time          string          `json:"time"`
	PartySize     int             `json:"partySize"`
	WindowMinutes int             `json:"windowMinutes"`
	Available     bool            `json:"available"`
	Slots         []AvailableSlot `json:"slots"`
}

// AvailableSlot модель свободного времени
type AvailableSlot struct {
	Time           string `json:"time"`
	TableID        int64  `json:"tableId"`
	TableCapacity  int    `json:"tableCapacity"`
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:           slot.StartTime.String(),
			TableID:        slot.TableID,
			TableCapacity:  slot.TableCapacity,
			AvailableSpots: slot.AvailableSpots,
			TotalSpots:     slot.TotalSpots,
		}
	}

	return &AvailableSlotsResponse{
		RestaurantID:  resp.RestaurantID,
		Date:          resp.Date.Format(domain.DateFormat),
		Time:          resp.Time.String(),
		PartySize:     resp.PartySize,
		WindowMinutes: resp.WindowMinutes,
		Available:     resp.Available,
		Slots:         slots,
	}
}
