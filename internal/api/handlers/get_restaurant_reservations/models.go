package get_restaurant_reservations

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/reservations/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	restaurantID int64,
	dateStr string,
	statusStr string,
	includeInactiveStr string,
) (*models.GetRestaurantReservationsRequest, error) {
	req := &models.GetRestaurantReservationsRequest{
		RestaurantID:    restaurantID,
		IncludeInactive: false, // По умолчанию только подтвержденные
	}

	// Парсим date если указана
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
