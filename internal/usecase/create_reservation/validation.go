package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.Principal.IsAuthenticated() {
		return fmt.Errorf("%w: authenticated user is required", ErrInvalidInput)
	}

	if req.RestaurantID <= 0 {
		return fmt.Errorf("%w: restaurantID must be positive", ErrInvalidInput)
	}

	if req.TableID <= 0 {
		return fmt.Errorf("%w: tableID must be positive", ErrInvalidInput)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: partySize must be within %d..%d", ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время указано
	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateNotInPast проверяет, что начало бронирования не раньше текущего момента.
// Дата и время бронирования трактуются в UTC.
func validateNotInPast(date time.Time, startTime types.TimeString, now time.Time) error {
	startsAt := startTime.OnDate(domain.DateOnly(date))
	if startsAt.Before(now.UTC()) {
		return ErrInPast
	}
	return nil
}

// findTable ищет столик среди столиков ресторана
func findTable(restaurant *domain.Restaurant, tableID int64) (*domain.Table, error) {
	for i := range restaurant.Tables {
		if restaurant.Tables[i].ID == tableID {
			return &restaurant.Tables[i], nil
		}
	}
	return nil, ErrTableNotFound
}
