package search_restaurants

import (
	"fmt"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: partySize must be within %d..%d", ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	if req.WindowMinutes != nil && (*req.WindowMinutes < 0 || *req.WindowMinutes > domain.MaxWindowMinutes) {
		return fmt.Errorf("%w: window must be within 0..%d minutes", ErrInvalidInput, domain.MaxWindowMinutes)
	}

	switch req.SortBy {
	case SortByID, SortByRating:
	default:
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, req.SortBy)
	}

	return nil
}
