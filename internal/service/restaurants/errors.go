package restaurants

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

var (
	// ErrRestaurantNotFound возвращается, когда ресторан не найден или не одобрен
	ErrRestaurantNotFound = fmt.Errorf("restaurant not found: %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
