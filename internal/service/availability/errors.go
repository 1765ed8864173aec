package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

var (
	// ErrInvalidRequest некорректные параметры оценки доступности
	ErrInvalidRequest = fmt.Errorf("availability: invalid request: %w", domain.ErrValidation)

	// ErrInternal внутренняя ошибка при чтении инвентаря или журнала
	ErrInternal = errors.New("availability: internal error")
)
