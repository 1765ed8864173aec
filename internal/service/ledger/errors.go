package ledger

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

var (
	// ErrSlotConflict все столики на этот слот уже заняты (или гонка проиграна на уровне БД)
	ErrSlotConflict = fmt.Errorf("ledger: slot is fully booked: %w", domain.ErrConflict)

	// ErrReservationNotFound бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("ledger: reservation not found: %w", domain.ErrNotFound)

	// ErrTableNotFound столик не найден в ресторане
	ErrTableNotFound = fmt.Errorf("ledger: table not found: %w", domain.ErrNotFound)

	// ErrCannotCancel завершенное бронирование отменить нельзя
	ErrCannotCancel = fmt.Errorf("ledger: completed reservation cannot be cancelled: %w", domain.ErrValidation)

	// ErrInternal внутренняя ошибка журнала
	ErrInternal = errors.New("ledger: internal error")
)
