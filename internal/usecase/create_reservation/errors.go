package create_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

var (
	// ErrRestaurantNotFound ресторан не найден или не одобрен
	ErrRestaurantNotFound = fmt.Errorf("create_reservation: restaurant not found: %w", domain.ErrNotFound)

	// ErrTableNotFound столик не найден в ресторане
	ErrTableNotFound = fmt.Errorf("create_reservation: table not found: %w", domain.ErrNotFound)

	// ErrPartyTooLarge размер компании больше вместимости столика
	ErrPartyTooLarge = fmt.Errorf("create_reservation: party does not fit the table: %w", domain.ErrCapacity)

	// ErrTimeNotOffered столик не предлагает такое время начала
	ErrTimeNotOffered = fmt.Errorf("create_reservation: table is not offered at this time: %w", domain.ErrValidation)

	// ErrInPast время бронирования уже прошло
	ErrInPast = fmt.Errorf("create_reservation: cannot book in the past: %w", domain.ErrValidation)

	// ErrSlotTaken все столики на слот уже заняты
	ErrSlotTaken = fmt.Errorf("create_reservation: slot is no longer available: %w", domain.ErrConflict)

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = fmt.Errorf("create_reservation: invalid input data: %w", domain.ErrValidation)

	// ErrInternal внутренняя ошибка usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
