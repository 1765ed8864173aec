package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// TableRepository интерфейс инвентаря столиков
type TableRepository interface {
	ListTables(ctx context.Context, restaurantID int64) ([]domain.Table, error)
}

// Ledger интерфейс журнала бронирований
type Ledger interface {
	FindConfirmed(ctx context.Context, restaurantID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
