package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/internal/integrations/notificationservice"
)

// RestaurantRepository интерфейс репозитория ресторанов
type RestaurantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)
}

// Ledger интерфейс журнала бронирований
type Ledger interface {
	Append(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// Notifier интерфейс клиента уведомлений
type Notifier interface {
	NotifyReservationConfirmed(ctx context.Context, n notificationservice.ReservationConfirmed) error
}

// Metrics счетчики бронирований
type Metrics interface {
	ReservationCreated()
	ReservationConflict()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
