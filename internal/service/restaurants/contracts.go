package restaurants

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// RestaurantRepository интерфейс репозитория ресторанов
type RestaurantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)
	ListTables(ctx context.Context, restaurantID int64) ([]domain.Table, error)
}

// ReservationCounter считает бронирования ресторана за день
type ReservationCounter interface {
	CountByRestaurantAndDate(ctx context.Context, restaurantID int64, date time.Time) (int, error)
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
