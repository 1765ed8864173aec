package search_restaurants

import (
	"context"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/availability"
)

// RestaurantRepository интерфейс каталога ресторанов
type RestaurantRepository interface {
	ListApproved(ctx context.Context, filter domain.LocationFilter) ([]*domain.Restaurant, error)
}

// Evaluator интерфейс оценки доступности
type Evaluator interface {
	Evaluate(ctx context.Context, req availability.Request) (*availability.Result, error)
}

// Metrics метрики поиска
type Metrics interface {
	SearchCompleted(results int, excluded int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
