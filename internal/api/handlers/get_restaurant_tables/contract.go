package get_restaurant_tables

import (
	"context"

	"github.com/m04kA/SMC-RestaurantBooking/internal/service/restaurants/models"
)

type RestaurantService interface {
	ListTables(ctx context.Context, id int64) (*models.TableListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
