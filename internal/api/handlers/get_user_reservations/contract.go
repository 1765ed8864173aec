package get_user_reservations

import (
	"context"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/reservations/models"
)

type ReservationService interface {
	GetUserReservations(ctx context.Context, principal domain.Principal, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
