package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Principal    domain.Principal // Аутентифицированный пользователь
	RestaurantID int64            // ID ресторана
	TableID      int64            // ID столика
	Date         time.Time        // Дата бронирования (без времени)
	Time         types.TimeString // Время начала (например, "18:00")
	PartySize    int              // Количество гостей
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64
	RestaurantID int64
	TableID      int64
	UserID       int64
	Date         time.Time
	Time         types.TimeString
	PartySize    int
	Status       string

	CreatedAt time.Time
	UpdatedAt time.Time
}
