package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	RestaurantID  int64            // ID ресторана
	Date          time.Time        // Дата (без времени)
	Time          types.TimeString // Желаемое время, например "18:15"
	PartySize     int              // Количество гостей
	WindowMinutes *int             // Окно ±W минут; nil означает значение по умолчанию
}

// Response модель ответа со списком доступных слотов
type Response struct {
	RestaurantID  int64
	Date          time.Time
	Time          types.TimeString
	PartySize     int
	WindowMinutes int
	Slots         []Slot
	Available     bool // Проверка на уровне ресторана
}

// Slot свободное время с представительным столиком
type Slot struct {
	StartTime      types.TimeString // Время начала
	TableID        int64            // Столик, который будет предложен
	TableCapacity  int              // Вместимость столика
	AvailableSpots int              // Сколько таких столиков свободно
	TotalSpots     int              // Сколько таких столиков всего
}
