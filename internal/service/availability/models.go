package availability

import (
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// Request параметры оценки доступности ресторана
type Request struct {
	RestaurantID  int64
	Date          time.Time        // День (время игнорируется)
	Time          types.TimeString // Желаемое время T
	PartySize     int              // Размер компании P
	WindowMinutes int              // Окно ±W вокруг T
	Tables        []domain.Table   // Уже загруженный инвентарь; nil означает чтение из репозитория
}

// Result результат оценки доступности
type Result struct {
	Slots      []domain.AvailableSlot       // Свободные времена по возрастанию с представительным столиком
	TableSlots []domain.TableSlot           // Все (столик, время) в окне с остатком
	Aggregate  domain.AggregateAvailability // Проверка на уровне ресторана
}

// IsEmpty true, если в окне нет ни одного свободного времени
func (r *Result) IsEmpty() bool {
	return len(r.Slots) == 0
}
