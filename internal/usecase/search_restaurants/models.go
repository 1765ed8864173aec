package search_restaurants

import (
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// SortBy порядок выдачи
type SortBy string

const (
	// SortByID порядок каталога (id по возрастанию)
	SortByID SortBy = ""
	// SortByRating рейтинг по убыванию, при равенстве порядок каталога
	SortByRating SortBy = "rating"
)

// Request модель запроса поиска
type Request struct {
	Location      string           // Индекс, город, штат или "Город, ШТАТ"; пусто означает все
	Date          time.Time        // Дата (без времени)
	Time          types.TimeString // Желаемое время
	PartySize     int              // Количество гостей
	WindowMinutes *int             // Окно ±W минут; nil означает значение по умолчанию
	SortBy        SortBy           // Порядок выдачи
}

// Response модель ответа поиска
type Response struct {
	Restaurants []domain.RestaurantAvailability
	Excluded    int // Сколько ресторанов пропущено из-за ошибок оценки
}
