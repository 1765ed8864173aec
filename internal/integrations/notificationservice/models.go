package notificationservice

// ReservationConfirmed уведомление о подтвержденном бронировании
type ReservationConfirmed struct {
	ReservationID  int64  `json:"reservation_id"`
	UserID         int64  `json:"user_id"`
	RestaurantID   int64  `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	TableID        int64  `json:"table_id"`
	Date           string `json:"date"` // YYYY-MM-DD
	Time           string `json:"time"` // HH:MM
	PartySize      int    `json:"party_size"`
}

// ErrorResponse модель ошибки от NotificationService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
