package notificationservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notificationservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notificationservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Бронирование уже подтверждено, уведомление просто не доставлено.
	ErrServiceDegraded = errors.New("notificationservice unavailable: graceful degradation applied")
)
