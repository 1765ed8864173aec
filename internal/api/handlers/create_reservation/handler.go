package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	createReservation "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotTaken          = "выбранное время уже занято"
	msgRestaurantNotFound = "ресторан не найден"
	msgTableNotFound      = "столик не найден"
	msgPartyTooLarge      = "количество гостей превышает вместимость столика"
	msgTimeNotOffered     = "столик не предлагает выбранное время"
	msgInPast             = "нельзя забронировать прошедшее время"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем пользователя из контекста (через middleware Auth)
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(principal)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotTaken):
			h.logger.Warn("POST /reservations - Slot taken: user_id=%d, table_id=%d", principal.UserID, req.TableID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createReservation.ErrRestaurantNotFound):
			h.logger.Warn("POST /reservations - Restaurant not found: restaurant_id=%d", req.RestaurantID)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, createReservation.ErrTableNotFound):
			h.logger.Warn("POST /reservations - Table not found: restaurant_id=%d, table_id=%d", req.RestaurantID, req.TableID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, createReservation.ErrPartyTooLarge):
			h.logger.Warn("POST /reservations - Party too large: table_id=%d, party=%d", req.TableID, req.PartySize)
			handlers.RespondBadRequest(w, msgPartyTooLarge)

		case errors.Is(err, createReservation.ErrTimeNotOffered):
			h.logger.Warn("POST /reservations - Time not offered: table_id=%d, time=%s", req.TableID, req.Time)
			handlers.RespondBadRequest(w, msgTimeNotOffered)

		case errors.Is(err, createReservation.ErrInPast):
			h.logger.Warn("POST /reservations - Time in the past: %s %s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgInPast)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, restaurant_id=%d, error=%v",
				principal.UserID, req.RestaurantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, restaurant_id=%d",
		result.ID, principal.UserID, req.RestaurantID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
