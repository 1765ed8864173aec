package create_reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	createReservation "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	RestaurantID int64  `json:"restaurantId"`
	TableID      int64  `json:"tableId"`
	Date         string `json:"date"` // "2026-11-20"
	Time         string `json:"time"` // "18:00"
	PartySize    int    `json:"partySize"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ReservationID int64  `json:"reservationId"`
	RestaurantID  int64  `json:"restaurantId"`
	TableID       int64  `json:"tableId"`
	UserID        int64  `json:"userId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PartySize     int    `json:"partySize"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(principal domain.Principal) (*createReservation.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createReservation.Request{
		Principal:    principal,
		RestaurantID: r.RestaurantID,
		TableID:      r.TableID,
		Date:         date,
		Time:         startTime,
		PartySize:    r.PartySize,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ReservationID: resp.ID,
		RestaurantID:  resp.RestaurantID,
		TableID:       resp.TableID,
		UserID:        resp.UserID,
		Date:          resp.Date.Format(domain.DateFormat),
		Time:          resp.Time.String(),
		PartySize:     resp.PartySize,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
