package domain

import (
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// Reservation represents a table reservation
type Reservation struct {
	ID           int64
	RestaurantID int64
	TableID      int64
	UserID       int64
	Date         time.Time
	Time         types.TimeString
	PartySize    int
	Status       ReservationStatus

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the reservation holds capacity
func (r *Reservation) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CanBeCancelled returns true if the reservation can move to cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusConfirmed
}

// StartsAt returns the reservation start as a point in time
func (r *Reservation) StartsAt() time.Time {
	return r.Time.OnDate(r.Date)
}

// SlotKey identifies one bookable unit
type SlotKey struct {
	TableID int64
	Date    time.Time
	Time    types.TimeString
}

// Key returns the slot the reservation occupies
func (r *Reservation) Key() SlotKey {
	return SlotKey{TableID: r.TableID, Date: DateOnly(r.Date), Time: r.Time}
}

// ReservationsFilter filter for listing reservations of a restaurant
type ReservationsFilter struct {
	RestaurantID    int64              // Required
	Date            *time.Time         // Specific day (optional)
	Status          *ReservationStatus // Status filter (optional)
	IncludeInactive bool               // Include cancelled and completed
}

// ParseReservationStatus validates a status string
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch st := ReservationStatus(s); st {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

// DateOnly truncates a time to the calendar day in UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
