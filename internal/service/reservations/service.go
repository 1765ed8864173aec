package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/reservation"
	restaurantRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/restaurant"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/ledger"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/reservations/models"
)

// Service сервис для работы с существующими бронированиями
type Service struct {
	reservationRepo ReservationRepository
	restaurantRepo  RestaurantRepository
	ledger          Ledger
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	restaurantRepo RestaurantRepository,
	ledger Ledger,
	metrics Metrics,
	logger Logger,
) *Service {
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &Service{
		reservationRepo: reservationRepo,
		restaurantRepo:  restaurantRepo,
		ledger:          ledger,
		metrics:         metrics,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Видеть бронирование могут его автор, владелец ресторана и администратор.
func (s *Service) GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, principal.UserID)

	reservation, err := s.getReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if reservation.UserID != principal.UserID {
		if err := s.checkRestaurantAccess(ctx, reservation.RestaurantID, principal); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", principal.UserID, id)
			return nil, err
		}
	}

	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает историю бронирований пользователя.
// Чужую историю может смотреть только администратор.
func (s *Service) GetUserReservations(ctx context.Context, principal domain.Principal, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d by user=%d, status=%v",
		req.UserID, principal.UserID, req.Status)

	if req.UserID != principal.UserID && !principal.IsAdmin() {
		s.logger.Warn("GetUserReservations: user=%d cannot read reservations of user=%d", principal.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	var status *domain.ReservationStatus
	if req.Status != nil {
		st, err := domain.ParseReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &st
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetRestaurantReservations получает бронирования ресторана с фильтрацией.
// Доступно владельцу ресторана и администратору.
func (s *Service) GetRestaurantReservations(ctx context.Context, principal domain.Principal, req *models.GetRestaurantReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetRestaurantReservations: restaurant=%d, user=%d, includeInactive=%t",
		req.RestaurantID, principal.UserID, req.IncludeInactive)

	if err := s.checkRestaurantAccess(ctx, req.RestaurantID, principal); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetRestaurantReservations: invalid filter for restaurant=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByRestaurantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetRestaurantReservations: repository error for restaurant=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: GetRestaurantReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRestaurantReservations: fetched %d reservations for restaurant=%d", len(reservations), req.RestaurantID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование.
// Отменить может автор бронирования или администратор. Повторная отмена успешна и ничего не меняет.
func (s *Service) Cancel(ctx context.Context, id int64, principal domain.Principal) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, principal.UserID)

	reservation, err := s.getReservation(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if reservation.UserID != principal.UserID && !principal.IsAdmin() {
		s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", principal.UserID, id)
		return nil, ErrAccessDenied
	}

	if reservation.IsCancelled() {
		s.logger.Info("Cancel: reservation id=%d is already cancelled", id)
		return models.FromDomainReservation(reservation), nil
	}

	cancelled, err := s.ledger.Cancel(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrReservationNotFound):
			return nil, ErrReservationNotFound
		case errors.Is(err, ledger.ErrCannotCancel):
			s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, reservation.Status)
			return nil, ErrCannotCancel
		default:
			s.logger.Error("Cancel: ledger error for reservation id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Cancel - ledger error: %v", ErrInternal, err)
		}
	}

	by := "user"
	if reservation.UserID != principal.UserID {
		by = "admin"
	}
	s.metrics.ReservationCancelled(by)

	s.logger.Info("Cancel: successfully cancelled reservation id=%d by %s", id, by)
	return models.FromDomainReservation(cancelled), nil
}

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

// checkRestaurantAccess проверяет, что пользователь владеет рестораном или является администратором
func (s *Service) checkRestaurantAccess(ctx context.Context, restaurantID int64, principal domain.Principal) error {
	if principal.IsAdmin() {
		return nil
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrRestaurantNotFound) {
			s.logger.Warn("checkRestaurantAccess: restaurant id=%d not found", restaurantID)
			return ErrRestaurantNotFound
		}
		s.logger.Error("checkRestaurantAccess: repository error for restaurant id=%d: %v", restaurantID, err)
		return fmt.Errorf("%w: checkRestaurantAccess - repository error: %v", ErrInternal, err)
	}

	if !restaurant.IsOwnedBy(principal.UserID) {
		s.logger.Warn("checkRestaurantAccess: user=%d is not the owner of restaurant id=%d", principal.UserID, restaurantID)
		return ErrAccessDenied
	}

	return nil
}

type noopMetrics struct{}

func (noopMetrics) ReservationCancelled(string) {}
