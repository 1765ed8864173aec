package restaurants

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	restaurantRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/restaurant"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/restaurants/models"
)

// Service сервис для чтения карточек ресторанов и их инвентаря
type Service struct {
	restaurantRepo RestaurantRepository
	counter        ReservationCounter
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса ресторанов
func NewService(
	restaurantRepo RestaurantRepository,
	counter ReservationCounter,
	logger Logger,
) *Service {
	return &Service{
		restaurantRepo: restaurantRepo,
		counter:        counter,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// GetByID получает карточку ресторана со столиками и числом бронирований на сегодня.
// Публичный метод: неодобренные рестораны не показываются.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RestaurantResponse, error) {
	s.logger.Info("GetByID: fetching restaurant id=%d", id)

	// 1. Получаем ресторан
	restaurant, err := s.getApproved(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// 2. Считаем бронирования на сегодня (UTC)
	today := domain.DateOnly(s.timeProvider.Now().UTC())
	bookingsToday, err := s.counter.CountByRestaurantAndDate(ctx, id, today)
	if err != nil {
		s.logger.Error("GetByID: failed to count reservations of restaurant id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - count reservations: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched restaurant id=%d (tables=%d, today=%d)",
		id, len(restaurant.Tables), bookingsToday)
	return models.FromDomainRestaurant(restaurant, bookingsToday), nil
}

// ListTables возвращает инвентарь столиков одобренного ресторана
func (s *Service) ListTables(ctx context.Context, restaurantID int64) (*models.TableListResponse, error) {
	s.logger.Info("ListTables: fetching tables of restaurant id=%d", restaurantID)

	if _, err := s.getApproved(ctx, "ListTables", restaurantID); err != nil {
		return nil, err
	}

	tables, err := s.restaurantRepo.ListTables(ctx, restaurantID)
	if err != nil {
		s.logger.Error("ListTables: repository error for restaurant id=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: ListTables - repository error: %v", ErrInternal, err)
	}

	return &models.TableListResponse{
		RestaurantID: restaurantID,
		Tables:       models.FromDomainTables(tables),
	}, nil
}

func (s *Service) getApproved(ctx context.Context, op string, id int64) (*domain.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrRestaurantNotFound) {
			s.logger.Warn("%s: restaurant id=%d not found", op, id)
			return nil, ErrRestaurantNotFound
		}
		s.logger.Error("%s: repository error for restaurant id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !restaurant.Approved {
		s.logger.Warn("%s: restaurant id=%d is not approved", op, id)
		return nil, ErrRestaurantNotFound
	}

	return restaurant, nil
}
