package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/reservation"
	restaurantRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/restaurant"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/txmanager"
)

// Service журнал бронирований: единственное место, где меняется набор подтвержденных бронирований
type Service struct {
	reservations ReservationRepository
	tables       TableRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр журнала
func NewService(
	reservations ReservationRepository,
	tables TableRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservations: reservations,
		tables:       tables,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// FindConfirmed возвращает подтвержденные бронирования ресторана,
// начинающиеся в полуинтервале [from, to)
func (s *Service) FindConfirmed(ctx context.Context, restaurantID int64, from, to time.Time) ([]*domain.Reservation, error) {
	if !from.Before(to) {
		return []*domain.Reservation{}, nil
	}

	reservations, err := s.reservations.FindConfirmed(ctx, restaurantID, from, to)
	if err != nil {
		s.logger.Error("Ledger.FindConfirmed: restaurant=%d: %v", restaurantID, err)
		return nil, fmt.Errorf("%w: FindConfirmed: %v", ErrInternal, err)
	}

	return reservations, nil
}

// Append атомарно проверяет остаток по слоту и добавляет бронирование.
// Внутри одной SERIALIZABLE транзакции:
// 1. блокирует строку столика (FOR UPDATE), из нее же берется количество столиков
// 2. считает подтвержденные бронирования на (столик, дата, время)
// 3. если мест нет, отказывает с ErrSlotConflict
// 4. вставляет бронирование со статусом confirmed
//
// Если вызвана внутри уже открытой транзакции, переиспользует её.
func (s *Service) Append(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	var created *domain.Reservation

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем столик
		table, err := s.tables.GetTable(txCtx, reservation.RestaurantID, reservation.TableID)
		if err != nil {
			if errors.Is(err, restaurantRepo.ErrTableNotFound) {
				return ErrTableNotFound
			}
			return err
		}

		// 2. Считаем занятые места на слот
		key := reservation.Key()
		taken, err := s.reservations.CountConfirmedAtSlot(txCtx, key.TableID, key.Date, key.Time)
		if err != nil {
			return err
		}

		// 3. Проверяем остаток
		if taken >= table.Units() {
			s.logger.Warn("Ledger.Append: slot exhausted table=%d date=%s time=%s taken=%d/%d",
				key.TableID, key.Date.Format(domain.DateFormat), key.Time, taken, table.Units())
			return ErrSlotConflict
		}

		// 4. Сохраняем бронирование
		reservation.Status = domain.StatusConfirmed
		reservation.Date = key.Date
		created, err = s.reservations.Create(txCtx, reservation)
		return err
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotConflict), errors.Is(err, ErrTableNotFound):
			return nil, err
		case txmanager.IsSerializationFailure(err):
			s.logger.Warn("Ledger.Append: lost race for table=%d: %v", reservation.TableID, err)
			return nil, ErrSlotConflict
		default:
			s.logger.Error("Ledger.Append: table=%d: %v", reservation.TableID, err)
			return nil, fmt.Errorf("%w: Append: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Ledger.Append: reservation id=%d confirmed (table=%d, %s %s)",
		created.ID, created.TableID, created.Date.Format(domain.DateFormat), created.Time)

	return created, nil
}

// Cancel переводит бронирование в статус cancelled.
// Повторная отмена ничего не меняет и не является ошибкой.
// Завершенное бронирование отменить нельзя.
func (s *Service) Cancel(ctx context.Context, reservationID int64) (*domain.Reservation, error) {
	var result *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservations.GetByID(txCtx, reservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		switch reservation.Status {
		case domain.StatusCancelled:
			result = reservation
			return nil
		case domain.StatusCompleted:
			return ErrCannotCancel
		}

		now := s.timeProvider.Now()
		if err := s.reservations.UpdateStatus(txCtx, reservationID, domain.StatusCancelled, now); err != nil {
			return err
		}

		reservation.Status = domain.StatusCancelled
		reservation.CancelledAt = &now
		reservation.UpdatedAt = now
		result = reservation
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrReservationNotFound) || errors.Is(err, ErrCannotCancel) {
			return nil, err
		}
		s.logger.Error("Ledger.Cancel: reservation=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: Cancel: %v", ErrInternal, err)
	}

	return result, nil
}
