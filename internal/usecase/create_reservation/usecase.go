package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	restaurantRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/restaurant"
	"github.com/m04kA/SMC-RestaurantBooking/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/ledger"
)

// defaultNotifyTimeout ограничение на отправку уведомления, если не задано явно
const defaultNotifyTimeout = 5 * time.Second

// UseCase use case для создания бронирования столика
type UseCase struct {
	restaurantRepo RestaurantRepository
	ledger         Ledger
	notifier       Notifier
	notifyTimeout  time.Duration
	notifications  sync.WaitGroup
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case.
// notifyTimeout ограничивает отправку уведомления о подтверждении.
func NewUseCase(
	restaurantRepo RestaurantRepository,
	ledger Ledger,
	notifier Notifier,
	notifyTimeout time.Duration,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if notifyTimeout <= 0 {
		notifyTimeout = defaultNotifyTimeout
	}

	return &UseCase{
		restaurantRepo: restaurantRepo,
		ledger:         ledger,
		notifier:       notifier,
		notifyTimeout:  notifyTimeout,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Wait дожидается отправки уведомлений, запущенных Execute (для graceful shutdown)
func (uc *UseCase) Wait() {
	uc.notifications.Wait()
}

// Execute выполняет use case создания бронирования.
// Остаток по слоту пересчитывается в момент записи внутри сериализуемой транзакции журнала,
// поэтому из двух конкурирующих запросов на последний столик проходит ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, restaurant=%d, table=%d, date=%s, time=%s, party=%d",
		req.Principal.UserID, req.RestaurantID, req.TableID, req.Date.Format(domain.DateFormat), req.Time, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Бронировать прошедшее время нельзя
	if err := validateNotInPast(req.Date, req.Time, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateReservation: %s %s is in the past", req.Date.Format(domain.DateFormat), req.Time)
		return nil, err
	}

	// 3. Получаем ресторан вместе со столиками
	restaurant, err := uc.restaurantRepo.GetByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrRestaurantNotFound) {
			uc.logger.Warn("CreateReservation: restaurant id=%d not found", req.RestaurantID)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("CreateReservation: failed to get restaurant id=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}

	// Неодобренный ресторан для гостей не существует
	if !restaurant.Approved {
		uc.logger.Warn("CreateReservation: restaurant id=%d is not approved", req.RestaurantID)
		return nil, ErrRestaurantNotFound
	}

	// 4. Проверяем, что столик принадлежит ресторану
	table, err := findTable(restaurant, req.TableID)
	if err != nil {
		uc.logger.Warn("CreateReservation: table id=%d not found in restaurant id=%d", req.TableID, req.RestaurantID)
		return nil, err
	}

	if err := table.Validate(); err != nil {
		uc.logger.Error("CreateReservation: table id=%d is malformed", table.ID)
		return nil, fmt.Errorf("%w: table id=%d", domain.ErrMalformedInventory, table.ID)
	}

	// 5. Проверяем вместимость
	if !table.Fits(req.PartySize) {
		uc.logger.Warn("CreateReservation: party=%d exceeds capacity=%d of table id=%d",
			req.PartySize, table.Capacity, table.ID)
		return nil, ErrPartyTooLarge
	}

	// 6. Проверяем, что столик предлагает это время
	if !table.Offers(req.Time) {
		uc.logger.Warn("CreateReservation: table id=%d does not offer %s", table.ID, req.Time)
		return nil, ErrTimeNotOffered
	}

	// 7. Атомарно пересчитываем остаток и записываем бронирование
	created, err := uc.ledger.Append(ctx, &domain.Reservation{
		RestaurantID: req.RestaurantID,
		TableID:      req.TableID,
		UserID:       req.Principal.UserID,
		Date:         domain.DateOnly(req.Date),
		Time:         req.Time,
		PartySize:    req.PartySize,
		Status:       domain.StatusConfirmed,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrSlotConflict):
			uc.metrics.ReservationConflict()
			uc.logger.Warn("CreateReservation: slot taken table=%d %s %s",
				req.TableID, req.Date.Format(domain.DateFormat), req.Time)
			return nil, ErrSlotTaken
		case errors.Is(err, ledger.ErrTableNotFound):
			return nil, ErrTableNotFound
		default:
			uc.logger.Error("CreateReservation: failed to append reservation: %v", err)
			return nil, fmt.Errorf("%w: failed to append reservation: %v", ErrInternal, err)
		}
	}

	uc.metrics.ReservationCreated()
	uc.logger.Info("CreateReservation: successfully created reservation id=%d", created.ID)

	// 8. Уведомление о подтверждении отправляется в фоне: ответ его не ждет,
	// а отключение клиента его не отменяет
	uc.notifications.Add(1)
	go uc.notify(context.WithoutCancel(ctx), notificationservice.ReservationConfirmed{
		ReservationID:  created.ID,
		UserID:         created.UserID,
		RestaurantID:   created.RestaurantID,
		RestaurantName: restaurant.Name,
		TableID:        created.TableID,
		Date:           created.Date.Format(domain.DateFormat),
		Time:           created.Time.String(),
		PartySize:      created.PartySize,
	})

	return &Response{
		ID:           created.ID,
		RestaurantID: created.RestaurantID,
		TableID:      created.TableID,
		UserID:       created.UserID,
		Date:         created.Date,
		Time:         created.Time,
		PartySize:    created.PartySize,
		Status:       string(created.Status),
		CreatedAt:    created.CreatedAt,
		UpdatedAt:    created.UpdatedAt,
	}, nil
}

// notify отправляет уведомление со своим таймаутом; ошибка не отменяет бронирование
func (uc *UseCase) notify(ctx context.Context, n notificationservice.ReservationConfirmed) {
	defer uc.notifications.Done()

	ctx, cancel := context.WithTimeout(ctx, uc.notifyTimeout)
	defer cancel()

	if err := uc.notifier.NotifyReservationConfirmed(ctx, n); err != nil {
		uc.logger.Warn("CreateReservation: confirmation for reservation id=%d not delivered: %v", n.ReservationID, err)
	}
}

type noopMetrics struct{}

func (noopMetrics) ReservationCreated()  {}
func (noopMetrics) ReservationConflict() {}
