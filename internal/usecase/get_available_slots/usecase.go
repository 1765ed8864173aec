package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	restaurantRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/restaurant"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/availability"
)

// UseCase use case для получения доступных слотов ресторана
type UseCase struct {
	restaurantRepo RestaurantRepository
	evaluator      Evaluator
	defaultWindow  int
	logger         Logger
}

// NewUseCase создает новый экземпляр use case.
// defaultWindow применяется, когда окно не указано в запросе.
func NewUseCase(
	restaurantRepo RestaurantRepository,
	evaluator Evaluator,
	defaultWindow int,
	logger Logger,
) *UseCase {
	if defaultWindow <= 0 {
		defaultWindow = domain.DefaultWindowMinutes
	}

	return &UseCase{
		restaurantRepo: restaurantRepo,
		evaluator:      evaluator,
		defaultWindow:  defaultWindow,
		logger:         logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: restaurant=%d, date=%s, time=%s, party=%d",
		req.RestaurantID, req.Date.Format(domain.DateFormat), req.Time, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	window := uc.defaultWindow
	if req.WindowMinutes != nil {
		window = *req.WindowMinutes
	}

	// 2. Проверяем, что ресторан существует и одобрен
	restaurant, err := uc.restaurantRepo.GetByID(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrRestaurantNotFound) {
			uc.logger.Warn("GetAvailableSlots: restaurant id=%d not found", req.RestaurantID)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get restaurant id=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}
	if !restaurant.Approved {
		uc.logger.Warn("GetAvailableSlots: restaurant id=%d is not approved", req.RestaurantID)
		return nil, ErrRestaurantNotFound
	}

	// 3. Оцениваем доступность по уже загруженным столикам
	result, err := uc.evaluator.Evaluate(ctx, availability.Request{
		RestaurantID:  req.RestaurantID,
		Date:          req.Date,
		Time:          req.Time,
		PartySize:     req.PartySize,
		WindowMinutes: window,
		Tables:        restaurant.Tables,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMalformedInventory) {
			return nil, err
		}
		uc.logger.Error("GetAvailableSlots: evaluation failed for restaurant id=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: evaluate: %v", ErrInternal, err)
	}

	// 4. Собираем ответ
	slots := toSlots(result)

	uc.logger.Info("GetAvailableSlots: %d slots for restaurant=%d on %s around %s",
		len(slots), req.RestaurantID, req.Date.Format(domain.DateFormat), req.Time)

	return &Response{
		RestaurantID:  req.RestaurantID,
		Date:          domain.DateOnly(req.Date),
		Time:          req.Time,
		PartySize:     req.PartySize,
		WindowMinutes: window,
		Slots:         slots,
		Available:     result.Aggregate.IsAvailable(),
	}, nil
}

// toSlots дополняет представительные времена остатками по выбранному столику
func toSlots(result *availability.Result) []Slot {
	slots := make([]Slot, 0, len(result.Slots))
	for _, s := range result.Slots {
		slot := Slot{StartTime: s.StartTime, TableID: s.TableID}
		for _, ts := range result.TableSlots {
			if ts.TableID == s.TableID && ts.StartTime == s.StartTime {
				slot.TableCapacity = ts.TableCapacity
				slot.AvailableSpots = ts.Remaining
				slot.TotalSpots = ts.Total
				break
			}
		}
		slots = append(slots, slot)
	}
	return slots
}
