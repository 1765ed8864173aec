package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// Service оценка доступности столиков ресторана
type Service struct {
	tables TableRepository
	ledger Ledger
	logger Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(tables TableRepository, ledger Ledger, logger Logger) *Service {
	return &Service{
		tables: tables,
		ledger: ledger,
		logger: logger,
	}
}

// Evaluate вычисляет свободные времена ресторана для компании P в окне ±W вокруг T.
// Нет подходящих столиков: пустой результат, не ошибка.
// Столик с нарушенными инвариантами: ошибка domain.ErrMalformedInventory.
func (s *Service) Evaluate(ctx context.Context, req Request) (*Result, error) {
	// 1. Валидация параметров
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	// 2. Получаем инвентарь (если вызывающий его еще не загрузил)
	tables := req.Tables
	if tables == nil {
		var err error
		tables, err = s.tables.ListTables(ctx, req.RestaurantID)
		if err != nil {
			s.logger.Error("Availability: failed to list tables of restaurant=%d: %v", req.RestaurantID, err)
			return nil, fmt.Errorf("%w: list tables: %v", ErrInternal, err)
		}
	}

	for i := range tables {
		if err := tables[i].Validate(); err != nil {
			s.logger.Error("Availability: restaurant=%d table=%d is malformed", req.RestaurantID, tables[i].ID)
			return nil, fmt.Errorf("%w: restaurant=%d table=%d", domain.ErrMalformedInventory, req.RestaurantID, tables[i].ID)
		}
	}

	// 3. Столики, вмещающие компанию
	suitable := filterSuitable(tables, req.PartySize)
	if len(suitable) == 0 {
		return emptyResult(), nil
	}

	// 4. Подтвержденные бронирования в окне (границы окна не выходят за пределы дня)
	from, to := windowBounds(date, req.Time, req.WindowMinutes)
	reservations, err := s.ledger.FindConfirmed(ctx, req.RestaurantID, from, to)
	if err != nil {
		s.logger.Error("Availability: failed to read reservations of restaurant=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: find confirmed: %v", ErrInternal, err)
	}

	counts := countBySlot(reservations)
	dayKey := func(tableID int64, tm types.TimeString) domain.SlotKey {
		return domain.SlotKey{TableID: tableID, Date: date, Time: tm}
	}

	// 5. Остатки по (столик, время) и сворачивание в уникальные времена
	tableSlots := collectTableSlots(suitable, req.Time, req.WindowMinutes, dayKey, counts)
	slots := pickRepresentatives(tableSlots)

	// 6. Проверка на уровне ресторана
	agg := aggregate(suitable, reservations, req.Time, req.WindowMinutes)

	// 7. Столики без расписания доступны на само время T
	if len(slots) == 0 {
		if slot, ok := freeFormFallback(suitable, req.Time, agg, dayKey, counts); ok {
			tableSlots = append(tableSlots, slot)
			slots = append(slots, domain.AvailableSlot{StartTime: slot.StartTime, TableID: slot.TableID})
		}
	}

	return &Result{
		Slots:      slots,
		TableSlots: tableSlots,
		Aggregate:  agg,
	}, nil
}

func validateRequest(req Request) error {
	if req.RestaurantID <= 0 {
		return fmt.Errorf("%w: restaurantID must be positive", ErrInvalidRequest)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRequest)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidRequest, err)
	}
	if req.PartySize < domain.MinPartySize {
		return fmt.Errorf("%w: partySize must be positive", ErrInvalidRequest)
	}
	if req.WindowMinutes < 0 || req.WindowMinutes > domain.MaxWindowMinutes {
		return fmt.Errorf("%w: window must be within 0..%d minutes", ErrInvalidRequest, domain.MaxWindowMinutes)
	}
	return nil
}

// windowBounds полуинтервал [T-W, T+W+1мин) в пределах дня
func windowBounds(date time.Time, center types.TimeString, window int) (time.Time, time.Time) {
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	at := center.OnDate(date)
	from := at.Add(-time.Duration(window) * time.Minute)
	to := at.Add(time.Duration(window+1) * time.Minute)

	if from.Before(dayStart) {
		from = dayStart
	}
	if to.After(dayEnd) {
		to = dayEnd
	}
	return from, to
}

func emptyResult() *Result {
	return &Result{
		Slots:      []domain.AvailableSlot{},
		TableSlots: []domain.TableSlot{},
	}
}
