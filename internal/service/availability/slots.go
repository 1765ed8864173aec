package availability

import (
	"sort"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// filterSuitable оставляет столики, вмещающие компанию
func filterSuitable(tables []domain.Table, partySize int) []domain.Table {
	suitable := make([]domain.Table, 0, len(tables))
	for _, t := range tables {
		if t.Fits(partySize) {
			suitable = append(suitable, t)
		}
	}
	return suitable
}

// countBySlot считает подтвержденные бронирования по ключу (столик, дата, время)
func countBySlot(reservations []*domain.Reservation) map[domain.SlotKey]int {
	counts := make(map[domain.SlotKey]int, len(reservations))
	for _, r := range reservations {
		if !r.IsConfirmed() {
			continue
		}
		counts[r.Key()]++
	}
	return counts
}

// collectTableSlots строит (столик, время) для настроенных времен, попавших в окно.
// Столики без настроенных времен здесь не участвуют.
func collectTableSlots(
	tables []domain.Table,
	center types.TimeString,
	window int,
	dayKey func(tableID int64, tm types.TimeString) domain.SlotKey,
	counts map[domain.SlotKey]int,
) []domain.TableSlot {
	slots := make([]domain.TableSlot, 0)
	for _, t := range tables {
		seen := make(map[types.TimeString]struct{}, len(t.StartTimes))
		for _, st := range t.StartTimes {
			if _, dup := seen[st]; dup {
				continue
			}
			seen[st] = struct{}{}

			if !st.IsWithinWindow(center, window) {
				continue
			}

			remaining := t.Units() - counts[dayKey(t.ID, st)]
			if remaining < 0 {
				remaining = 0
			}
			slots = append(slots, domain.TableSlot{
				TableID:       t.ID,
				TableCapacity: t.Capacity,
				StartTime:     st,
				Remaining:     remaining,
				Total:         t.Units(),
			})
		}
	}
	return slots
}

// better true, если столик a предпочтительнее b: меньшая вместимость, затем меньший ID
func better(aCapacity int, aID int64, bCapacity int, bID int64) bool {
	if aCapacity != bCapacity {
		return aCapacity < bCapacity
	}
	return aID < bID
}

// pickRepresentatives сворачивает свободные (столик, время) в уникальные времена
// по возрастанию, выбирая для каждого времени представительный столик
func pickRepresentatives(tableSlots []domain.TableSlot) []domain.AvailableSlot {
	type choice struct {
		capacity int
		tableID  int64
	}
	best := make(map[types.TimeString]choice)

	for _, s := range tableSlots {
		if !s.IsAvailable() {
			continue
		}
		cur, ok := best[s.StartTime]
		if !ok || better(s.TableCapacity, s.TableID, cur.capacity, cur.tableID) {
			best[s.StartTime] = choice{capacity: s.TableCapacity, tableID: s.TableID}
		}
	}

	slots := make([]domain.AvailableSlot, 0, len(best))
	for tm, c := range best {
		slots = append(slots, domain.AvailableSlot{StartTime: tm, TableID: c.tableID})
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Minutes() < slots[j].StartTime.Minutes()
	})
	return slots
}

// aggregate сравнивает общее число подходящих столиков с числом подтвержденных
// бронирований ресторана, время которых попадает в окно вокруг T
func aggregate(
	suitable []domain.Table,
	reservations []*domain.Reservation,
	center types.TimeString,
	window int,
) domain.AggregateAvailability {
	var result domain.AggregateAvailability
	for _, t := range suitable {
		result.TotalTables += t.Units()
	}
	for _, r := range reservations {
		if r.IsConfirmed() && r.Time.IsWithinWindow(center, window) {
			result.Reserved++
		}
	}
	return result
}

// freeFormFallback предлагает время T на наименьшем подходящем столике без
// настроенных времен, если у ресторана есть свободная емкость в окне и
// у самого столика остались места на T. Остаток считается так же, как для
// настроенных времен.
func freeFormFallback(
	suitable []domain.Table,
	center types.TimeString,
	agg domain.AggregateAvailability,
	dayKey func(tableID int64, tm types.TimeString) domain.SlotKey,
	counts map[domain.SlotKey]int,
) (domain.TableSlot, bool) {
	if !agg.IsAvailable() {
		return domain.TableSlot{}, false
	}

	var chosen *domain.Table
	for i := range suitable {
		t := &suitable[i]
		if !t.IsFreeForm() {
			continue
		}
		if counts[dayKey(t.ID, center)] >= t.Units() {
			continue
		}
		if chosen == nil || better(t.Capacity, t.ID, chosen.Capacity, chosen.ID) {
			chosen = t
		}
	}

	if chosen == nil {
		return domain.TableSlot{}, false
	}
	return domain.TableSlot{
		TableID:       chosen.ID,
		TableCapacity: chosen.Capacity,
		StartTime:     center,
		Remaining:     chosen.Units() - counts[dayKey(chosen.ID, center)],
		Total:         chosen.Units(),
	}, true
}
