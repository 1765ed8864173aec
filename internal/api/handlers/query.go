package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// SlotQuery общие параметры поиска свободного времени: date, time, partySize, window
type SlotQuery struct {
	Date          time.Time
	Time          types.TimeString
	PartySize     int
	WindowMinutes *int
}

// ParseSlotQuery разбирает date (YYYY-MM-DD), time (HH:MM), partySize и опциональный window
func ParseSlotQuery(get func(string) string) (*SlotQuery, error) {
	date, err := time.Parse(domain.DateFormat, get("date"))
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	tm, err := types.NewTimeStringFromString(get("time"))
	if err != nil {
		return nil, fmt.Errorf("time: %w", err)
	}

	partySize, err := strconv.Atoi(get("partySize"))
	if err != nil {
		return nil, fmt.Errorf("partySize: %w", err)
	}

	q := &SlotQuery{Date: date, Time: tm, PartySize: partySize}

	if raw := get("window"); raw != "" {
		window, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("window: %w", err)
		}
		q.WindowMinutes = &window
	}

	return q, nil
}
