package domain

import "github.com/m04kA/SMC-RestaurantBooking/pkg/types"

// TableSlot is one (table, start time) pair with its remaining capacity on a date
type TableSlot struct {
	TableID       int64
	TableCapacity int
	StartTime     types.TimeString
	Remaining     int
	Total         int
}

// IsAvailable returns true if at least one physical table is free
func (s *TableSlot) IsAvailable() bool {
	return s.Remaining > 0
}

// AvailableSlot is a bookable start time with the representative table offered for it
type AvailableSlot struct {
	StartTime types.TimeString
	TableID   int64
}

// AggregateAvailability is the restaurant-level check: total suitable tables
// versus confirmed reservations inside the window
type AggregateAvailability struct {
	TotalTables int
	Reserved    int
}

// IsAvailable returns true if fewer reservations exist than suitable tables
func (a AggregateAvailability) IsAvailable() bool {
	return a.Reserved < a.TotalTables
}

// RestaurantAvailability is the availability of one restaurant for a request
type RestaurantAvailability struct {
	Restaurant *Restaurant
	Slots      []AvailableSlot
	Aggregate  AggregateAvailability
}
