package domain

// Availability defaults
const (
	DefaultWindowMinutes = 30  // ±30 minutes around the requested time
	MaxWindowMinutes     = 180 // upper bound for a caller-supplied window
	SlotGranularity      = 30  // observed grid of configured start times
)

// Business validation constants
const (
	MinPartySize = 1
	MaxPartySize = 20
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses statuses that never hold capacity
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
}
