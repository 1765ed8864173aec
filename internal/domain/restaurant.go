package domain

import (
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

// Address location of a restaurant
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Lat     *float64
	Lng     *float64
}

// Restaurant represents a listed restaurant with its table inventory
type Restaurant struct {
	ID          int64
	OwnerID     int64
	Name        string
	Cuisine     string
	Description string
	Address     Address
	Rating      float64
	Approved    bool
	Tables      []Table

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy returns true if the user owns this listing
func (r *Restaurant) IsOwnedBy(userID int64) bool {
	return r.OwnerID == userID
}

// Table is one table shape of a restaurant.
// Quantity is the number of physical tables of this shape; nil means exactly one.
type Table struct {
	ID           int64
	RestaurantID int64
	Capacity     int
	StartTimes   []types.TimeString
	Quantity     *int
}

// Units returns the number of physical tables, i.e. the concurrency limit per slot
func (t *Table) Units() int {
	if t.Quantity == nil {
		return 1
	}
	return *t.Quantity
}

// Fits returns true if the table seats the party
func (t *Table) Fits(partySize int) bool {
	return t.Capacity >= partySize
}

// IsFreeForm returns true if the table has no configured start times
func (t *Table) IsFreeForm() bool {
	return len(t.StartTimes) == 0
}

// Offers returns true if the table accepts a reservation starting at tm.
// Free-form tables accept any time.
func (t *Table) Offers(tm types.TimeString) bool {
	if t.IsFreeForm() {
		return true
	}
	for _, st := range t.StartTimes {
		if st == tm {
			return true
		}
	}
	return false
}

// Validate checks stored inventory invariants
func (t *Table) Validate() error {
	if t.Capacity <= 0 {
		return ErrMalformedInventory
	}
	if t.Quantity != nil && *t.Quantity <= 0 {
		return ErrMalformedInventory
	}
	for _, st := range t.StartTimes {
		if err := st.Validate(); err != nil {
			return ErrMalformedInventory
		}
	}
	return nil
}

// LocationFilter selects restaurants by a free-form location string.
// A five-digit value is matched against the zip code, anything else as a
// case-insensitive substring of city or state ("City, ST" matches both parts).
type LocationFilter struct {
	Query string
}

// IsEmpty returns true if no location filtering is requested
func (f LocationFilter) IsEmpty() bool {
	return f.Query == ""
}
