package domain

import "errors"

// Error kinds. Package-level errors wrap one of these so that the request
// boundary can map them to a response without knowing every concrete error.
var (
	ErrNotFound   = errors.New("not found")
	ErrCapacity   = errors.New("party size exceeds table capacity")
	ErrConflict   = errors.New("slot already taken")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
)

var (
	// ErrMalformedInventory stored table definition breaks inventory invariants
	ErrMalformedInventory = errors.New("malformed table inventory")

	// ErrInvalidStatus unknown reservation status
	ErrInvalidStatus = errors.New("invalid reservation status")
)
