package bakery

import "errors"

var (
	// ErrBakeryNotFound is returned when a bakery ID does not exist.
	ErrBakeryNotFound = errors.New("bakery not found")

	// ErrBakedGoodNotFound is returned when a baked good ID does not exist,
	// or when asking for the most expensive item of an empty table.
	ErrBakedGoodNotFound = errors.New("baked good not found")

	// ErrMissingFields is returned when a required form field is absent or blank.
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidPrice is returned when price is not a finite, non-negative number.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidBakeryID is returned when bakery_id is not a positive integer.
	ErrInvalidBakeryID = errors.New("invalid bakery_id")

	// ErrInvalidName is returned when a name is blank.
	ErrInvalidName = errors.New("invalid name")

	// ErrImmutableField is returned when an update names a field that cannot change.
	ErrImmutableField = errors.New("field cannot be updated")

	// ErrUnknownBakery is returned when a baked good references a bakery that does not exist.
	ErrUnknownBakery = errors.New("unknown bakery")
)
