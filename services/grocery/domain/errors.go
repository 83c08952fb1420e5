package domain

import "errors"

var (
	// ErrGroceryItemNotFound is returned when a grocery item id does not
	// resolve within the caller's family.
	ErrGroceryItemNotFound = errors.New("grocery item not found")

	// ErrInvalidItemName is returned when a grocery item name is empty or
	// whitespace only.
	ErrInvalidItemName = errors.New("grocery item name is required")

	// ErrInvalidUnit is returned for an unknown unit value.
	ErrInvalidUnit = errors.New("invalid grocery unit")

	// ErrInvalidCategory is returned for an unknown category value.
	ErrInvalidCategory = errors.New("invalid grocery category")

	// ErrInvalidPriority is returned for an unknown priority value.
	ErrInvalidPriority = errors.New("invalid grocery priority")

	// ErrInvalidFrequency is returned for an unknown recurrence frequency.
	ErrInvalidFrequency = errors.New("invalid recurrence frequency")
)
