package domain

import "errors"

// Sentinel errors for the list domain. Use errors.Is() to check these.
// A valid id belonging to another family surfaces as not-found, never as
// forbidden, so existence does not leak across families.
var (
	// ErrListNotFound indicates the requested list does not exist in the
	// caller's family.
	ErrListNotFound = errors.New("list not found")

	// ErrListItemNotFound indicates the requested item does not exist in the list.
	ErrListItemNotFound = errors.New("list item not found")

	// ErrInvalidListTitle indicates the list title violates domain constraints.
	ErrInvalidListTitle = errors.New("invalid list title")

	// ErrInvalidItemText indicates the item text violates domain constraints.
	ErrInvalidItemText = errors.New("invalid item text")

	// ErrInvalidPriority indicates a priority outside {low, normal, high}.
	ErrInvalidPriority = errors.New("invalid priority")
)
