package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrQuotationInUse is returned when creating a trip would bind a
	// quotation that already backs a non-cancelled trip. It is raised by
	// the storage layer's unique constraint, not by a read-then-check.
	ErrQuotationInUse = errors.New("quotation already bound to an active trip")
)
