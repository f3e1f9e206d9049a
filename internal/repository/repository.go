package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import "errors"

// Sentinel errors surfaced by implementations when a database constraint
// rejects a write. Services translate these into their own error
// vocabulary; callers should match with errors.Is.
var (
	// ErrDuplicateEmail is returned when a customer insert/update violates
	// the unique email constraint.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrCustomerMissing is returned when an order insert/update references
	// a customer id that does not exist (foreign key violation).
	ErrCustomerMissing = errors.New("customer does not exist")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
