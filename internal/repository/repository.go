package repository

import "errors"

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) inside this directory.
// Lookups that match no row return sql.ErrNoRows unchanged; services translate it.

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

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate record")
