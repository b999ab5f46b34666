package ecs

import "errors"

var (
	// ErrEntityNotFound is returned when an operation targets an entity that is not alive.
	ErrEntityNotFound = errors.New("ecs: entity not found")
	// ErrSingletonNotFound is returned when a singleton type has not been added.
	ErrSingletonNotFound = errors.New("ecs: singleton not found")
)
