package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every *NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")
	// ErrInvalidFilter is returned when a filter names a field the entity does not have.
	ErrInvalidFilter = errors.New("invalid filter")
)

// Entity names used in errors.
const (
	EntityList = "list"
	EntityTask = "task"
)

// NotFoundError reports a required lookup that matched nothing.
type NotFoundError struct {
	Entity string
	Filter Filter
}

func (e *NotFoundError) Error() string {
	if len(e.Filter) == 0 {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s not found (%s)", e.Entity, e.Filter)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(entity string, f Filter) error {
	return &NotFoundError{Entity: entity, Filter: f}
}
