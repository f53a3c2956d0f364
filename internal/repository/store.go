// Package repository holds the entity store for lists and tasks: the Store
// contract, its in-memory and relational implementations, equality filters
// with the lookup helpers built on them, and per-request sessions.
package repository

import (
	"context"
	"iter"

	"github.com/gurkanbulca/doapi/internal/models"
)

// Store creates, reads, updates and deletes lists and tasks. Every mutation
// is visible to the next read on the same Store.
//
// Lists and Tasks return lazy sequences in insertion order. Each range over
// a returned sequence runs the lookup again.
type Store interface {
	CreateList(ctx context.Context, l *models.List) error
	GetList(ctx context.Context, id int64) (*models.List, error)
	UpdateList(ctx context.Context, id int64, patch models.ListPatch) (*models.List, error)
	// DeleteList removes the list and every task it owns.
	DeleteList(ctx context.Context, id int64) error
	Lists(ctx context.Context, f Filter) iter.Seq2[*models.List, error]

	// CreateTask fails with a *NotFoundError when the owning list does not exist.
	CreateTask(ctx context.Context, t *models.Task) error
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	Tasks(ctx context.Context, f Filter) iter.Seq2[*models.Task, error]
}

func failed[T any](err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		yield(zero, err)
	}
}
