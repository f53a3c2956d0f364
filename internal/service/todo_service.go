package service

import (
	"context"
	"fmt"

	"github.com/gurkanbulca/doapi/internal/models"
	"github.com/gurkanbulca/doapi/internal/repository"
)

// ListSummary is a List as shown in the collection: its tasks by id only.
type ListSummary struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Archived bool    `json:"archived"`
	Tasks    []int64 `json:"tasks"`
}

// ListDetail is a List with its tasks resolved.
type ListDetail struct {
	ID       int64          `json:"id"`
	Title    string         `json:"title"`
	Archived bool           `json:"archived"`
	Tasks    []*models.Task `json:"tasks"`
}

// TodoService shapes documents out of a Store. It holds no state of its own,
// so one is cheap to build per request session.
type TodoService struct {
	store repository.Store
}

func NewTodoService(store repository.Store) *TodoService {
	return &TodoService{
		store: store,
	}
}

// Lists returns every list matching f with its task ids.
func (s *TodoService) Lists(ctx context.Context, f repository.Filter) ([]ListSummary, error) {
	lists, err := repository.Collect(s.store.Lists(ctx, f))
	if err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}

	summaries := make([]ListSummary, 0, len(lists))
	for _, l := range lists {
		tasks, err := repository.Collect(s.store.Tasks(ctx, repository.ByListID(l.ID)))
		if err != nil {
			return nil, fmt.Errorf("query tasks of list %d: %w", l.ID, err)
		}
		ids := make([]int64, 0, len(tasks))
		for _, t := range tasks {
			ids = append(ids, t.ID)
		}
		summaries = append(summaries, ListSummary{
			ID:       l.ID,
			Title:    l.Title,
			Archived: l.Archived,
			Tasks:    ids,
		})
	}
	return summaries, nil
}

// List returns one list with its tasks.
func (s *TodoService) List(ctx context.Context, id int64) (*ListDetail, error) {
	l, err := s.store.GetList(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, l)
}

// CreateList validates the draft and stores a new list.
func (s *TodoService) CreateList(ctx context.Context, draft models.ListDraft) (*ListDetail, error) {
	l, err := models.NewList(draft)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateList(ctx, l); err != nil {
		return nil, err
	}
	return &ListDetail{ID: l.ID, Title: l.Title, Archived: l.Archived, Tasks: []*models.Task{}}, nil
}

// UpdateList merges the provided fields into a list.
func (s *TodoService) UpdateList(ctx context.Context, id int64, patch models.ListPatch) (*ListDetail, error) {
	l, err := s.store.UpdateList(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, l)
}

// DeleteList removes a list and its tasks.
func (s *TodoService) DeleteList(ctx context.Context, id int64) error {
	return s.store.DeleteList(ctx, id)
}

// Tasks returns every task matching f.
func (s *TodoService) Tasks(ctx context.Context, f repository.Filter) ([]*models.Task, error) {
	tasks, err := repository.Collect(s.store.Tasks(ctx, f))
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return tasks, nil
}

// Task returns one task.
func (s *TodoService) Task(ctx context.Context, id int64) (*models.Task, error) {
	return s.store.GetTask(ctx, id)
}

// CreateTask validates the draft and stores a new task in an existing list.
func (s *TodoService) CreateTask(ctx context.Context, draft models.TaskDraft) (*models.Task, error) {
	t, err := models.NewTask(draft)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTask merges the provided fields into a task.
func (s *TodoService) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	return s.store.UpdateTask(ctx, id, patch)
}

// DeleteTask removes a task; its list no longer reports it.
func (s *TodoService) DeleteTask(ctx context.Context, id int64) error {
	return s.store.DeleteTask(ctx, id)
}

func (s *TodoService) detail(ctx context.Context, l *models.List) (*ListDetail, error) {
	tasks, err := repository.Collect(s.store.Tasks(ctx, repository.ByListID(l.ID)))
	if err != nil {
		return nil, fmt.Errorf("query tasks of list %d: %w", l.ID, err)
	}
	return &ListDetail{ID: l.ID, Title: l.Title, Archived: l.Archived, Tasks: tasks}, nil
}
