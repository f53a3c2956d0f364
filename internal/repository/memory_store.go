package repository

import (
	"context"
	"iter"
	"slices"
	"sync"

	"github.com/gurkanbulca/doapi/internal/models"
)

// MemoryStore keeps lists and tasks in process memory for the lifetime of the
// value. Separate instances share nothing. Tasks reference their list by
// ListID only, so a list's tasks are always derived, never stored twice.
type MemoryStore struct {
	mu         sync.RWMutex
	lists      []*models.List
	tasks      []*models.Task
	nextListID int64
	nextTaskID int64
}

// NewMemoryStore returns an empty store whose ids start at 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextListID: 1, nextTaskID: 1}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) CreateList(ctx context.Context, l *models.List) error {
	if err := l.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	l.ID = s.nextListID
	s.nextListID++
	s.lists = append(s.lists, cloneList(l))
	return nil
}

func (s *MemoryStore) GetList(ctx context.Context, id int64) (*models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, l, err := FindIn(s.lists, EntityList, ByID(id))
	if err != nil {
		return nil, err
	}
	return cloneList(l), nil
}

func (s *MemoryStore) UpdateList(ctx context.Context, id int64, patch models.ListPatch) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, l, err := FindIn(s.lists, EntityList, ByID(id))
	if err != nil {
		return nil, err
	}
	changes, err := patch.Changes()
	if err != nil {
		return nil, err
	}
	l.Apply(changes)
	return cloneList(l), nil
}

func (s *MemoryStore) DeleteList(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, _, err := FindIn(s.lists, EntityList, ByID(id))
	if err != nil {
		return err
	}
	owned := ByListID(id)
	s.tasks = slices.DeleteFunc(s.tasks, func(t *models.Task) bool {
		return owned.Match(t)
	})
	s.lists = slices.Delete(s.lists, i, i+1)
	return nil
}

func (s *MemoryStore) Lists(ctx context.Context, f Filter) iter.Seq2[*models.List, error] {
	if err := f.Validate(models.ListFields); err != nil {
		return failed[*models.List](err)
	}
	return func(yield func(*models.List, error) bool) {
		s.mu.RLock()
		matched := slices.Collect(Query(s.lists, f))
		for i, l := range matched {
			matched[i] = cloneList(l)
		}
		s.mu.RUnlock()

		for _, l := range matched {
			if !yield(l, nil) {
				return
			}
		}
	}
}

func (s *MemoryStore) CreateTask(ctx context.Context, t *models.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, _, err := FindIn(s.lists, EntityList, ByID(t.ListID)); err != nil {
		return err
	}
	t.ID = s.nextTaskID
	s.nextTaskID++
	s.tasks = append(s.tasks, cloneTask(t))
	return nil
}

func (s *MemoryStore) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, t, err := FindIn(s.tasks, EntityTask, ByID(id))
	if err != nil {
		return nil, err
	}
	return cloneTask(t), nil
}

func (s *MemoryStore) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, t, err := FindIn(s.tasks, EntityTask, ByID(id))
	if err != nil {
		return nil, err
	}
	changes, err := patch.Changes()
	if err != nil {
		return nil, err
	}
	t.Apply(changes)
	return cloneTask(t), nil
}

func (s *MemoryStore) DeleteTask(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, _, err := FindIn(s.tasks, EntityTask, ByID(id))
	if err != nil {
		return err
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return nil
}

func (s *MemoryStore) Tasks(ctx context.Context, f Filter) iter.Seq2[*models.Task, error] {
	if err := f.Validate(models.TaskFields); err != nil {
		return failed[*models.Task](err)
	}
	return func(yield func(*models.Task, error) bool) {
		s.mu.RLock()
		matched := slices.Collect(Query(s.tasks, f))
		for i, t := range matched {
			matched[i] = cloneTask(t)
		}
		s.mu.RUnlock()

		for _, t := range matched {
			if !yield(t, nil) {
				return
			}
		}
	}
}

func cloneList(l *models.List) *models.List {
	c := *l
	return &c
}

func cloneTask(t *models.Task) *models.Task {
	c := *t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	return &c
}
