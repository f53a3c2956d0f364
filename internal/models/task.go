package models

import "time"

// Task column names, shared by filters and by the relational store.
const (
	TaskFieldID        = "id"
	TaskFieldListID    = "list_id"
	TaskFieldTitle     = "title"
	TaskFieldDueDate   = "due_date"
	TaskFieldCompleted = "completed"
	TaskFieldPriority  = "priority"
)

// TaskFields lists every field a Task can be filtered on.
var TaskFields = []string{
	TaskFieldID,
	TaskFieldListID,
	TaskFieldTitle,
	TaskFieldDueDate,
	TaskFieldCompleted,
	TaskFieldPriority,
}

// Task is a unit of work owned by exactly one List.
type Task struct {
	ID        int64      `json:"id"`
	ListID    int64      `json:"list_id"`
	Title     string     `json:"title"`
	DueDate   *time.Time `json:"due_date"`
	Completed bool       `json:"completed"`
	Priority  int        `json:"priority"`
}

// TaskDraft is the creation payload for a Task.
type TaskDraft struct {
	Title     Optional[string]    `json:"title"`
	ListID    Optional[int64]     `json:"list_id"`
	DueDate   Optional[time.Time] `json:"due_date"`
	Completed Optional[bool]      `json:"completed"`
	Priority  Optional[int]       `json:"priority"`
}

// NewTask builds an unsaved Task. Title and list id are required; the rest
// default to no due date, not completed and priority 0.
func NewTask(d TaskDraft) (*Task, error) {
	if !d.Title.Set || d.Title.Null {
		return nil, invalid(TaskFieldTitle, "is required")
	}
	if err := validTitle(d.Title.Value); err != nil {
		return nil, err
	}
	if !d.ListID.Set || d.ListID.Null {
		return nil, invalid(TaskFieldListID, "is required")
	}
	if d.ListID.Value <= 0 {
		return nil, invalid(TaskFieldListID, "must be a positive integer")
	}

	t := &Task{Title: d.Title.Value, ListID: d.ListID.Value}
	if d.DueDate.Set && !d.DueDate.Null {
		due := NormalizeTime(d.DueDate.Value)
		t.DueDate = &due
	}
	if d.Completed.Set {
		if d.Completed.Null {
			return nil, invalid(TaskFieldCompleted, "must not be null")
		}
		t.Completed = d.Completed.Value
	}
	if d.Priority.Set {
		if d.Priority.Null {
			return nil, invalid(TaskFieldPriority, "must not be null")
		}
		t.Priority = d.Priority.Value
	}
	return t, nil
}

// Validate checks the invariants a stored Task must hold.
func (t *Task) Validate() error {
	if err := validTitle(t.Title); err != nil {
		return err
	}
	if t.ListID <= 0 {
		return invalid(TaskFieldListID, "must be a positive integer")
	}
	return nil
}

// Field returns the value of a named field for equality lookups. A missing
// due date is reported as nil.
func (t *Task) Field(name string) (any, bool) {
	switch name {
	case TaskFieldID:
		return t.ID, true
	case TaskFieldListID:
		return t.ListID, true
	case TaskFieldTitle:
		return t.Title, true
	case TaskFieldDueDate:
		if t.DueDate == nil {
			return nil, true
		}
		return *t.DueDate, true
	case TaskFieldCompleted:
		return t.Completed, true
	case TaskFieldPriority:
		return t.Priority, true
	}
	return nil, false
}

// Apply merges a validated change set produced by TaskPatch.Changes. A nil
// due date clears it.
func (t *Task) Apply(changes map[string]any) {
	if v, ok := changes[TaskFieldTitle]; ok {
		t.Title = v.(string)
	}
	if v, ok := changes[TaskFieldDueDate]; ok {
		if v == nil {
			t.DueDate = nil
		} else {
			due := v.(time.Time)
			t.DueDate = &due
		}
	}
	if v, ok := changes[TaskFieldCompleted]; ok {
		t.Completed = v.(bool)
	}
	if v, ok := changes[TaskFieldPriority]; ok {
		t.Priority = v.(int)
	}
}

// TaskPatch is a partial update of a Task. The owning list cannot change.
type TaskPatch struct {
	Title     Optional[string]    `json:"title"`
	DueDate   Optional[time.Time] `json:"due_date"`
	Completed Optional[bool]      `json:"completed"`
	Priority  Optional[int]       `json:"priority"`
}

// Changes validates the patch and returns only the provided fields keyed by
// column name. An explicit null due date is kept as nil; null for any other
// field is rejected. Nothing is returned when any field is invalid.
func (p TaskPatch) Changes() (map[string]any, error) {
	if p.Title.Set {
		if p.Title.Null {
			return nil, invalid(TaskFieldTitle, "must not be null")
		}
		if err := validTitle(p.Title.Value); err != nil {
			return nil, err
		}
	}
	if p.Completed.Set && p.Completed.Null {
		return nil, invalid(TaskFieldCompleted, "must not be null")
	}
	if p.Priority.Set && p.Priority.Null {
		return nil, invalid(TaskFieldPriority, "must not be null")
	}
	if p.DueDate.Set && !p.DueDate.Null {
		p.DueDate.Value = NormalizeTime(p.DueDate.Value)
	}
	return StripAbsent(map[string]Field{
		TaskFieldTitle:     p.Title,
		TaskFieldDueDate:   p.DueDate,
		TaskFieldCompleted: p.Completed,
		TaskFieldPriority:  p.Priority,
	}), nil
}

// NormalizeTime brings timestamps to the precision and zone every backend
// can round-trip: UTC, microseconds.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
