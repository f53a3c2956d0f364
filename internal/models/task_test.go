package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask_Defaults(t *testing.T) {
	task, err := NewTask(TaskDraft{Title: Some("Eat donuts"), ListID: Some(int64(1))})
	require.NoError(t, err)

	assert.Equal(t, &Task{ListID: 1, Title: "Eat donuts"}, task)
	assert.Nil(t, task.DueDate)
	assert.False(t, task.Completed)
	assert.Zero(t, task.Priority)
}

func TestNewTask(t *testing.T) {
	due := time.Date(2026, 3, 1, 9, 30, 0, 123456789, time.FixedZone("CET", 3600))

	tests := []struct {
		name      string
		draft     TaskDraft
		want      *Task
		wantField string
	}{
		{
			name: "all fields",
			draft: TaskDraft{
				Title:     Some("Pay rent"),
				ListID:    Some(int64(3)),
				DueDate:   Some(due),
				Completed: Some(true),
				Priority:  Some(2),
			},
			want: &Task{
				ListID:    3,
				Title:     "Pay rent",
				DueDate:   ptr(time.Date(2026, 3, 1, 8, 30, 0, 123456000, time.UTC)),
				Completed: true,
				Priority:  2,
			},
		},
		{
			name:  "null due date means none",
			draft: TaskDraft{Title: Some("a"), ListID: Some(int64(1)), DueDate: Null[time.Time]()},
			want:  &Task{ListID: 1, Title: "a"},
		},
		{name: "missing title", draft: TaskDraft{ListID: Some(int64(1))}, wantField: TaskFieldTitle},
		{name: "missing list", draft: TaskDraft{Title: Some("a")}, wantField: TaskFieldListID},
		{name: "null list", draft: TaskDraft{Title: Some("a"), ListID: Null[int64]()}, wantField: TaskFieldListID},
		{name: "zero list", draft: TaskDraft{Title: Some("a"), ListID: Some(int64(0))}, wantField: TaskFieldListID},
		{
			name:      "null completed",
			draft:     TaskDraft{Title: Some("a"), ListID: Some(int64(1)), Completed: Null[bool]()},
			wantField: TaskFieldCompleted,
		},
		{
			name:      "null priority",
			draft:     TaskDraft{Title: Some("a"), ListID: Some(int64(1)), Priority: Null[int]()},
			wantField: TaskFieldPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTask(tt.draft)
			if tt.wantField != "" {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTaskPatch_Changes(t *testing.T) {
	due := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name    string
		body    string
		want    map[string]any
		wantErr bool
	}{
		{name: "empty", body: `{}`, want: map[string]any{}},
		{name: "completed only", body: `{"completed": true}`, want: map[string]any{TaskFieldCompleted: true}},
		{name: "null due date clears", body: `{"due_date": null}`, want: map[string]any{TaskFieldDueDate: nil}},
		{name: "due date", body: `{"due_date": "2026-01-02T03:04:05Z"}`, want: map[string]any{TaskFieldDueDate: due}},
		{name: "null title", body: `{"title": null}`, wantErr: true},
		{name: "null completed", body: `{"completed": null}`, wantErr: true},
		{name: "null priority", body: `{"priority": null, "completed": true}`, wantErr: true},
		{name: "blank title", body: `{"title": " "}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patch TaskPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &patch))

			got, err := patch.Changes()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTask_Apply(t *testing.T) {
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	task := &Task{ID: 1, ListID: 1, Title: "Eat donuts", DueDate: &due, Priority: 1}

	task.Apply(map[string]any{TaskFieldCompleted: true})
	assert.Equal(t, &Task{ID: 1, ListID: 1, Title: "Eat donuts", DueDate: &due, Completed: true, Priority: 1}, task)

	task.Apply(map[string]any{TaskFieldDueDate: nil})
	assert.Nil(t, task.DueDate)
	assert.True(t, task.Completed)
}

func TestTask_RoundTrip(t *testing.T) {
	due := time.Date(2026, 2, 14, 18, 0, 0, 0, time.UTC)
	original := &Task{ID: 9, ListID: 2, Title: "Dinner", DueDate: &due, Completed: true, Priority: 3}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var draft TaskDraft
	require.NoError(t, json.Unmarshal(data, &draft))
	copied, err := NewTask(draft)
	require.NoError(t, err)

	copied.ID = original.ID
	assert.Equal(t, original, copied)
}

func ptr[T any](v T) *T {
	return &v
}
