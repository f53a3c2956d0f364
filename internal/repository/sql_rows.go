package repository

import (
	"database/sql"

	"github.com/gurkanbulca/doapi/internal/models"
)

type listRow struct {
	ID       int64  `db:"id"`
	Title    string `db:"title"`
	Archived bool   `db:"archived"`
}

func (r listRow) model() *models.List {
	return &models.List{ID: r.ID, Title: r.Title, Archived: r.Archived}
}

type taskRow struct {
	ID        int64        `db:"id"`
	ListID    int64        `db:"list_id"`
	Title     string       `db:"title"`
	DueDate   sql.NullTime `db:"due_date"`
	Completed bool         `db:"completed"`
	Priority  int          `db:"priority"`
}

func (r taskRow) model() *models.Task {
	t := &models.Task{
		ID:        r.ID,
		ListID:    r.ListID,
		Title:     r.Title,
		Completed: r.Completed,
		Priority:  r.Priority,
	}
	if r.DueDate.Valid {
		due := models.NormalizeTime(r.DueDate.Time)
		t.DueDate = &due
	}
	return t
}

var (
	listColumns = []string{
		models.ListFieldID,
		models.ListFieldTitle,
		models.ListFieldArchived,
	}
	taskColumns = []string{
		models.TaskFieldID,
		models.TaskFieldListID,
		models.TaskFieldTitle,
		models.TaskFieldDueDate,
		models.TaskFieldCompleted,
		models.TaskFieldPriority,
	}
)

func nullTime(t *models.Task) sql.NullTime {
	if t.DueDate == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: models.NormalizeTime(*t.DueDate), Valid: true}
}
