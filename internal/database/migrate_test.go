package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	desc, err := ParseURL("sqlite://" + filepath.Join(t.TempDir(), "do.db"))
	require.NoError(t, err)

	db, err := Open(ctx, desc, DefaultConfig())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db, desc.Dialect))
	require.NoError(t, Migrate(ctx, db, desc.Dialect), "migrating twice is a no-op")

	var tables []string
	require.NoError(t, db.SelectContext(ctx, &tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('lists', 'tasks') ORDER BY name"))
	assert.Equal(t, []string{TableLists, TableTasks}, tables)

	_, err = db.ExecContext(ctx, "INSERT INTO lists (title) VALUES ('Shopping')")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO tasks (list_id, title) VALUES (1, 'Milk')")
	require.NoError(t, err)

	var task struct {
		Completed bool `db:"completed"`
		Priority  int  `db:"priority"`
	}
	require.NoError(t, db.GetContext(ctx, &task, "SELECT completed, priority FROM tasks WHERE id = 1"))
	assert.False(t, task.Completed)
	assert.Zero(t, task.Priority)

	_, err = db.ExecContext(ctx, "INSERT INTO tasks (list_id, title) VALUES (99, 'Orphan')")
	assert.Error(t, err, "foreign key rejects unknown lists")

	_, err = db.ExecContext(ctx, "DELETE FROM lists WHERE id = 1")
	require.NoError(t, err)
	var remaining int
	require.NoError(t, db.GetContext(ctx, &remaining, "SELECT COUNT(*) FROM tasks"))
	assert.Zero(t, remaining, "deleting a list cascades to its tasks")
}
