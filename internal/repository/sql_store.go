package repository

import (
	"context"
	"fmt"
	"iter"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	"github.com/gurkanbulca/doapi/internal/database"
	"github.com/gurkanbulca/doapi/internal/models"
)

// SQLStore is the relational Store. It runs every statement on db, which is
// normally the transaction of one session. A list's tasks are found through
// the tasks.list_id foreign key.
type SQLStore struct {
	db      sqlx.ExtContext
	dialect string
}

// NewSQLStore returns a Store over db using the ent dialect name
// ("postgres" or "sqlite3") to build queries.
func NewSQLStore(db sqlx.ExtContext, dialect string) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

var _ Store = (*SQLStore)(nil)

// columnID is the primary key of both tables; ordering by it is insertion order.
const columnID = "id"

func (s *SQLStore) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

func (s *SQLStore) CreateList(ctx context.Context, l *models.List) error {
	if err := l.Validate(); err != nil {
		return err
	}
	query, args := s.builder().
		Insert(database.TableLists).
		Columns(models.ListFieldTitle, models.ListFieldArchived).
		Values(l.Title, l.Archived).
		Returning(models.ListFieldID).
		Query()
	if err := sqlx.GetContext(ctx, s.db, &l.ID, query, args...); err != nil {
		return fmt.Errorf("insert list: %w", err)
	}
	return nil
}

func (s *SQLStore) GetList(ctx context.Context, id int64) (*models.List, error) {
	return FindOne(s.Lists(ctx, ByID(id)), EntityList, ByID(id))
}

func (s *SQLStore) UpdateList(ctx context.Context, id int64, patch models.ListPatch) (*models.List, error) {
	current, err := s.GetList(ctx, id)
	if err != nil {
		return nil, err
	}
	changes, err := patch.Changes()
	if err != nil {
		return nil, err
	}
	if err := s.update(ctx, database.TableLists, id, changes); err != nil {
		return nil, fmt.Errorf("update list %d: %w", id, err)
	}
	current.Apply(changes)
	return current, nil
}

func (s *SQLStore) DeleteList(ctx context.Context, id int64) error {
	if _, err := s.GetList(ctx, id); err != nil {
		return err
	}
	// Owned tasks go first; the ON DELETE CASCADE foreign key covers the
	// same rows when the database enforces it.
	if _, err := s.delete(ctx, database.TableTasks, ByListID(id)); err != nil {
		return fmt.Errorf("delete tasks of list %d: %w", id, err)
	}
	n, err := s.delete(ctx, database.TableLists, ByID(id))
	if err != nil {
		return fmt.Errorf("delete list %d: %w", id, err)
	}
	if n == 0 {
		return notFound(EntityList, ByID(id))
	}
	return nil
}

func (s *SQLStore) Lists(ctx context.Context, f Filter) iter.Seq2[*models.List, error] {
	query, args, err := s.selectQuery(database.TableLists, listColumns, models.ListFields, f)
	if err != nil {
		return failed[*models.List](err)
	}
	return stream(ctx, s.db, query, args, listRow.model)
}

func (s *SQLStore) CreateTask(ctx context.Context, t *models.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, err := s.GetList(ctx, t.ListID); err != nil {
		return err
	}
	query, args := s.builder().
		Insert(database.TableTasks).
		Columns(
			models.TaskFieldListID,
			models.TaskFieldTitle,
			models.TaskFieldDueDate,
			models.TaskFieldCompleted,
			models.TaskFieldPriority,
		).
		Values(t.ListID, t.Title, nullTime(t), t.Completed, t.Priority).
		Returning(models.TaskFieldID).
		Query()
	if err := sqlx.GetContext(ctx, s.db, &t.ID, query, args...); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *SQLStore) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	return FindOne(s.Tasks(ctx, ByID(id)), EntityTask, ByID(id))
}

func (s *SQLStore) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	current, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	changes, err := patch.Changes()
	if err != nil {
		return nil, err
	}
	if err := s.update(ctx, database.TableTasks, id, changes); err != nil {
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}
	current.Apply(changes)
	return current, nil
}

func (s *SQLStore) DeleteTask(ctx context.Context, id int64) error {
	n, err := s.delete(ctx, database.TableTasks, ByID(id))
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if n == 0 {
		return notFound(EntityTask, ByID(id))
	}
	return nil
}

func (s *SQLStore) Tasks(ctx context.Context, f Filter) iter.Seq2[*models.Task, error] {
	query, args, err := s.selectQuery(database.TableTasks, taskColumns, models.TaskFields, f)
	if err != nil {
		return failed[*models.Task](err)
	}
	return stream(ctx, s.db, query, args, taskRow.model)
}

func (s *SQLStore) selectQuery(table string, columns, known []string, f Filter) (string, []any, error) {
	if err := f.Validate(known); err != nil {
		return "", nil, err
	}
	sel := s.builder().
		Select(columns...).
		From(entsql.Table(table)).
		OrderBy(columnID)
	if p := predicate(f); p != nil {
		sel.Where(p)
	}
	query, args := sel.Query()
	return query, args, nil
}

func (s *SQLStore) update(ctx context.Context, table string, id int64, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	upd := s.builder().Update(table).Where(entsql.EQ(columnID, id))
	for _, column := range Filter(changes).Keys() {
		if v := changes[column]; v == nil {
			upd.SetNull(column)
		} else {
			upd.Set(column, v)
		}
	}
	query, args := upd.Query()
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *SQLStore) delete(ctx context.Context, table string, f Filter) (int64, error) {
	query, args := s.builder().Delete(table).Where(predicate(f)).Query()
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// predicate turns f into a WHERE clause, or nil for the empty filter.
func predicate(f Filter) *entsql.Predicate {
	keys := f.Keys()
	preds := make([]*entsql.Predicate, 0, len(keys))
	for _, column := range keys {
		if v := canonical(f[column]); v == nil {
			preds = append(preds, entsql.IsNull(column))
		} else {
			preds = append(preds, entsql.EQ(column, v))
		}
	}
	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	}
	return entsql.And(preds...)
}

// stream runs query on every range and yields each row converted to a model.
func stream[R any, T any](ctx context.Context, db sqlx.QueryerContext, query string, args []any, convert func(R) T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		rows, err := db.QueryxContext(ctx, query, args...)
		if err != nil {
			yield(zero, fmt.Errorf("query: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var row R
			if err := rows.StructScan(&row); err != nil {
				yield(zero, fmt.Errorf("scan row: %w", err))
				return
			}
			if !yield(convert(row), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, fmt.Errorf("iterate rows: %w", err))
		}
	}
}
