package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Session is one unit of work: a Store scoped to a single request that is
// committed on success and rolled back on failure.
type Session interface {
	Store() Store
	Commit() error
	// Rollback is safe to call after Commit.
	Rollback() error
}

// Sessions opens a Session per request.
type Sessions interface {
	Begin(ctx context.Context) (Session, error)
}

// SQLSessions opens a database transaction per session.
type SQLSessions struct {
	db      *sqlx.DB
	dialect string
}

// NewSQLSessions returns Sessions over db. dialect is the ent dialect name.
func NewSQLSessions(db *sqlx.DB, dialect string) *SQLSessions {
	return &SQLSessions{db: db, dialect: dialect}
}

func (s *SQLSessions) Begin(ctx context.Context) (Session, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &sqlSession{tx: tx, store: NewSQLStore(tx, s.dialect)}, nil
}

type sqlSession struct {
	tx    *sqlx.Tx
	store *SQLStore
}

func (s *sqlSession) Store() Store {
	return s.store
}

func (s *sqlSession) Commit() error {
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *sqlSession) Rollback() error {
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}

// MemorySessions hands out the same MemoryStore to every session. Commit and
// rollback are no-ops: the store applies each mutation immediately.
type MemorySessions struct {
	store *MemoryStore
}

// NewMemorySessions returns Sessions over store.
func NewMemorySessions(store *MemoryStore) *MemorySessions {
	return &MemorySessions{store: store}
}

func (s *MemorySessions) Begin(ctx context.Context) (Session, error) {
	return memorySession{store: s.store}, nil
}

type memorySession struct {
	store *MemoryStore
}

func (s memorySession) Store() Store    { return s.store }
func (s memorySession) Commit() error   { return nil }
func (s memorySession) Rollback() error { return nil }
