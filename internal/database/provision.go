package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"entgo.io/ent/dialect"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrDatabaseExists is returned by Create when the database is already there.
var ErrDatabaseExists = errors.New("database already exists")

// Provisioner creates and drops the database a Descriptor points at.
type Provisioner interface {
	Create(ctx context.Context) error
	Drop(ctx context.Context) error
	Exists(ctx context.Context) (bool, error)
}

// NewProvisioner returns the Provisioner for desc's dialect.
func NewProvisioner(desc Descriptor) (Provisioner, error) {
	switch desc.Dialect {
	case dialect.Postgres:
		return &postgresProvisioner{desc: desc}, nil
	case dialect.SQLite:
		return &sqliteProvisioner{desc: desc}, nil
	}
	return nil, fmt.Errorf("%w: dialect %q", ErrUnsupportedURL, desc.Dialect)
}

// postgresProvisioner works through the server's maintenance database since
// a database cannot create or drop itself.
type postgresProvisioner struct {
	desc Descriptor
}

func (p *postgresProvisioner) withMaintenance(ctx context.Context, fn func(*sqlx.DB) error) error {
	db, err := Open(ctx, p.desc.maintenance(), Config{MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func (p *postgresProvisioner) Exists(ctx context.Context) (bool, error) {
	var exists bool
	err := p.withMaintenance(ctx, func(db *sqlx.DB) error {
		return db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", p.desc.Name)
	})
	if err != nil {
		return false, fmt.Errorf("check database %s: %w", p.desc.Name, err)
	}
	return exists, nil
}

func (p *postgresProvisioner) Create(ctx context.Context) error {
	exists, err := p.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDatabaseExists, p.desc.Name)
	}
	err = p.withMaintenance(ctx, func(db *sqlx.DB) error {
		_, err := db.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(p.desc.Name))
		return err
	})
	if err != nil {
		return fmt.Errorf("create database %s: %w", p.desc.Name, err)
	}
	return nil
}

func (p *postgresProvisioner) Drop(ctx context.Context) error {
	err := p.withMaintenance(ctx, func(db *sqlx.DB) error {
		_, err := db.ExecContext(ctx, "DROP DATABASE IF EXISTS "+pq.QuoteIdentifier(p.desc.Name))
		return err
	})
	if err != nil {
		return fmt.Errorf("drop database %s: %w", p.desc.Name, err)
	}
	return nil
}

// sqliteProvisioner manages the database file. In-memory databases always
// exist and have nothing to create or drop.
type sqliteProvisioner struct {
	desc Descriptor
}

func (p *sqliteProvisioner) Exists(ctx context.Context) (bool, error) {
	if p.desc.InMemory() {
		return true, nil
	}
	_, err := os.Stat(p.desc.Name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check database %s: %w", p.desc.Name, err)
	}
	return true, nil
}

func (p *sqliteProvisioner) Create(ctx context.Context) error {
	if p.desc.InMemory() {
		return nil
	}
	f, err := os.OpenFile(p.desc.Name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrDatabaseExists, p.desc.Name)
	}
	if err != nil {
		return fmt.Errorf("create database %s: %w", p.desc.Name, err)
	}
	return f.Close()
}

func (p *sqliteProvisioner) Drop(ctx context.Context) error {
	if p.desc.InMemory() {
		return nil
	}
	if err := os.Remove(p.desc.Name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("drop database %s: %w", p.desc.Name, err)
	}
	return nil
}
