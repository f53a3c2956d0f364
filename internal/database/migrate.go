package database

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/jmoiron/sqlx"
)

// Migrate brings the lists and tasks tables up to date. The driver is not
// closed; db stays usable afterwards.
func Migrate(ctx context.Context, db *sqlx.DB, dialectName string) error {
	drv := entsql.OpenDB(dialectName, db.DB)
	m, err := schema.NewMigrate(
		drv,
		schema.WithDropIndex(true),
		schema.WithDropColumn(true),
		schema.WithForeignKeys(true),
	)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("run migration: %w", err)
	}
	return nil
}
