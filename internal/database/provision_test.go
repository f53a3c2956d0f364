package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteProvisioner(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "do.db")
	desc, err := ParseURL("sqlite://" + path)
	require.NoError(t, err)

	p, err := NewProvisioner(desc)
	require.NoError(t, err)

	exists, err := p.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, p.Create(ctx))
	exists, err = p.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.ErrorIs(t, p.Create(ctx), ErrDatabaseExists)

	require.NoError(t, p.Drop(ctx))
	require.NoError(t, p.Drop(ctx), "dropping a missing database is not an error")
	exists, err = p.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSQLiteProvisioner_InMemory(t *testing.T) {
	ctx := context.Background()
	desc, err := ParseURL("sqlite://provision?mode=memory&cache=shared")
	require.NoError(t, err)

	p, err := NewProvisioner(desc)
	require.NoError(t, err)

	require.NoError(t, p.Create(ctx))
	exists, err := p.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, p.Drop(ctx))
}
