package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrate_SQLiteLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.db")

	out, err := run(t, "--driver", "sqlite", "--dsn", path, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "pending")

	out, err = run(t, "--driver", "sqlite", "--dsn", path, "up")
	require.NoError(t, err)
	assert.Contains(t, out, "00001_create_itineraries.sql")

	out, err = run(t, "--driver", "sqlite", "--dsn", path, "up")
	require.NoError(t, err)
	assert.Contains(t, out, "no pending migrations")

	out, err = run(t, "--driver", "sqlite", "--dsn", path, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "applied")

	out, err = run(t, "--driver", "sqlite", "--dsn", path, "down")
	require.NoError(t, err)
	assert.Contains(t, out, "rolled back 00001_create_itineraries.sql")
}

func TestMigrate_UnknownDriver(t *testing.T) {
	_, err := run(t, "--driver", "oracle", "up")

	assert.ErrorContains(t, err, "unsupported driver")
}

func TestMigrate_PostgresNeedsDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := run(t, "--driver", "postgres", "status")

	assert.ErrorContains(t, err, "DATABASE_URL")
}
