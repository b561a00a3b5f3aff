package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")
}

func TestMigrateSQLite(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "auth.db")
	t.Setenv("AUTH_DATABASE_DRIVER", "sqlite")
	t.Setenv("AUTH_DATABASE_FILE", dbFile)

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"migrate"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Migrations completed successfully")
	assert.FileExists(t, dbFile)

	// Running again is a no-op.
	out.Reset()
	cmd.SetArgs([]string{"migrate"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Migrations completed successfully")
}

func TestMigrateRejectsBadDriver(t *testing.T) {
	t.Setenv("AUTH_DATABASE_DRIVER", "mysql")

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"migrate"})

	require.ErrorContains(t, cmd.Execute(), "unknown AUTH_DATABASE_DRIVER")
}
