package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/boz"
)

// setupConfig creates a SQLite database holding wp_posts and returns the
// path of a configuration file pointing at it.
func setupConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "boz.db")

	db, err := boz.Open("sqlite", dbPath)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = db.ExecContext(ctx, "CREATE TABLE wp_posts (ID INTEGER PRIMARY KEY, post_title TEXT, post_status TEXT)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO wp_posts VALUES
		(1, 'Hello', 'publish'),
		(2, 'Draft', 'draft'),
		(3, 'World', 'publish')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "database:\n" +
		"  driver: sqlite\n" +
		"  name: " + dbPath + "\n" +
		"  prefix: wp_\n" +
		"  maxOpenConns: 1\n" +
		"log:\n" +
		"  backend: none\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	return cfgPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSelect(t *testing.T) {
	cfg := setupConfig(t)

	out, err := run(t, "select", "--config", cfg,
		"--from", "posts",
		"--select", "ID,post_title",
		"--where", "post_status = 'publish'",
		"--order", "ID:desc",
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "SELECT ID, post_title FROM `wp_posts` AS `posts` WHERE post_status = 'publish' ORDER BY ID DESC", lines[0])
	assert.JSONEq(t, `{"ID":"3","post_title":"World"}`, lines[1])
	assert.JSONEq(t, `{"ID":"1","post_title":"Hello"}`, lines[2])
}

func TestSelect_LimitOffset(t *testing.T) {
	cfg := setupConfig(t)

	out, err := run(t, "select", "--config", cfg,
		"--from", "posts",
		"--select", "ID",
		"--order", "ID",
		"--limit", "1",
		"--offset", "1",
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "SELECT ID FROM `wp_posts` AS `posts` ORDER BY ID LIMIT 1, 1", lines[0])
	assert.JSONEq(t, `{"ID":"2"}`, lines[1])
}

func TestSelect_DryRun(t *testing.T) {
	cfg := setupConfig(t)

	out, err := run(t, "select", "--config", cfg,
		"--from", "missing_table",
		"--where", "a = 1",
		"--where", "b = 2",
		"--dry-run",
	)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM `wp_missing_table` AS `missing_table` WHERE a = 1 AND b = 2\n", out)
}

func TestSelect_RequiresFrom(t *testing.T) {
	cfg := setupConfig(t)

	_, err := run(t, "select", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from")
}

func TestDelete_DryRun(t *testing.T) {
	cfg := setupConfig(t)

	out, err := run(t, "delete", "--config", cfg,
		"--from", "posts",
		"--where", "post_status = 'draft'",
		"--limit", "5",
		"--dry-run",
	)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `wp_posts` AS `posts` WHERE post_status = 'draft' LIMIT 5\n", out)
}

func TestDelete(t *testing.T) {
	cfg := setupConfig(t)

	out, err := run(t, "delete", "--config", cfg,
		"--from", "posts",
		"--where", "post_status = 'draft'",
	)
	require.NoError(t, err)
	assert.Equal(t, "1 rows deleted\n", out)

	out, err = run(t, "select", "--config", cfg, "--from", "posts", "--select", "COUNT(*) AS n")
	require.NoError(t, err)
	assert.Contains(t, out, `{"n":"2"}`)
}

func TestDelete_Blocked(t *testing.T) {
	cfg := setupConfig(t)

	tests := []struct {
		name   string
		args   []string
		reason boz.BlockReason
	}{
		{
			name:   "no condition",
			args:   []string{"--from", "posts"},
			reason: boz.NoCondition,
		},
		{
			name:   "two tables",
			args:   []string{"--from", "posts,comments", "--where", "1 = 1"},
			reason: boz.MultiTableSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"delete", "--config", cfg}, tt.args...)...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, boz.ErrBlockedUnsafeMutation))

			var blocked *boz.BlockedUnsafeMutationError
			require.ErrorAs(t, err, &blocked)
			assert.Equal(t, tt.reason, blocked.Reason)
		})
	}

	out, err := run(t, "select", "--config", cfg, "--from", "posts", "--select", "COUNT(*) AS n")
	require.NoError(t, err)
	assert.Contains(t, out, `{"n":"3"}`)
}

func TestParseOrder(t *testing.T) {
	col, dir := parseOrder("post_date:desc")
	assert.Equal(t, "post_date", col)
	assert.Equal(t, "desc", dir)

	col, dir = parseOrder("ID")
	assert.Equal(t, "ID", col)
	assert.Equal(t, "", dir)
}
