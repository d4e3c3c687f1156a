package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "boz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	t.Setenv("BOZ_TEST_PASSWORD", "s3cret")

	path := writeConfig(t, `
database:
  driver: mysql
  host: db.internal
  port: 3307
  name: blog
  user: app
  password: ${BOZ_TEST_PASSWORD}
  prefix: wp_
  maxOpenConns: 20
log:
  backend: zap
  level: debug
debug: true
audit: writes
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3307, cfg.Database.Port)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "wp_", cfg.Database.Prefix)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)
	assert.Equal(t, "zap", cfg.Log.Backend)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "writes", cfg.Audit)
	assert.False(t, cfg.Validate)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "database:\n  host: from-file\n")
	t.Setenv("BOZ_DATABASE_HOST", "from-env")
	t.Setenv("BOZ_DATABASE_PREFIX", "p_")
	t.Setenv("BOZ_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Host)
	assert.Equal(t, "p_", cfg.Database.Prefix)
	assert.True(t, cfg.Debug)
}

func TestLoad_UnresolvedPlaceholderIsKept(t *testing.T) {
	path := writeConfig(t, "database:\n  user: ${BOZ_TEST_UNSET_VARIABLE}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "${BOZ_TEST_UNSET_VARIABLE}", cfg.Database.User)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "slog", cfg.Log.Backend)
	assert.Equal(t, "none", cfg.Audit)
}

func TestDSN_MySQL(t *testing.T) {
	c := DatabaseConfig{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		Name:     "blog",
		User:     "app",
		Password: "p@ss:word",
		Charset:  "utf8mb4",
	}

	parsed, err := mysql.ParseDSN(c.DSN())
	require.NoError(t, err)
	assert.Equal(t, "app", parsed.User)
	assert.Equal(t, "p@ss:word", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "localhost:3306", parsed.Addr)
	assert.Equal(t, "blog", parsed.DBName)
	assert.Equal(t, "utf8mb4", parsed.Params["charset"])
}

func TestDSN_Other(t *testing.T) {
	assert.Equal(t, ":memory:", (&DatabaseConfig{Driver: "sqlite"}).DSN())
	assert.Equal(t, "blog.db", (&DatabaseConfig{Driver: "sqlite", Name: "blog.db"}).DSN())
	assert.Equal(t, "", (&DatabaseConfig{Driver: "oracle"}).DSN())
}
