//go:build integration
// +build integration

package test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	mysqlcontainer "github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/coregx/boz"
)

// Prefix is the table prefix every integration database is opened with.
const Prefix = "wp_"

// DatabaseSetup encapsulates database connection and cleanup.
type DatabaseSetup struct {
	DB        *boz.DB
	Container testcontainers.Container
}

// Close cleans up database resources.
func (ds *DatabaseSetup) Close() {
	if ds.DB != nil {
		ds.DB.Close() //nolint:errcheck
	}
	if ds.Container != nil {
		ds.Container.Terminate(context.Background()) //nolint:errcheck
	}
}

// SetupMySQLTestDB creates a MySQL test database.
// MYSQL_TEST_DSN is used when set, otherwise MySQL is started in Docker.
func SetupMySQLTestDB(t *testing.T, opts ...boz.Option) *DatabaseSetup {
	ctx := context.Background()
	opts = append([]boz.Option{boz.WithPrefix(Prefix)}, opts...)

	if dsn := os.Getenv("MYSQL_TEST_DSN"); dsn != "" {
		db, err := boz.Open("mysql", normalizeDSN(t, dsn), opts...)
		require.NoError(t, err)
		return &DatabaseSetup{DB: db}
	}

	container, err := mysqlcontainer.Run(
		ctx,
		"mysql:8.0",
		mysqlcontainer.WithDatabase("testdb"),
		mysqlcontainer.WithUsername("user"),
		mysqlcontainer.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("port: 3306  MySQL Community Server").
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skip("Docker not available for MySQL integration tests: " + err.Error())
	}

	dsn, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := boz.Open("mysql", normalizeDSN(t, dsn), opts...)
	require.NoError(t, err)

	return &DatabaseSetup{
		DB:        db,
		Container: container,
	}
}

// normalizeDSN forces a utf8mb4 connection and rejects multi statements, so
// a stacked statement fails in the driver even when no validator is set.
func normalizeDSN(t *testing.T, dsn string) string {
	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	cfg.MultiStatements = false
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	cfg.Params["charset"] = "utf8mb4"
	return cfg.FormatDSN()
}

// CreatePostsTable creates wp_posts.
func CreatePostsTable(t *testing.T, db *boz.DB) {
	_, err := db.ExecContext(context.Background(), `
		CREATE TABLE IF NOT EXISTS wp_posts (
			ID INT AUTO_INCREMENT PRIMARY KEY,
			post_author INT NOT NULL,
			post_title VARCHAR(255) NOT NULL,
			post_status VARCHAR(20) NOT NULL DEFAULT 'publish',
			UNIQUE KEY post_title (post_title)
		)
	`)
	require.NoError(t, err)
}

// CreateUsersTable creates wp_users.
func CreateUsersTable(t *testing.T, db *boz.DB) {
	_, err := db.ExecContext(context.Background(), `
		CREATE TABLE IF NOT EXISTS wp_users (
			ID INT AUTO_INCREMENT PRIMARY KEY,
			user_login VARCHAR(60) NOT NULL
		)
	`)
	require.NoError(t, err)
}

// DropTables removes the integration tables.
func DropTables(t *testing.T, db *boz.DB) {
	_, err := db.ExecContext(context.Background(), "DROP TABLE IF EXISTS wp_posts, wp_users")
	require.NoError(t, err)
}

// SeedBlog creates both tables holding two users and three posts.
func SeedBlog(t *testing.T, db *boz.DB) {
	DropTables(t, db)
	CreateUsersTable(t, db)
	CreatePostsTable(t, db)

	ctx := context.Background()
	for _, login := range []string{"alice", "bob"} {
		_, err := db.Builder().From("users").InsertRow(ctx, []boz.Column{boz.Str("user_login", login)})
		require.NoError(t, err)
	}
	posts := []struct {
		author int
		title  string
		status string
	}{
		{1, "Hello world", "publish"},
		{1, "100% coverage", "draft"},
		{2, "It's done", "publish"},
	}
	for _, p := range posts {
		_, err := db.Builder().From("posts").InsertRow(ctx, []boz.Column{
			boz.Int("post_author", p.author),
			boz.Str("post_title", p.title),
			boz.Str("post_status", p.status),
		})
		require.NoError(t, err)
	}
}
