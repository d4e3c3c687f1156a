package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/coregx/boz"
)

type benchPost struct {
	ID    int    `db:"ID"`
	Title string `db:"post_title"`
}

func setupBenchDB(b *testing.B) *boz.DB {
	b.Helper()
	db, err := boz.Open("sqlite", ":memory:", boz.WithPrefix("wp_"), boz.WithMaxOpenConns(1))
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "CREATE TABLE wp_posts (ID INTEGER PRIMARY KEY, post_title TEXT)"); err != nil {
		b.Fatal(err)
	}
	for i := 1; i <= 100; i++ {
		_, err := db.Builder().From("posts").InsertRow(ctx, []boz.Column{
			boz.Int("ID", i),
			boz.Str("post_title", fmt.Sprintf("post %d", i)),
		})
		if err != nil {
			b.Fatal(err)
		}
	}
	if err := db.RegisterShape("post", benchPost{}); err != nil {
		b.Fatal(err)
	}
	return db
}

func BenchmarkCompileSelect(b *testing.B) {
	db := boz.WrapDB(nil, "mysql", boz.WithPrefix("wp_"))

	b.Run("Simple", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = db.Builder().Select("ID").From("posts").WhereInt("ID", 1).CompileSelect()
		}
	})

	b.Run("JoinInLike", func(b *testing.B) {
		ids := boz.Values([]int{1, 2, 3, 4, 5, 6, 7, 8})
		for i := 0; i < b.N; i++ {
			_, _ = db.Builder().
				Select("posts.ID", "users.user_login").
				From("posts").
				JoinOn("LEFT", "users", "posts.post_author", "users.ID").
				WhereIn("posts.ID", ids...).
				WhereLike("posts.post_title", "50% off", true, true).
				OrderBy("posts.ID", "desc").
				Limit(10, 20).
				CompileSelect()
		}
	})

	b.Run("Compiled", func(b *testing.B) {
		q := db.Builder().Select("ID").From("posts").WhereStr("post_status", "publish")
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = q.CompileSelect()
		}
	})
}

func BenchmarkResults(b *testing.B) {
	db := setupBenchDB(b)
	ctx := context.Background()

	b.Run("Row", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = db.Builder().From("posts").Limit(10).Results(ctx)
		}
	})

	b.Run("Struct", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = db.Builder(boz.WithShape("post")).From("posts").Limit(10).Results(ctx)
		}
	})

	b.Run("Each", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			for _, err := range db.Builder().From("posts").Each(ctx) {
				if err != nil {
					b.Fatal(err)
				}
			}
		}
	})
}

func BenchmarkValue(b *testing.B) {
	db := setupBenchDB(b)
	ctx := context.Background()

	for i := 0; i < b.N; i++ {
		_, _ = db.Builder().Select("COUNT(*) AS n").From("posts").Value(ctx, "n")
	}
}
