package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"ArticlesBench/internal/domain"
)

func tempDB(t *testing.T) (string, *sqlx.DB) {
	t.Helper()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "articles.db")
	db, err := Open(ctx, "sqlite", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := EnsureSchema(ctx, db, "sqlite"); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return dsn, db
}

func TestInsertAndReadCorpus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dsn, db := tempDB(t)
	repo := NewRepository(db, "sqlite")

	articles := []domain.Article{
		{Title: "first", Authors: "A, B", ArticleText: "текст один", SourceURL: "http://a", Flag: 1},
		{Title: "second", ArticleText: "текст два", SourceURL: "http://b", Flag: 20},
	}
	for _, a := range articles {
		if _, err := repo.Insert(ctx, a); err != nil {
			t.Fatalf("Insert %s: %v", a.Title, err)
		}
	}

	if _, err := db.ExecContext(ctx, `INSERT INTO articles (title, articleText, flag) VALUES ('no-flag', 'x', NULL)`); err != nil {
		t.Fatalf("insert null flag: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO articles (title, articleText, flag) VALUES ('no-text', NULL, 3)`); err != nil {
		t.Fatalf("insert null text: %v", err)
	}

	rows, err := NewCorpusStore("sqlite", dsn).CorpusRows(ctx)
	if err != nil {
		t.Fatalf("CorpusRows: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Category != 1 || rows[0].Text != "текст один" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Category != 20 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestInsertDuplicateTitleIsConflict(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, db := tempDB(t)
	repo := NewRepository(db, "sqlite")

	article := domain.Article{Title: "same", ArticleText: "x", Flag: 1}
	if _, err := repo.Insert(ctx, article); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	_, err := repo.Insert(ctx, article)
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Value != "same" {
		t.Fatalf("unexpected conflict value %q", conflict.Value)
	}
}

func TestCategoryCounts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, db := tempDB(t)
	repo := NewRepository(db, "sqlite")

	for i, flag := range []int{1, 1, 2} {
		a := domain.Article{Title: string(rune('a' + i)), ArticleText: "x", Flag: flag}
		if _, err := repo.Insert(ctx, a); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	counts, err := repo.CategoryCounts(ctx)
	if err != nil {
		t.Fatalf("CategoryCounts: %v", err)
	}
	if counts[1] != 2 || counts[2] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestCorpusRowsUnreachableStore(t *testing.T) {
	t.Parallel()

	store := NewCorpusStore("no-such-driver", "whatever")
	_, err := store.CorpusRows(context.Background())

	var dataErr *domain.DataUnavailableError
	if !errors.As(err, &dataErr) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
}
