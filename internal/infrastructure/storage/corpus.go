package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"ArticlesBench/internal/domain"
	"ArticlesBench/internal/ports"
)

// CorpusStore reads classification rows, opening a fresh connection per call.
type CorpusStore struct {
	driver string
	dsn    string
}

var _ ports.CorpusReader = (*CorpusStore)(nil)

// NewCorpusStore remembers connection settings; nothing is opened until CorpusRows.
func NewCorpusStore(driver, dsn string) *CorpusStore {
	return &CorpusStore{driver: driver, dsn: dsn}
}

// CorpusRows returns (category, text) pairs where both are non-null, in id order.
func (s *CorpusStore) CorpusRows(ctx context.Context) ([]domain.CorpusRow, error) {
	db, err := Open(ctx, s.driver, s.dsn)
	if err != nil {
		return nil, &domain.DataUnavailableError{Op: "connect", Err: err}
	}
	defer db.Close()

	query, args, err := builder(s.driver).
		Select("flag AS category", "articleText AS text").
		From("articles").
		Where(sq.NotEq{"articleText": nil}).
		Where(sq.NotEq{"flag": nil}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, &domain.DataUnavailableError{Op: "build query", Err: err}
	}

	var rows []domain.CorpusRow
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, &domain.DataUnavailableError{Op: "query corpus", Err: err}
	}

	return rows, nil
}

// Open connects and pings the database.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

func builder(driver string) sq.StatementBuilderType {
	if isPostgres(driver) {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}
