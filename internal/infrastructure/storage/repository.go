package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"ArticlesBench/internal/domain"
	"ArticlesBench/internal/ports"
)

// Repository writes ingested articles.
type Repository struct {
	db     *sqlx.DB
	driver string
}

var _ ports.ArticleRepository = (*Repository)(nil)

// NewRepository wires an open connection.
func NewRepository(db *sqlx.DB, driver string) *Repository {
	return &Repository{db: db, driver: driver}
}

// Insert stores the article and returns its id; a duplicate title yields *domain.ConflictError.
func (r *Repository) Insert(ctx context.Context, article domain.Article) (int64, error) {
	query, args, err := builder(r.driver).
		Insert("articles").
		Columns("title", "authors", "annotation", "articleText", "sourceUrl", "flag").
		Values(article.Title, article.Authors, article.Annotation, article.ArticleText, article.SourceURL, article.Flag).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, &domain.ConflictError{Field: "title", Value: article.Title}
		}
		return 0, fmt.Errorf("insert article: %w", err)
	}

	return id, nil
}

// CategoryCounts returns the number of stored articles per flag.
func (r *Repository) CategoryCounts(ctx context.Context) (map[int]int, error) {
	query, args, err := builder(r.driver).
		Select("flag AS category", "COUNT(*) AS total").
		From("articles").
		Where("flag IS NOT NULL").
		GroupBy("flag").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build counts: %w", err)
	}

	var rows []struct {
		Category int `db:"category"`
		Total    int `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query counts: %w", err)
	}

	counts := make(map[int]int, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Total
	}
	return counts, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
