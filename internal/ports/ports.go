package ports

import (
	"context"

	"ArticlesBench/internal/domain"
)

// CorpusReader returns rows with non-null category and text.
type CorpusReader interface {
	CorpusRows(ctx context.Context) ([]domain.CorpusRow, error)
}

// ArticleRepository persists ingested articles; duplicate titles yield domain.ConflictError.
type ArticleRepository interface {
	Insert(ctx context.Context, article domain.Article) (int64, error)
	CategoryCounts(ctx context.Context) (map[int]int, error)
}

// PageExtractor pulls article fields out of a rendered page.
type PageExtractor interface {
	Extract(ctx context.Context, pageURL string) (domain.Article, error)
}

// TextNormalizer turns raw text into normalized token text.
type TextNormalizer interface {
	Normalize(text string) string
}

// Evaluator fits and scores one model on one dataset variant.
type Evaluator interface {
	Evaluate(ctx context.Context, variant string, model domain.Assignment, split domain.Split) (domain.Result, error)
}

// ResultSink receives evaluation output as the grid search progresses.
type ResultSink interface {
	BeginVariant(name string) error
	Add(result domain.Result) error
	Close() error
}
