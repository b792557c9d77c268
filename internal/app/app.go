package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ArticlesBench/internal/config"
	"ArticlesBench/internal/dataset"
	"ArticlesBench/internal/evaluation"
	"ArticlesBench/internal/grid"
	"ArticlesBench/internal/infrastructure/httpapi"
	"ArticlesBench/internal/infrastructure/parser"
	"ArticlesBench/internal/infrastructure/storage"
	"ArticlesBench/internal/logging"
	"ArticlesBench/internal/ml"
	"ArticlesBench/internal/report"
	"ArticlesBench/internal/textnorm"
	"ArticlesBench/internal/usecase"
)

// Application wires configs to the benchmark use case.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	grid       grid.Grid
	normalizer *textnorm.Normalizer
}

// New resolves the grid and normalizer resources named by cfg.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	g, err := ResolveGrid(cfg.Grid)
	if err != nil {
		return nil, err
	}

	normalizer, err := BuildNormalizer(cfg.Normalization, baseLogger.With("component", "textnorm"))
	if err != nil {
		return nil, err
	}

	return &Application{cfg: cfg, logger: baseLogger, grid: g, normalizer: normalizer}, nil
}

// Run executes one full benchmark and writes the report file.
func (a *Application) Run(ctx context.Context) error {
	sink, err := report.Create(a.cfg.Report.Path)
	if err != nil {
		return err
	}

	normalizedVariant := usecase.VariantNormalized
	if !a.normalizer.HasDictionary() {
		normalizedVariant = usecase.VariantNormalizedNoDictionary
	}

	experiment := usecase.NewExperiment(usecase.ExperimentDeps{
		Reader:            storage.NewCorpusStore(a.cfg.Database.Driver, a.cfg.Database.DSN),
		Normalizer:        a.normalizer,
		NormalizedVariant: normalizedVariant,
		Evaluator:         evaluation.NewHarness(ml.DefaultRegistry(), a.logger.With("component", "evaluation")),
		Sink:              sink,
		Grid:              a.grid,
		Load: dataset.LoadOptions{
			MinCount: a.cfg.Dataset.MinCategoryCount,
			MaxCount: a.cfg.Dataset.MaxCategoryCount,
			Balance:  a.cfg.Dataset.Balanced(),
			Seed:     a.cfg.Dataset.Seed,
		},
		TestFraction:    a.cfg.Dataset.TestFraction,
		ContinueOnError: a.cfg.Grid.ContinueOnError,
		Logger:          a.logger.With("component", "experiment"),
	})

	summary, runErr := experiment.Run(ctx)
	closeErr := sink.Close()
	if runErr != nil {
		return fmt.Errorf("run %s: %w", summary.RunID, runErr)
	}
	if closeErr != nil {
		return closeErr
	}

	a.logger.Info("report written", "path", a.cfg.Report.Path, "run_id", summary.RunID, "evaluated", summary.Evaluated)
	return nil
}

// ResolveGrid prefers a grid file, then the inline grid, then the built-in one.
func ResolveGrid(cfg config.GridConfig) (grid.Grid, error) {
	switch {
	case cfg.Path != "":
		return grid.Load(cfg.Path)
	case !cfg.Inline.IsZero():
		g, err := grid.FromNode(&cfg.Inline)
		if err != nil {
			return grid.Grid{}, fmt.Errorf("inline grid: %w", err)
		}
		return g, nil
	default:
		return grid.Default(), nil
	}
}

// BuildNormalizer loads optional stopword and dictionary word lists.
func BuildNormalizer(cfg config.NormalizationConfig, logger *slog.Logger) (*textnorm.Normalizer, error) {
	stopwords := textnorm.RussianStopwords()
	if cfg.StopwordsPath != "" {
		loaded, err := textnorm.LoadWordSet(cfg.StopwordsPath)
		if err != nil {
			return nil, fmt.Errorf("stopwords: %w", err)
		}
		stopwords = loaded
	}

	if cfg.DictionaryPath == "" {
		logger.Warn("no morphological dictionary configured, every token is treated as known")
		return textnorm.New(stopwords, nil), nil
	}

	dictionary, err := textnorm.LoadWordSet(cfg.DictionaryPath)
	if err != nil {
		return nil, fmt.Errorf("dictionary: %w", err)
	}
	logger.Info("dictionary loaded", "words", len(dictionary))
	return textnorm.New(stopwords, dictionary), nil
}

// Ingest serves the article ingestion endpoint.
type Ingest struct {
	cfg    config.Config
	logger *slog.Logger
}

// NewIngest builds the ingestion server wiring.
func NewIngest(cfg config.Config, baseLogger *slog.Logger) *Ingest {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	return &Ingest{cfg: cfg, logger: baseLogger}
}

// Serve opens the store, ensures the schema and listens until ctx is cancelled.
func (i *Ingest) Serve(ctx context.Context) error {
	db, err := storage.Open(ctx, i.cfg.Database.Driver, i.cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.EnsureSchema(ctx, db, i.cfg.Database.Driver); err != nil {
		return err
	}

	handler := httpapi.NewHandler(
		storage.NewRepository(db, i.cfg.Database.Driver),
		parser.NewPageExtractor(nil),
		i.logger.With("component", "httpapi"),
	)

	server := &http.Server{
		Addr:              i.cfg.Ingest.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		i.logger.Info("ingestion server listening", "addr", i.cfg.Ingest.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
