package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"ArticlesBench/internal/dataset"
	"ArticlesBench/internal/domain"
	"ArticlesBench/internal/grid"
	"ArticlesBench/internal/ports"
)

// Dataset variant names, in report order.
const (
	VariantRaw        = "raw"
	VariantNormalized = "normalized"
)

// VariantNormalizedNoDictionary names the normalized variant when tokens were
// not checked against a dictionary.
const VariantNormalizedNoDictionary = VariantNormalized + " (dictionary=none)"

// ExperimentDeps wires the adapters and settings used by a benchmark run.
type ExperimentDeps struct {
	Reader     ports.CorpusReader
	Normalizer ports.TextNormalizer
	// NormalizedVariant overrides the normalized variant name; empty means VariantNormalized.
	NormalizedVariant string
	Evaluator         ports.Evaluator
	Sink              ports.ResultSink
	Grid              grid.Grid
	Load              dataset.LoadOptions
	TestFraction      float64
	ContinueOnError   bool
	Logger            *slog.Logger
}

// Experiment runs every grid assignment against the raw and normalized variants.
type Experiment struct {
	builder         *dataset.Builder
	normalizer      ports.TextNormalizer
	normalizedName  string
	evaluator       ports.Evaluator
	sink            ports.ResultSink
	grid            grid.Grid
	load            dataset.LoadOptions
	testFraction    float64
	continueOnError bool
	logger          *slog.Logger
}

// Summary describes a finished run.
type Summary struct {
	RunID     string
	Evaluated int
	Skipped   int
}

type variant struct {
	name  string
	split domain.Split
}

// NewExperiment constructs the orchestration component.
func NewExperiment(deps ExperimentDeps) *Experiment {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	normalizedName := deps.NormalizedVariant
	if normalizedName == "" {
		normalizedName = VariantNormalized
	}
	return &Experiment{
		builder:         dataset.NewBuilder(deps.Reader, logger.With("component", "dataset")),
		normalizer:      deps.Normalizer,
		normalizedName:  normalizedName,
		evaluator:       deps.Evaluator,
		sink:            deps.Sink,
		grid:            deps.Grid,
		load:            deps.Load,
		testFraction:    deps.TestFraction,
		continueOnError: deps.ContinueOnError,
		logger:          logger,
	}
}

// Run builds both variants up front, then evaluates assignments one by one.
// Results reach the sink as soon as they are produced, so a failed run leaves
// the completed prefix in place.
func (e *Experiment) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	logger := e.logger.With("run_id", summary.RunID)

	if e.evaluator == nil || e.sink == nil {
		return summary, fmt.Errorf("experiment: evaluator and sink are required")
	}

	variants, err := e.buildVariants(ctx)
	if err != nil {
		return summary, err
	}

	assignments := e.grid.Assignments()
	logger.Info("experiment started", "variants", len(variants), "assignments", len(assignments))

	for _, v := range variants {
		if err := e.sink.BeginVariant(v.name); err != nil {
			return summary, fmt.Errorf("begin variant %s: %w", v.name, err)
		}
		vlog := logger.With("variant", v.name)

		for _, model := range assignments {
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			result, err := e.evaluator.Evaluate(ctx, v.name, model, v.split)
			if err != nil {
				if e.continueOnError && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
					summary.Skipped++
					vlog.Warn("evaluation skipped", "family", model.Family, "params", model.ParamsString(), "error", err)
					continue
				}
				return summary, fmt.Errorf("evaluate %s on %s: %w", model, v.name, err)
			}

			if err := e.sink.Add(result); err != nil {
				return summary, fmt.Errorf("record result: %w", err)
			}
			summary.Evaluated++
		}
	}

	logger.Info("experiment finished", "evaluated", summary.Evaluated, "skipped", summary.Skipped)
	return summary, nil
}

func (e *Experiment) buildVariants(ctx context.Context) ([]variant, error) {
	ds, err := e.builder.Load(ctx, e.load)
	if err != nil {
		return nil, err
	}

	raw, err := dataset.Split(dataset.EncodeLabels(ds), e.testFraction, e.load.Seed)
	if err != nil {
		return nil, fmt.Errorf("split %s: %w", VariantRaw, err)
	}
	variants := []variant{{name: VariantRaw, split: raw}}

	if e.normalizer != nil {
		normalized, err := dataset.Split(dataset.EncodeLabels(dataset.Normalize(ds, e.normalizer)), e.testFraction, e.load.Seed)
		if err != nil {
			return nil, fmt.Errorf("split %s: %w", e.normalizedName, err)
		}
		variants = append(variants, variant{name: e.normalizedName, split: normalized})
	}
	return variants, nil
}
