package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ArticlesBench/internal/domain"
	"ArticlesBench/internal/ml"
	"ArticlesBench/internal/ports"
)

// Harness vectorizes, fits, predicts and scores one model per call.
type Harness struct {
	registry *ml.Registry
	logger   *slog.Logger
	now      func() time.Time
}

var _ ports.Evaluator = (*Harness)(nil)

// Option customizes a Harness.
type Option func(*Harness)

// WithClock replaces time.Now, mainly for reproducible reports in tests.
func WithClock(now func() time.Time) Option {
	return func(h *Harness) {
		h.now = now
	}
}

// NewHarness wires the classifier registry.
func NewHarness(registry *ml.Registry, logger *slog.Logger, opts ...Option) *Harness {
	if registry == nil {
		registry = ml.DefaultRegistry()
	}
	h := &Harness{registry: registry, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Evaluate runs one model on one split. The vectorizer is fitted on the
// training text only and refitted on every call.
func (h *Harness) Evaluate(ctx context.Context, variant string, model domain.Assignment, split domain.Split) (domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return domain.Result{}, err
	}
	if len(split.TrainX) == 0 || len(split.TestX) == 0 {
		return domain.Result{}, &domain.InsufficientDataError{
			What: fmt.Sprintf("variant %s: train=%d test=%d rows", variant, len(split.TrainX), len(split.TestX)),
		}
	}

	clf, err := h.registry.New(model)
	if err != nil {
		return domain.Result{}, err
	}

	start := h.now()

	vectorizer := ml.NewTFIDF()
	trainVec, err := vectorizer.FitTransform(split.TrainX)
	if err != nil {
		return domain.Result{}, fmt.Errorf("vectorize train: %w", err)
	}
	testVec, err := vectorizer.Transform(split.TestX)
	if err != nil {
		return domain.Result{}, fmt.Errorf("vectorize test: %w", err)
	}

	if err := clf.Fit(trainVec, split.TrainY); err != nil {
		return domain.Result{}, fmt.Errorf("fit %s: %w", model.Family, err)
	}
	pred, err := clf.Predict(testVec)
	if err != nil {
		return domain.Result{}, fmt.Errorf("predict %s: %w", model.Family, err)
	}

	result := domain.Result{
		Variant:  variant,
		Model:    model,
		Accuracy: ml.Accuracy(split.TestY, pred),
		Report:   ml.ClassificationReport(split.TestY, pred, split.LabelNames),
		Elapsed:  h.now().Sub(start),
	}

	if h.logger != nil {
		h.logger.Info("evaluation finished",
			"variant", variant,
			"model", model.String(),
			"features", trainVec.Cols,
			"accuracy", result.Accuracy,
			"elapsed_sec", result.Elapsed.Seconds(),
		)
	}
	return result, nil
}
