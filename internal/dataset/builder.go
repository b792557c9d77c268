// Package dataset turns corpus rows into reproducible train/test splits.
//
// Stages are pure functions over immutable values:
//
//	Load -> [Normalize] -> EncodeLabels -> Split
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"

	"ArticlesBench/internal/domain"
	"ArticlesBench/internal/ports"
)

// DefaultSeed matches the seed used for sampling and splitting unless configured.
const DefaultSeed uint64 = 42

// LoadOptions controls category filtering and balancing.
type LoadOptions struct {
	MinCount int
	MaxCount int
	Balance  bool
	Seed     uint64
}

// Builder reads the corpus and applies category filtering.
type Builder struct {
	reader ports.CorpusReader
	logger *slog.Logger
}

// NewBuilder wires the corpus reader and logger.
func NewBuilder(reader ports.CorpusReader, logger *slog.Logger) *Builder {
	return &Builder{reader: reader, logger: logger}
}

// Load fetches rows, drops categories below MinCount and, when Balance is set,
// down-samples categories above MaxCount to exactly MaxCount rows.
func (b *Builder) Load(ctx context.Context, opts LoadOptions) (domain.Dataset, error) {
	if b.reader == nil {
		return domain.Dataset{}, &domain.DataUnavailableError{Op: "load", Err: fmt.Errorf("corpus reader is not configured")}
	}
	if opts.Balance && (opts.MaxCount <= 0 || opts.MaxCount < opts.MinCount) {
		return domain.Dataset{}, &domain.ConfigurationError{Reason: fmt.Sprintf("max category count %d is invalid for min %d", opts.MaxCount, opts.MinCount)}
	}

	rows, err := b.reader.CorpusRows(ctx)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("load corpus: %w", err)
	}

	samples := make([]domain.Sample, len(rows))
	for i, row := range rows {
		samples[i] = domain.Sample{Text: row.Text, Category: row.Category}
	}

	ds := Filter(domain.Dataset{Samples: samples}, opts)
	if ds.Len() == 0 {
		return domain.Dataset{}, &domain.InsufficientDataError{What: fmt.Sprintf("no categories with at least %d rows", opts.MinCount)}
	}

	b.logCounts(ds, opts)
	return ds, nil
}

// Filter applies the min/max category rules to an in-memory dataset.
func Filter(ds domain.Dataset, opts LoadOptions) domain.Dataset {
	counts := ds.CategoryCounts()

	valid := make(map[int]bool, len(counts))
	for category, n := range counts {
		if n >= opts.MinCount {
			valid[category] = true
		}
	}

	if !opts.Balance {
		kept := make([]domain.Sample, 0, len(ds.Samples))
		for _, s := range ds.Samples {
			if valid[s.Category] {
				kept = append(kept, s)
			}
		}
		return domain.Dataset{Samples: kept}
	}

	byCategory := make(map[int][]domain.Sample, len(valid))
	for _, s := range ds.Samples {
		if valid[s.Category] {
			byCategory[s.Category] = append(byCategory[s.Category], s)
		}
	}

	categories := make([]int, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	slices.Sort(categories)

	var balanced []domain.Sample
	for _, category := range categories {
		group := byCategory[category]
		if len(group) > opts.MaxCount {
			group = sample(group, opts.MaxCount, opts.Seed)
		}
		balanced = append(balanced, group...)
	}
	return domain.Dataset{Samples: balanced}
}

// sample picks k rows without replacement, keeping their original order.
func sample(group []domain.Sample, k int, seed uint64) []domain.Sample {
	rng := rand.New(rand.NewPCG(seed, seed))
	picked := rng.Perm(len(group))[:k]
	slices.Sort(picked)

	out := make([]domain.Sample, k)
	for i, idx := range picked {
		out[i] = group[idx]
	}
	return out
}

func (b *Builder) logCounts(ds domain.Dataset, opts LoadOptions) {
	if b.logger == nil {
		return
	}
	if opts.Balance {
		b.logger.Info("categories balanced", "min", opts.MinCount, "max", opts.MaxCount)
	} else {
		b.logger.Warn("category balancing disabled", "min", opts.MinCount)
	}

	counts := ds.CategoryCounts()
	categories := make([]int, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	slices.Sort(categories)

	attrs := make([]any, 0, 2*len(categories)+2)
	attrs = append(attrs, "rows", ds.Len())
	for _, c := range categories {
		attrs = append(attrs, "category_"+strconv.Itoa(c), counts[c])
	}
	b.logger.Info("filtering done", attrs...)
}

// Normalize returns a copy of ds with every text passed through n.
func Normalize(ds domain.Dataset, n ports.TextNormalizer) domain.Dataset {
	out := make([]domain.Sample, len(ds.Samples))
	for i, s := range ds.Samples {
		out[i] = domain.Sample{Text: n.Normalize(s.Text), Category: s.Category}
	}
	return domain.Dataset{Samples: out}
}

// EncodeLabels replaces categories with dense codes ordered by category value.
func EncodeLabels(ds domain.Dataset) domain.EncodedDataset {
	counts := ds.CategoryCounts()
	classes := make([]int, 0, len(counts))
	for c := range counts {
		classes = append(classes, c)
	}
	slices.Sort(classes)

	codes := make(map[int]int, len(classes))
	for code, c := range classes {
		codes[c] = code
	}

	enc := domain.EncodedDataset{
		Texts:   make([]string, len(ds.Samples)),
		Labels:  make([]int, len(ds.Samples)),
		Classes: classes,
	}
	for i, s := range ds.Samples {
		enc.Texts[i] = s.Text
		enc.Labels[i] = codes[s.Category]
	}
	return enc
}

// Split shuffles rows with a seeded permutation and takes ceil(testFraction*n) rows for test.
// The split is not stratified by label.
func Split(enc domain.EncodedDataset, testFraction float64, seed uint64) (domain.Split, error) {
	if !(testFraction > 0 && testFraction < 1) {
		return domain.Split{}, &domain.ConfigurationError{Reason: fmt.Sprintf("test fraction %v must be in (0, 1)", testFraction)}
	}

	n := len(enc.Texts)
	nTest := int(math.Ceil(testFraction * float64(n)))
	nTrain := n - nTest
	if nTest == 0 || nTrain <= 0 {
		return domain.Split{}, &domain.InsufficientDataError{What: fmt.Sprintf("%d rows cannot be split with test fraction %v", n, testFraction)}
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)

	split := domain.Split{
		TrainX:     make([]string, 0, nTrain),
		TrainY:     make([]int, 0, nTrain),
		TestX:      make([]string, 0, nTest),
		TestY:      make([]int, 0, nTest),
		LabelNames: LabelNames(enc),
	}
	for i, idx := range perm {
		if i < nTest {
			split.TestX = append(split.TestX, enc.Texts[idx])
			split.TestY = append(split.TestY, enc.Labels[idx])
			continue
		}
		split.TrainX = append(split.TrainX, enc.Texts[idx])
		split.TrainY = append(split.TrainY, enc.Labels[idx])
	}
	return split, nil
}

// LabelNames renders class values in code order.
func LabelNames(enc domain.EncodedDataset) []string {
	names := make([]string, len(enc.Classes))
	for i, c := range enc.Classes {
		names[i] = strconv.Itoa(c)
	}
	return names
}
