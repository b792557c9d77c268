package dataset

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"ArticlesBench/internal/domain"
	"ArticlesBench/internal/logging"
)

type stubReader struct {
	rows []domain.CorpusRow
	err  error
}

func (s stubReader) CorpusRows(context.Context) ([]domain.CorpusRow, error) {
	return s.rows, s.err
}

func rowsFor(counts map[int]int) []domain.CorpusRow {
	var rows []domain.CorpusRow
	for category := 1; category <= 5; category++ {
		for i := 0; i < counts[category]; i++ {
			rows = append(rows, domain.CorpusRow{Category: category, Text: fmt.Sprintf("c%d-row%d", category, i)})
		}
	}
	return rows
}

func TestLoadDropsAndBalances(t *testing.T) {
	reader := stubReader{rows: rowsFor(map[int]int{1: 150, 2: 50, 3: 300})}
	b := NewBuilder(reader, logging.Discard())

	ds, err := b.Load(context.Background(), LoadOptions{MinCount: 100, MaxCount: 200, Balance: true, Seed: DefaultSeed})
	require.NoError(t, err)

	counts := ds.CategoryCounts()
	require.Equal(t, map[int]int{1: 150, 3: 200}, counts)
}

func TestLoadWithoutBalanceKeepsLargeCategories(t *testing.T) {
	reader := stubReader{rows: rowsFor(map[int]int{1: 150, 2: 50, 3: 300})}
	b := NewBuilder(reader, logging.Discard())

	ds, err := b.Load(context.Background(), LoadOptions{MinCount: 100, MaxCount: 200, Balance: false})
	require.NoError(t, err)
	require.Equal(t, map[int]int{1: 150, 3: 300}, ds.CategoryCounts())
	require.Equal(t, "c1-row0", ds.Samples[0].Text)
}

func TestFilterBoundsHoldForManyDistributions(t *testing.T) {
	distributions := []map[int]int{
		{1: 0, 2: 1, 3: 2},
		{1: 10, 2: 10, 3: 10},
		{1: 5, 2: 15, 3: 25, 4: 35, 5: 45},
		{1: 100},
	}
	thresholds := [][2]int{{1, 1}, {5, 10}, {10, 30}, {20, 20}, {0, 7}}

	for _, dist := range distributions {
		for _, th := range thresholds {
			ds := domain.Dataset{}
			for _, row := range rowsFor(dist) {
				ds.Samples = append(ds.Samples, domain.Sample{Text: row.Text, Category: row.Category})
			}
			out := Filter(ds, LoadOptions{MinCount: th[0], MaxCount: th[1], Balance: true, Seed: 7})
			for category, n := range out.CategoryCounts() {
				require.GreaterOrEqual(t, n, th[0], "category %d dist %v th %v", category, dist, th)
				require.LessOrEqual(t, n, th[1], "category %d dist %v th %v", category, dist, th)
			}
		}
	}
}

func TestSampleIsDeterministic(t *testing.T) {
	reader := stubReader{rows: rowsFor(map[int]int{3: 300})}
	b := NewBuilder(reader, logging.Discard())
	opts := LoadOptions{MinCount: 1, MaxCount: 20, Balance: true, Seed: DefaultSeed}

	first, err := b.Load(context.Background(), opts)
	require.NoError(t, err)
	second, err := b.Load(context.Background(), opts)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadEmptyAfterFilteringIsInsufficient(t *testing.T) {
	b := NewBuilder(stubReader{rows: rowsFor(map[int]int{1: 3})}, logging.Discard())

	_, err := b.Load(context.Background(), LoadOptions{MinCount: 100, MaxCount: 200, Balance: true})
	var insufficient *domain.InsufficientDataError
	require.True(t, errors.As(err, &insufficient))
}

func TestLoadPropagatesStoreFailure(t *testing.T) {
	storeErr := &domain.DataUnavailableError{Op: "connect", Err: errors.New("refused")}
	b := NewBuilder(stubReader{err: storeErr}, logging.Discard())

	_, err := b.Load(context.Background(), LoadOptions{MinCount: 1, MaxCount: 2, Balance: true})
	var dataErr *domain.DataUnavailableError
	require.True(t, errors.As(err, &dataErr))
}

func TestEncodeLabelsIsDenseAndReversible(t *testing.T) {
	ds := domain.Dataset{Samples: []domain.Sample{
		{Text: "a", Category: 20}, {Text: "b", Category: 1}, {Text: "c", Category: 7}, {Text: "d", Category: 20},
	}}

	enc := EncodeLabels(ds)
	require.Equal(t, []int{1, 7, 20}, enc.Classes)
	require.Equal(t, []int{2, 0, 1, 2}, enc.Labels)

	for _, s := range ds.Samples {
		code, ok := enc.Encode(s.Category)
		require.True(t, ok)
		require.GreaterOrEqual(t, code, 0)
		require.Less(t, code, len(enc.Classes))
		back, ok := enc.Decode(code)
		require.True(t, ok)
		require.Equal(t, s.Category, back)
	}
	require.Equal(t, []string{"1", "7", "20"}, LabelNames(enc))
}

func TestSplitIsReproducible(t *testing.T) {
	ds := domain.Dataset{}
	for _, row := range rowsFor(map[int]int{1: 13, 2: 17}) {
		ds.Samples = append(ds.Samples, domain.Sample{Text: row.Text, Category: row.Category})
	}
	enc := EncodeLabels(ds)

	first, err := Split(enc, 0.2, DefaultSeed)
	require.NoError(t, err)
	second, err := Split(enc, 0.2, DefaultSeed)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, first.TestX, 6)
	require.Len(t, first.TrainX, 24)
	require.Len(t, first.TrainY, 24)
	require.Equal(t, []string{"1", "2"}, first.LabelNames)

	other, err := Split(enc, 0.2, DefaultSeed+1)
	require.NoError(t, err)
	require.NotEqual(t, first.TestX, other.TestX)
}

func TestSplitRejectsBadInput(t *testing.T) {
	enc := EncodeLabels(domain.Dataset{Samples: []domain.Sample{{Text: "a", Category: 1}}})

	_, err := Split(enc, 0.5, DefaultSeed)
	var insufficient *domain.InsufficientDataError
	require.True(t, errors.As(err, &insufficient))

	_, err = Split(enc, 1.5, DefaultSeed)
	var cfgErr *domain.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}

type upper struct{}

func (upper) Normalize(text string) string { return "norm:" + text }

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	ds := domain.Dataset{Samples: []domain.Sample{{Text: "x", Category: 1}}}

	out := Normalize(ds, upper{})
	require.Equal(t, "norm:x", out.Samples[0].Text)
	require.Equal(t, "x", ds.Samples[0].Text)
}
