package grid

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ArticlesBench/internal/domain"
)

func TestExpandLastKeyVariesFastest(t *testing.T) {
	got := Expand("f", []Candidates{
		{Name: "a", Values: []any{1, 2}},
		{Name: "b", Values: []any{"x", "y"}},
	})

	want := [][2]any{{1, "x"}, {1, "y"}, {2, "x"}, {2, "y"}}
	require.Len(t, got, len(want))
	for i, w := range want {
		require.Equal(t, "f", got[i].Family)
		require.Equal(t, []domain.Param{{Name: "a", Value: w[0]}, {Name: "b", Value: w[1]}}, got[i].Params)
	}
}

func TestExpandCardinality(t *testing.T) {
	cases := []struct {
		lens []int
		want int
	}{
		{nil, 1},
		{[]int{3}, 3},
		{[]int{2, 3, 4}, 24},
		{[]int{2, 0, 4}, 0},
		{[]int{1, 1, 1, 5}, 5},
	}
	for _, tc := range cases {
		params := make([]Candidates, len(tc.lens))
		for i, n := range tc.lens {
			values := make([]any, n)
			for j := range values {
				values[j] = j
			}
			params[i] = Candidates{Name: string(rune('a' + i)), Values: values}
		}
		require.Len(t, Expand("f", params), tc.want, "lens %v", tc.lens)
	}
}

func TestDefaultGridSize(t *testing.T) {
	g := Default()
	require.Equal(t, 28, g.Size())
	require.Len(t, g.Assignments(), 28)

	first := g.Assignments()[0]
	require.Equal(t, "KNeighborsClassifier ({'n_neighbors': 3, 'weights': 'uniform', 'metric': 'euclidean', 'algorithm': 'auto'})", first.String())
}

func TestParsePreservesOrderAndTypes(t *testing.T) {
	raw := []byte(`
MultinomialNB:
  fit_prior: [true, false]
  alpha: [0.5, 1]
LogisticRegression:
  solver: lbfgs
  max_iter: [100]
  C: [1.0]
`)

	g, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, g.Families, 2)

	nb := g.Families[0]
	require.Equal(t, "MultinomialNB", nb.Name)
	require.Equal(t, "fit_prior", nb.Params[0].Name)
	require.Equal(t, []any{true, false}, nb.Params[0].Values)
	require.Equal(t, []any{0.5, 1}, nb.Params[1].Values)

	lr := g.Families[1]
	require.Equal(t, []any{"lbfgs"}, lr.Params[0].Values)
	require.Equal(t, []any{100}, lr.Params[1].Values)
	require.Equal(t, []any{1.0}, lr.Params[2].Values)

	assignments := g.Assignments()
	require.Len(t, assignments, 5)
	require.Equal(t, "MultinomialNB ({'fit_prior': True, 'alpha': 0.5})", assignments[0].String())
	require.Equal(t, "LogisticRegression ({'solver': 'lbfgs', 'max_iter': 100, 'C': 1.0})", assignments[4].String())
}

func TestParseRejectsNonMapping(t *testing.T) {
	_, err := Parse([]byte("- a\n- b\n"))
	require.Error(t, err)

	_, err = Parse([]byte("KNN:\n  n_neighbors:\n    nested: 1\n"))
	require.Error(t, err)
}
