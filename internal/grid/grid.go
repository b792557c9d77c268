// Package grid expands per-family hyperparameter candidates into concrete assignments.
package grid

import (
	"ArticlesBench/internal/domain"
)

// Candidates lists the values to try for one parameter.
type Candidates struct {
	Name   string
	Values []any
}

// Family is one algorithm family with its ordered parameter candidates.
type Family struct {
	Name   string
	Params []Candidates
}

// Grid is an ordered set of families.
type Grid struct {
	Families []Family
}

// Expand returns the cartesian product of params in declaration order; the
// last parameter varies fastest.
func Expand(family string, params []Candidates) []domain.Assignment {
	total := 1
	for _, p := range params {
		total *= len(p.Values)
	}
	if total == 0 {
		return nil
	}

	out := make([]domain.Assignment, 0, total)
	idx := make([]int, len(params))
	for {
		assignment := domain.Assignment{Family: family, Params: make([]domain.Param, len(params))}
		for i, p := range params {
			assignment.Params[i] = domain.Param{Name: p.Name, Value: p.Values[idx[i]]}
		}
		out = append(out, assignment)

		pos := len(params) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(params[pos].Values) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return out
		}
	}
}

// Assignments expands every family in order.
func (g Grid) Assignments() []domain.Assignment {
	var out []domain.Assignment
	for _, f := range g.Families {
		out = append(out, Expand(f.Name, f.Params)...)
	}
	return out
}

// Size returns the total number of assignments without expanding.
func (g Grid) Size() int {
	total := 0
	for _, f := range g.Families {
		n := 1
		for _, p := range f.Params {
			n *= len(p.Values)
		}
		total += n
	}
	return total
}

// Default returns the benchmark grid used when none is configured.
func Default() Grid {
	return Grid{Families: []Family{
		{
			Name: "KNeighborsClassifier",
			Params: []Candidates{
				{Name: "n_neighbors", Values: []any{3, 9}},
				{Name: "weights", Values: []any{"uniform", "distance"}},
				{Name: "metric", Values: []any{"euclidean", "manhattan"}},
				{Name: "algorithm", Values: []any{"auto", "brute"}},
			},
		},
		{
			Name: "LogisticRegression",
			Params: []Candidates{
				{Name: "C", Values: []any{0.1, 1.0}},
				{Name: "solver", Values: []any{"liblinear", "lbfgs"}},
				{Name: "max_iter", Values: []any{100, 500}},
			},
		},
		{
			Name: "MultinomialNB",
			Params: []Candidates{
				{Name: "alpha", Values: []any{0.5, 1.0}},
				{Name: "fit_prior", Values: []any{true, false}},
			},
		},
	}}
}
