package ml

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"ArticlesBench/internal/domain"
)

// LogisticRegression is an L2-penalized logistic model. The lbfgs solver fits
// a multinomial softmax (binary logistic for two classes); liblinear fits one
// binary model per class and also penalizes the intercept.
type LogisticRegression struct {
	c       float64
	solver  string
	maxIter int
	tol     float64

	classes []int
	cols    int
	// one weight row per model; binary problems have a single row for classes[1]
	weights    [][]float64
	intercepts []float64
}

// NewLogisticRegression reads C, solver, max_iter, tol and random_state.
func NewLogisticRegression(model domain.Assignment) (Classifier, error) {
	p := newParamReader(model)
	c := p.floatValue("C", 1.0)
	solver := p.choice("solver", "lbfgs", "lbfgs", "liblinear")
	maxIter := p.intValue("max_iter", 100)
	tol := p.floatValue("tol", 1e-4)
	p.choice("penalty", "l2", "l2")
	p.skip("random_state")
	if err := p.done(); err != nil {
		return nil, err
	}

	switch {
	case !(c > 0) || math.IsInf(c, 0):
		return nil, &domain.ConfigurationError{Family: model.Family, Param: "C", Reason: fmt.Sprintf("must be positive, got %v", c)}
	case maxIter <= 0:
		return nil, &domain.ConfigurationError{Family: model.Family, Param: "max_iter", Reason: fmt.Sprintf("must be positive, got %d", maxIter)}
	case !(tol > 0):
		return nil, &domain.ConfigurationError{Family: model.Family, Param: "tol", Reason: fmt.Sprintf("must be positive, got %v", tol)}
	}

	return &LogisticRegression{c: c, solver: solver, maxIter: maxIter, tol: tol}, nil
}

// Fit optimizes the penalized log loss.
func (m *LogisticRegression) Fit(X Matrix, y []int) error {
	if err := checkFitInput(X, y); err != nil {
		return err
	}
	m.classes = classesOf(y)
	m.cols = X.Cols
	if len(m.classes) < 2 {
		return &domain.InsufficientDataError{What: fmt.Sprintf("logistic regression needs at least 2 classes, got %d", len(m.classes))}
	}

	if m.solver == "lbfgs" && len(m.classes) > 2 {
		m.fitMultinomial(X, y)
		return nil
	}

	positives := m.classes[1:]
	if m.solver == "liblinear" && len(m.classes) > 2 {
		positives = m.classes
	}
	m.weights = make([][]float64, len(positives))
	m.intercepts = make([]float64, len(positives))
	for k, cl := range positives {
		target := make([]float64, len(y))
		for i, label := range y {
			if label == cl {
				target[i] = 1
			}
		}
		m.weights[k], m.intercepts[k] = m.fitBinary(X, target, m.solver == "liblinear")
	}
	return nil
}

func (m *LogisticRegression) fitBinary(X Matrix, target []float64, penalizeIntercept bool) ([]float64, float64) {
	d := X.Cols
	loss := func(w, grad []float64) float64 {
		clear(grad)
		b := w[d]
		var total float64
		for i, row := range X.Rows {
			z := row.Dot(w[:d]) + b
			sign := 2*target[i] - 1
			total += logLoss(sign * z)
			r := m.c * (sigmoid(z) - target[i])
			row.AddScaledTo(grad[:d], r)
			grad[d] += r
		}
		total *= m.c
		for j := 0; j < d; j++ {
			total += 0.5 * w[j] * w[j]
			grad[j] += w[j]
		}
		if penalizeIntercept {
			total += 0.5 * b * b
			grad[d] += b
		}
		return total
	}

	w := minimizeLBFGS(loss, make([]float64, d+1), m.maxIter, m.tol)
	return w[:d], w[d]
}

func (m *LogisticRegression) fitMultinomial(X Matrix, y []int) {
	k, d := len(m.classes), X.Cols
	index := make(map[int]int, k)
	for i, cl := range m.classes {
		index[cl] = i
	}

	loss := func(w, grad []float64) float64 {
		clear(grad)
		z := make([]float64, k)
		var total float64
		for i, row := range X.Rows {
			for c := 0; c < k; c++ {
				z[c] = row.Dot(w[c*d:(c+1)*d]) + w[k*d+c]
			}
			lse := floats.LogSumExp(z)
			yi := index[y[i]]
			total += lse - z[yi]
			for c := 0; c < k; c++ {
				r := math.Exp(z[c] - lse)
				if c == yi {
					r--
				}
				r *= m.c
				row.AddScaledTo(grad[c*d:(c+1)*d], r)
				grad[k*d+c] += r
			}
		}
		total *= m.c
		for j := 0; j < k*d; j++ {
			total += 0.5 * w[j] * w[j]
			grad[j] += w[j]
		}
		return total
	}

	w := minimizeLBFGS(loss, make([]float64, k*d+k), m.maxIter, m.tol)
	m.weights = make([][]float64, k)
	m.intercepts = make([]float64, k)
	for c := 0; c < k; c++ {
		m.weights[c] = w[c*d : (c+1)*d]
		m.intercepts[c] = w[k*d+c]
	}
}

// Predict returns the class with the largest decision value.
func (m *LogisticRegression) Predict(X Matrix) ([]int, error) {
	if m.weights == nil {
		return nil, errors.New("logistic regression: predict before fit")
	}

	out := make([]int, X.Len())
	scores := make([]float64, len(m.weights))
	for i, row := range X.Rows {
		for k := range m.weights {
			scores[k] = row.Dot(m.weights[k]) + m.intercepts[k]
		}
		if len(m.weights) == 1 {
			if scores[0] > 0 {
				out[i] = m.classes[1]
			} else {
				out[i] = m.classes[0]
			}
			continue
		}
		out[i] = m.classes[argmax(scores)]
	}
	return out, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// logLoss is log(1 + exp(-margin)) computed without overflow.
func logLoss(margin float64) float64 {
	if margin > 0 {
		return math.Log1p(math.Exp(-margin))
	}
	return -margin + math.Log1p(math.Exp(margin))
}
