package ml

import (
	"errors"
	"fmt"
	"math"

	"ArticlesBench/internal/domain"
)

const minAlpha = 1e-10

// MultinomialNB is a multinomial naive Bayes classifier over non-negative features.
type MultinomialNB struct {
	alpha    float64
	fitPrior bool

	classes     []int
	logPrior    []float64
	featureLogP [][]float64
}

// NewMultinomialNB reads alpha and fit_prior.
func NewMultinomialNB(model domain.Assignment) (Classifier, error) {
	p := newParamReader(model)
	alpha := p.floatValue("alpha", 1.0)
	fitPrior := p.boolValue("fit_prior", true)
	p.skip("force_alpha")
	if err := p.done(); err != nil {
		return nil, err
	}
	if alpha < 0 || math.IsNaN(alpha) {
		return nil, &domain.ConfigurationError{Family: model.Family, Param: "alpha", Reason: fmt.Sprintf("must be >= 0, got %v", alpha)}
	}
	return &MultinomialNB{alpha: max(alpha, minAlpha), fitPrior: fitPrior}, nil
}

// Fit accumulates per-class feature mass.
func (c *MultinomialNB) Fit(X Matrix, y []int) error {
	if err := checkFitInput(X, y); err != nil {
		return err
	}

	c.classes = classesOf(y)
	index := make(map[int]int, len(c.classes))
	for i, cl := range c.classes {
		index[cl] = i
	}

	counts := make([][]float64, len(c.classes))
	for k := range counts {
		counts[k] = make([]float64, X.Cols)
	}
	classCount := make([]float64, len(c.classes))
	for i, row := range X.Rows {
		k := index[y[i]]
		classCount[k]++
		for j, idx := range row.Indices {
			if row.Values[j] < 0 {
				return &domain.ConfigurationError{Family: "MultinomialNB", Reason: "negative feature values"}
			}
			counts[k][idx] += row.Values[j]
		}
	}

	c.logPrior = make([]float64, len(c.classes))
	c.featureLogP = make([][]float64, len(c.classes))
	for k := range c.classes {
		if c.fitPrior {
			c.logPrior[k] = math.Log(classCount[k] / float64(X.Len()))
		} else {
			c.logPrior[k] = -math.Log(float64(len(c.classes)))
		}

		var total float64
		for _, v := range counts[k] {
			total += v
		}
		denom := math.Log(total + c.alpha*float64(X.Cols))
		c.featureLogP[k] = make([]float64, X.Cols)
		for j, v := range counts[k] {
			c.featureLogP[k][j] = math.Log(v+c.alpha) - denom
		}
	}
	return nil
}

// Predict returns the class with the highest joint log likelihood.
func (c *MultinomialNB) Predict(X Matrix) ([]int, error) {
	if c.classes == nil {
		return nil, errors.New("multinomial nb: predict before fit")
	}

	out := make([]int, X.Len())
	scores := make([]float64, len(c.classes))
	for i, row := range X.Rows {
		for k := range c.classes {
			scores[k] = c.logPrior[k] + row.Dot(c.featureLogP[k])
		}
		out[i] = c.classes[argmax(scores)]
	}
	return out, nil
}
