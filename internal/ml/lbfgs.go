package ml

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// objective writes the gradient at w into grad and returns the loss.
type objective func(w, grad []float64) float64

const lbfgsMemory = 10

// minimizeLBFGS runs gonum's limited-memory BFGS from w0. It stops after
// maxIter major iterations or when the largest gradient component is at most
// gtol. A line search failure keeps the best point reached so far.
func minimizeLBFGS(f objective, w0 []float64, maxIter int, gtol float64) []float64 {
	cache := newGradCache(f, len(w0))
	problem := optimize.Problem{
		Func: cache.loss,
		Grad: cache.grad,
	}
	settings := &optimize.Settings{
		MajorIterations:   maxIter,
		GradientThreshold: gtol,
	}

	result, err := optimize.Minimize(problem, slices.Clone(w0), settings, &optimize.LBFGS{Store: lbfgsMemory})
	if result == nil || (err != nil && result.X == nil) {
		return slices.Clone(w0)
	}
	return result.X
}

// gradCache evaluates loss and gradient together and serves the gradient for
// the last point without a second pass over the data.
type gradCache struct {
	f     objective
	x     []float64
	g     []float64
	valid bool
}

func newGradCache(f objective, n int) *gradCache {
	return &gradCache{f: f, x: make([]float64, n), g: make([]float64, n)}
}

func (c *gradCache) loss(x []float64) float64 {
	v := c.f(x, c.g)
	copy(c.x, x)
	c.valid = true
	return v
}

func (c *gradCache) grad(grad, x []float64) {
	if !c.valid || !floats.Equal(c.x, x) {
		c.loss(x)
	}
	copy(grad, c.g)
}
