// Package ml holds the text vectorizer, classifiers and scoring used by the benchmark.
package ml

import "math"

// Vector is a sparse row with strictly increasing indices.
type Vector struct {
	Indices []int
	Values  []float64
}

// Matrix is a list of sparse rows sharing the same width.
type Matrix struct {
	Rows []Vector
	Cols int
}

// Len returns the number of rows.
func (m Matrix) Len() int {
	return len(m.Rows)
}

// Dot computes v·w for a dense w.
func (v Vector) Dot(w []float64) float64 {
	var sum float64
	for k, idx := range v.Indices {
		sum += v.Values[k] * w[idx]
	}
	return sum
}

// AddScaledTo adds scale*v into the dense vector dst.
func (v Vector) AddScaledTo(dst []float64, scale float64) {
	for k, idx := range v.Indices {
		dst[idx] += scale * v.Values[k]
	}
}

// Norm returns the L2 norm.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// squaredEuclidean walks both index lists once.
func squaredEuclidean(a, b Vector) float64 {
	var sum float64
	mergeWalk(a, b, func(x, y float64) {
		d := x - y
		sum += d * d
	})
	return sum
}

func manhattan(a, b Vector) float64 {
	var sum float64
	mergeWalk(a, b, func(x, y float64) {
		sum += math.Abs(x - y)
	})
	return sum
}

func cosineDistance(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 1
	}
	var dot float64
	mergeWalk(a, b, func(x, y float64) {
		dot += x * y
	})
	return 1 - dot/(na*nb)
}

func mergeWalk(a, b Vector, fn func(x, y float64)) {
	i, j := 0, 0
	for i < len(a.Indices) || j < len(b.Indices) {
		switch {
		case j >= len(b.Indices) || (i < len(a.Indices) && a.Indices[i] < b.Indices[j]):
			fn(a.Values[i], 0)
			i++
		case i >= len(a.Indices) || b.Indices[j] < a.Indices[i]:
			fn(0, b.Values[j])
			j++
		default:
			fn(a.Values[i], b.Values[j])
			i++
			j++
		}
	}
}
