package ml

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"ArticlesBench/internal/domain"
)

// KNeighbors is an exact brute-force k-nearest-neighbours classifier.
type KNeighbors struct {
	k        int
	weights  string
	distance func(a, b Vector) float64

	train   Matrix
	labels  []int
	classes []int
}

// NewKNeighbors reads n_neighbors, weights, metric and algorithm.
func NewKNeighbors(model domain.Assignment) (Classifier, error) {
	p := newParamReader(model)
	k := p.intValue("n_neighbors", 5)
	weights := p.choice("weights", "uniform", "uniform", "distance")
	metric := p.choice("metric", "minkowski", "minkowski", "euclidean", "manhattan", "cityblock", "l1", "l2", "cosine")
	// every algorithm yields identical neighbours; the choice only affects speed
	p.choice("algorithm", "auto", "auto", "brute", "ball_tree", "kd_tree")
	p.skip("n_jobs")
	if err := p.done(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, &domain.ConfigurationError{Family: model.Family, Param: "n_neighbors", Reason: fmt.Sprintf("must be positive, got %d", k)}
	}

	knn := &KNeighbors{k: k, weights: weights}
	switch metric {
	case "manhattan", "cityblock", "l1":
		knn.distance = manhattan
	case "cosine":
		knn.distance = cosineDistance
	default:
		knn.distance = func(a, b Vector) float64 { return math.Sqrt(squaredEuclidean(a, b)) }
	}
	return knn, nil
}

// Fit memorizes the training rows.
func (c *KNeighbors) Fit(X Matrix, y []int) error {
	if err := checkFitInput(X, y); err != nil {
		return err
	}
	if c.k > X.Len() {
		return &domain.ConfigurationError{
			Family: "KNeighborsClassifier",
			Param:  "n_neighbors",
			Reason: fmt.Sprintf("%d exceeds %d training samples", c.k, X.Len()),
		}
	}
	c.train = X
	c.labels = y
	c.classes = classesOf(y)
	return nil
}

type neighbour struct {
	dist  float64
	index int
}

// Predict votes among the k closest rows; ties go to the lowest class.
func (c *KNeighbors) Predict(X Matrix) ([]int, error) {
	if c.classes == nil {
		return nil, errors.New("knn: predict before fit")
	}

	classIndex := make(map[int]int, len(c.classes))
	for i, cl := range c.classes {
		classIndex[cl] = i
	}

	out := make([]int, X.Len())
	neighbours := make([]neighbour, c.train.Len())
	votes := make([]float64, len(c.classes))
	for i, row := range X.Rows {
		for j, trainRow := range c.train.Rows {
			neighbours[j] = neighbour{dist: c.distance(row, trainRow), index: j}
		}
		sort.SliceStable(neighbours, func(a, b int) bool {
			return neighbours[a].dist < neighbours[b].dist
		})
		nearest := neighbours[:c.k]

		clear(votes)
		exact := c.weights == "distance" && nearest[0].dist == 0
		for _, nb := range nearest {
			w := 1.0
			if c.weights == "distance" {
				switch {
				case exact && nb.dist == 0:
					w = 1
				case exact:
					w = 0
				default:
					w = 1 / nb.dist
				}
			}
			votes[classIndex[c.labels[nb.index]]] += w
		}
		out[i] = c.classes[argmax(votes)]
	}
	return out, nil
}
