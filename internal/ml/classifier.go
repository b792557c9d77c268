package ml

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"

	"ArticlesBench/internal/domain"
)

// Classifier is a supervised model over sparse rows with dense integer labels.
type Classifier interface {
	Fit(X Matrix, y []int) error
	Predict(X Matrix) ([]int, error)
}

// Factory builds a classifier from hyperparameters.
type Factory func(model domain.Assignment) (Classifier, error)

// Registry maps family names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// DefaultRegistry registers every built-in family.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("KNeighborsClassifier", NewKNeighbors)
	r.Register("LogisticRegression", NewLogisticRegression)
	r.Register("MultinomialNB", NewMultinomialNB)
	return r
}

// Register adds or replaces a factory.
func (r *Registry) Register(family string, factory Factory) {
	if r.factories == nil {
		r.factories = map[string]Factory{}
	}
	r.factories[family] = factory
}

// Families lists registered names in sorted order.
func (r *Registry) Families() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New instantiates the classifier for model.Family or returns *domain.ConfigurationError.
func (r *Registry) New(model domain.Assignment) (Classifier, error) {
	factory, ok := r.factories[model.Family]
	if !ok {
		return nil, &domain.ConfigurationError{Family: model.Family, Reason: "unsupported algorithm family"}
	}
	return factory(model)
}

// classesOf returns the sorted distinct labels of y.
func classesOf(y []int) []int {
	classes := slices.Clone(y)
	slices.Sort(classes)
	return slices.Compact(classes)
}

func checkFitInput(X Matrix, y []int) error {
	if X.Len() == 0 {
		return &domain.InsufficientDataError{What: "empty training set"}
	}
	if X.Len() != len(y) {
		return fmt.Errorf("fit: %d rows but %d labels", X.Len(), len(y))
	}
	return nil
}

// argmax returns the first index of the largest score, so ties go to the lowest class.
func argmax(scores []float64) int {
	return floats.MaxIdx(scores)
}
