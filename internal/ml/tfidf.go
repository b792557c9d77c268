package ml

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"ArticlesBench/internal/domain"
)

// TFIDF is a term-frequency/inverse-document-frequency vectorizer with smooth
// idf, raw counts and L2-normalized rows. Tokens are runs of at least two word
// characters after lowercasing.
type TFIDF struct {
	vocabulary map[string]int
	idf        []float64
}

// NewTFIDF returns an unfitted vectorizer.
func NewTFIDF() *TFIDF {
	return &TFIDF{}
}

// Fit learns the vocabulary and idf weights from docs.
func (t *TFIDF) Fit(docs []string) error {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range tokenize(doc) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}
	if len(df) == 0 {
		return &domain.InsufficientDataError{What: "empty vocabulary; documents contain no tokens"}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	slices.Sort(terms)

	n := float64(len(docs))
	t.vocabulary = make(map[string]int, len(terms))
	t.idf = make([]float64, len(terms))
	for i, term := range terms {
		t.vocabulary[term] = i
		t.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return nil
}

// Transform maps docs onto the fitted vocabulary; unknown terms are ignored.
func (t *TFIDF) Transform(docs []string) (Matrix, error) {
	if t.vocabulary == nil {
		return Matrix{}, fmt.Errorf("tfidf: transform before fit")
	}

	m := Matrix{Rows: make([]Vector, len(docs)), Cols: len(t.idf)}
	for i, doc := range docs {
		counts := make(map[int]float64)
		for _, tok := range tokenize(doc) {
			if idx, ok := t.vocabulary[tok]; ok {
				counts[idx]++
			}
		}

		row := Vector{Indices: make([]int, 0, len(counts)), Values: make([]float64, 0, len(counts))}
		for idx := range counts {
			row.Indices = append(row.Indices, idx)
		}
		slices.Sort(row.Indices)
		for _, idx := range row.Indices {
			row.Values = append(row.Values, counts[idx]*t.idf[idx])
		}
		if norm := row.Norm(); norm > 0 {
			for k := range row.Values {
				row.Values[k] /= norm
			}
		}
		m.Rows[i] = row
	}
	return m, nil
}

// FitTransform fits on docs and transforms them.
func (t *TFIDF) FitTransform(docs []string) (Matrix, error) {
	if err := t.Fit(docs); err != nil {
		return Matrix{}, err
	}
	return t.Transform(docs)
}

// Vocabulary returns the fitted terms in column order.
func (t *TFIDF) Vocabulary() []string {
	terms := make([]string, len(t.vocabulary))
	for term, idx := range t.vocabulary {
		terms[idx] = term
	}
	return terms
}

func tokenize(doc string) []string {
	fields := strings.FieldsFunc(strings.ToLower(doc), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_')
	})
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
