package domain

import "time"

// Article is a corpus row as stored by the ingestion side.
type Article struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Authors     string `db:"authors"`
	Annotation  string `db:"annotation"`
	ArticleText string `db:"articleText"`
	SourceURL   string `db:"sourceUrl"`
	Flag        int    `db:"flag"`
}

// CorpusRow is the read-side projection used for classification.
type CorpusRow struct {
	Category int    `db:"category"`
	Text     string `db:"text"`
}

// Sample is a single (text, category) pair inside a dataset.
type Sample struct {
	Text     string
	Category int
}

// Dataset is an ordered collection of samples.
type Dataset struct {
	Samples []Sample
}

// Len returns the number of samples.
func (d Dataset) Len() int {
	return len(d.Samples)
}

// CategoryCounts returns per-category sample counts.
func (d Dataset) CategoryCounts() map[int]int {
	counts := make(map[int]int)
	for _, s := range d.Samples {
		counts[s.Category]++
	}
	return counts
}

// EncodedDataset holds texts with dense labels 0..K-1 and the inverse mapping.
type EncodedDataset struct {
	Texts   []string
	Labels  []int
	Classes []int
}

// Encode maps an original category to its dense code.
func (e EncodedDataset) Encode(category int) (int, bool) {
	for code, c := range e.Classes {
		if c == category {
			return code, true
		}
	}
	return 0, false
}

// Decode maps a dense code back to the original category.
func (e EncodedDataset) Decode(code int) (int, bool) {
	if code < 0 || code >= len(e.Classes) {
		return 0, false
	}
	return e.Classes[code], true
}

// Split is a train/test partition of an encoded dataset.
type Split struct {
	TrainX     []string
	TestX      []string
	TrainY     []int
	TestY      []int
	LabelNames []string
}

// Result is the outcome of one (variant, assignment) evaluation.
type Result struct {
	Variant  string
	Model    Assignment
	Accuracy float64
	Report   string
	Elapsed  time.Duration
}
