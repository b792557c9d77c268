package textnorm

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed stopwords_ru.txt
var russianStopwords string

// WordSet is a set of folded word forms.
type WordSet map[string]struct{}

// Contains reports whether word is in the set.
func (s WordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Known implements Dictionary.
func (s WordSet) Known(word string) bool {
	return s.Contains(word)
}

// NewWordSet folds and stores the given words.
func NewWordSet(words ...string) WordSet {
	set := make(WordSet, len(words))
	lower := newLower()
	for _, w := range words {
		if w = fold(lower, strings.TrimSpace(w)); w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// ReadWordSet reads one word per line; blank lines and lines starting with '#' are skipped.
func ReadWordSet(r io.Reader) (WordSet, error) {
	set := WordSet{}
	lower := newLower()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[fold(lower, line)] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return set, nil
}

// LoadWordSet reads a word list file.
func LoadWordSet(path string) (WordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	return ReadWordSet(f)
}

// RussianStopwords returns the built-in Russian stopword list.
// It panics if the embedded list cannot be read.
func RussianStopwords() WordSet {
	set, err := ReadWordSet(strings.NewReader(russianStopwords))
	if err != nil {
		panic(fmt.Sprintf("textnorm: embedded stopwords: %v", err))
	}
	return set
}
