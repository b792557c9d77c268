// Package textnorm implements deterministic Russian text normalization.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"ArticlesBench/internal/ports"
)

const minTokenRunes = 3

// Dictionary tells whether a token is a valid word form.
type Dictionary interface {
	Known(word string) bool
}

// AcceptAll is a Dictionary that knows every word.
type AcceptAll struct{}

// Known always returns true.
func (AcceptAll) Known(string) bool { return true }

// Normalizer applies the fixed normalization chain. It is not safe for concurrent use.
type Normalizer struct {
	stopwords     WordSet
	dictionary    Dictionary
	hasDictionary bool
	lower         cases.Caser
}

var _ ports.TextNormalizer = (*Normalizer)(nil)

// New builds a normalizer; a nil dictionary accepts every token.
func New(stopwords WordSet, dictionary Dictionary) *Normalizer {
	if stopwords == nil {
		stopwords = WordSet{}
	}
	hasDictionary := dictionary != nil
	if !hasDictionary {
		dictionary = AcceptAll{}
	}
	return &Normalizer{
		stopwords:     stopwords,
		dictionary:    dictionary,
		hasDictionary: hasDictionary,
		lower:         newLower(),
	}
}

// HasDictionary reports whether tokens are checked against a real dictionary.
func (n *Normalizer) HasDictionary() bool {
	return n.hasDictionary
}

// Normalize lowercases, folds ё, keeps only а-я tokens longer than two letters
// that are neither stopwords nor unknown to the dictionary.
func (n *Normalizer) Normalize(text string) string {
	text = strings.Map(func(r rune) rune {
		if (r >= 'а' && r <= 'я') || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, fold(n.lower, text))

	tokens := strings.Fields(text)
	kept := tokens[:0]
	for _, tok := range tokens {
		if n.stopwords.Contains(tok) {
			continue
		}
		if utf8.RuneCountInString(tok) < minTokenRunes {
			continue
		}
		if !n.dictionary.Known(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// newLower returns the caser shared by text normalization and word list loading.
func newLower() cases.Caser {
	return cases.Lower(language.Russian)
}

// fold composes, lowercases with lower and replaces ё with е.
func fold(lower cases.Caser, s string) string {
	return strings.ReplaceAll(lower.String(norm.NFC.String(s)), "ё", "е")
}
