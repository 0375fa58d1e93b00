package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenizer normalizes ingredient descriptors and extracts the words
// that can act as grouping candidates.
type Tokenizer struct {
	stopwords     map[string]struct{}
	minWordLength int
}

// NewTokenizer creates a tokenizer with the given stop-word list and
// minimum word length. Stop-words are matched case-insensitively.
func NewTokenizer(stopwords []string, minWordLength int) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToUpper(w)] = struct{}{}
	}
	if minWordLength < 1 {
		minWordLength = 1
	}
	return &Tokenizer{stopwords: stops, minWordLength: minWordLength}
}

// Clean normalizes a descriptor: NFKC fold, uppercase, strip characters
// outside word chars / whitespace / hyphen / comma / period, collapse
// whitespace runs. Cleaning is idempotent.
func (t *Tokenizer) Clean(name string) string {
	name = norm.NFKC.String(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(unicode.ToUpper(r))
		case r == '-' || r == ',' || r == '.':
			b.WriteRune(r)
		default:
			// Whitespace and anything else collapses to a separator.
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize splits a descriptor into meaningful words: cleaned,
// whitespace-separated, with short tokens and stop-words dropped.
// Empty input yields an empty slice.
func (t *Tokenizer) Tokenize(name string) []string {
	fields := strings.Fields(t.Clean(name))

	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if len([]rune(w)) < t.minWordLength {
			continue
		}
		if t.isStopword(w) {
			continue
		}
		words = append(words, w)
	}
	return words
}

func (t *Tokenizer) isStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

// AddStopword adds a word to the stop-word set.
func (t *Tokenizer) AddStopword(word string) {
	t.stopwords[strings.ToUpper(word)] = struct{}{}
}

// RemoveStopword removes a word from the stop-word set.
func (t *Tokenizer) RemoveStopword(word string) {
	delete(t.stopwords, strings.ToUpper(word))
}
