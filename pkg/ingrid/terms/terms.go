// Package terms identifies generic processing terms: words such as
// POWDERED or CANNED that describe preparation rather than ingredient
// identity. They co-occur with too many distinct base words to
// represent a coherent grouping concept.
package terms

import (
	"github.com/pantrylab/ingrid/pkg/ingrid/config"
	"github.com/pantrylab/ingrid/pkg/ingrid/index"
)

// Filter holds the set of words classified as processing terms for a
// single analysis run.
type Filter struct {
	terms map[string]struct{}
}

// Identify scans the index for processing terms. A word qualifies when
// its frequency exceeds ProcessingTermThreshold of the distinct word
// count and its base-word diversity exceeds BaseWordDiversityRatio of
// its frequency. The heuristic tolerates false positives; downstream
// stages simply skip flagged words.
func Identify(idx *index.WordIndex, tun config.Tunables) *Filter {
	f := &Filter{terms: make(map[string]struct{})}

	distinct := idx.DistinctWords()
	for _, word := range idx.Words() {
		freq := idx.Frequency(word)
		if float64(freq) <= float64(distinct)*tun.ProcessingTermThreshold {
			continue
		}

		baseWords := make(map[string]struct{})
		for _, name := range idx.Postings(word) {
			for _, w := range idx.Tokens(name) {
				if w == word {
					continue
				}
				if len([]rune(w)) < tun.MinBaseWordLength {
					continue
				}
				baseWords[w] = struct{}{}
			}
		}

		if float64(len(baseWords)) > float64(freq)*tun.BaseWordDiversityRatio {
			f.terms[word] = struct{}{}
		}
	}

	return f
}

// IsProcessingTerm reports whether the word was classified as a
// processing term.
func (f *Filter) IsProcessingTerm(word string) bool {
	_, ok := f.terms[word]
	return ok
}

// Count returns how many words were classified.
func (f *Filter) Count() int {
	return len(f.terms)
}
