// Package index builds word-level statistics over a full ingredient
// collection: which ingredients contain each word, and how many
// ingredients each word appears in.
package index

import (
	"sort"

	"github.com/pantrylab/ingrid/pkg/ingrid/ingest"
)

// Ingredient is one row of the analysis input.
type Ingredient struct {
	Name      string
	FoodGroup string
}

// WordIndex maps words to the ingredients containing them. A word
// appearing twice in one name counts once for that ingredient.
type WordIndex struct {
	postings  map[string]map[string]struct{}
	frequency map[string]int
	tokens    map[string][]string
	total     int
}

// Build tokenizes every ingredient name and accumulates postings and
// per-word ingredient counts.
func Build(tok *ingest.Tokenizer, ingredients []Ingredient) *WordIndex {
	idx := &WordIndex{
		postings:  make(map[string]map[string]struct{}),
		frequency: make(map[string]int),
		tokens:    make(map[string][]string, len(ingredients)),
		total:     len(ingredients),
	}

	for _, ing := range ingredients {
		words := tok.Tokenize(ing.Name)
		idx.tokens[ing.Name] = words

		seen := make(map[string]struct{})
		for _, word := range words {
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}

			if idx.postings[word] == nil {
				idx.postings[word] = make(map[string]struct{})
			}
			idx.postings[word][ing.Name] = struct{}{}
			idx.frequency[word]++
		}
	}

	return idx
}

// TotalIngredients returns the size of the indexed collection.
func (x *WordIndex) TotalIngredients() int {
	return x.total
}

// DistinctWords returns the number of distinct words observed.
func (x *WordIndex) DistinctWords() int {
	return len(x.frequency)
}

// Frequency returns how many ingredients contain the word.
func (x *WordIndex) Frequency(word string) int {
	return x.frequency[word]
}

// Postings returns the names of ingredients containing the word,
// sorted for deterministic iteration.
func (x *WordIndex) Postings(word string) []string {
	set, ok := x.postings[word]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tokens returns the tokenization recorded for an ingredient name
// during Build. Unknown names yield nil.
func (x *WordIndex) Tokens(name string) []string {
	return x.tokens[name]
}

// Words returns every indexed word, sorted.
func (x *WordIndex) Words() []string {
	words := make([]string, 0, len(x.frequency))
	for w := range x.frequency {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
