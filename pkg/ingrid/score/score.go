// Package score rates candidate grouping words. A word's score blends
// how many ingredients it covers, how coherent those ingredients are,
// whether it leads the name, and its length.
package score

import (
	"sort"
	"strings"

	"github.com/pantrylab/ingrid/pkg/ingrid/config"
	"github.com/pantrylab/ingrid/pkg/ingrid/index"
	"github.com/pantrylab/ingrid/pkg/ingrid/ingest"
)

// Candidate is a scored grouping word.
type Candidate struct {
	Word  string
	Score float64
}

// Scorer scores candidate words over a built index.
type Scorer struct {
	tok *ingest.Tokenizer
	tun config.Tunables
}

// NewScorer creates a scorer with the given tokenizer and tunables.
func NewScorer(tok *ingest.Tokenizer, tun config.Tunables) *Scorer {
	return &Scorer{tok: tok, tun: tun}
}

// Score computes the grouping potential of a single word. Words
// covering too few or too many ingredients score 0.
func (s *Scorer) Score(word string, idx *index.WordIndex) float64 {
	postings := idx.Postings(word)
	n := len(postings)

	if n < s.tun.MinGroupSize {
		return 0
	}
	if float64(n) > float64(idx.TotalIngredients())*s.tun.MaxIngredientPercentage {
		return 0
	}

	total := float64(n) * 10
	if total > s.tun.MaxFrequencyScore {
		total = s.tun.MaxFrequencyScore
	}

	total += s.coherence(word, postings, idx)

	beginning := 0
	for _, name := range postings {
		if strings.HasPrefix(s.tok.Clean(name), word+" ") {
			beginning++
		}
	}
	total += float64(beginning) / float64(n) * s.tun.BeginningWordBonus

	switch wordLen := len([]rune(word)); {
	case wordLen >= 6:
		total += s.tun.LongWordBonus
	case wordLen >= 4:
		total += s.tun.MediumWordBonus
	}

	return total
}

// coherence measures how many of the words surrounding the candidate
// are shared between postings. A tight group (SWISS CHEESE, CHEDDAR
// CHEESE SHREDDED, ...) repeats its companions; a scattered one does not.
func (s *Scorer) coherence(word string, postings []string, idx *index.WordIndex) float64 {
	otherCounts := make(map[string]int)
	for _, name := range postings {
		for _, w := range idx.Tokens(name) {
			if w != word {
				otherCounts[w]++
			}
		}
	}

	if len(otherCounts) == 0 {
		return 0
	}

	shared := 0
	for _, count := range otherCounts {
		if count > 1 {
			shared++
		}
	}

	return float64(shared) / float64(len(otherCounts)) * s.tun.CoherenceMultiplier
}

// Rank scores every candidate word in the index, excluding processing
// terms, and returns those clearing the minimum threshold in
// descending score order. Ties break alphabetically so identical
// inputs always rank identically.
func (s *Scorer) Rank(idx *index.WordIndex, isExcluded func(string) bool) []Candidate {
	var candidates []Candidate
	for _, word := range idx.Words() {
		if isExcluded != nil && isExcluded(word) {
			continue
		}
		if sc := s.Score(word, idx); sc >= s.tun.MinScoreThreshold {
			candidates = append(candidates, Candidate{Word: word, Score: sc})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Word < candidates[j].Word
	})

	return candidates
}
