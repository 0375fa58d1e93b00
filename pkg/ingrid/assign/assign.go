// Package assign forms consolidation groups from ranked candidate
// words. Assignment is greedy: the best-scored words claim ingredient
// capacity first, and every ingredient joins at most a fixed number of
// parent groups.
package assign

import (
	"github.com/pantrylab/ingrid/pkg/ingrid/config"
	"github.com/pantrylab/ingrid/pkg/ingrid/index"
	"github.com/pantrylab/ingrid/pkg/ingrid/score"
)

// Child is one ingredient nominated into a group.
type Child struct {
	Name      string
	FoodGroup string
}

// Group is a proposed parent concept with its nominated children.
type Group struct {
	Parent   string
	Children []Child
}

// State tracks how many parent groups each ingredient has joined.
// It is passed explicitly between assignment steps rather than hidden
// inside the assigner.
type State struct {
	parentCount map[string]int
	cap         int
}

// NewState creates an empty assignment state with the given parent cap.
func NewState(maxParents int) *State {
	return &State{parentCount: make(map[string]int), cap: maxParents}
}

// Available reports whether the ingredient can still join a group.
func (s *State) Available(name string) bool {
	return s.parentCount[name] < s.cap
}

// ParentCount returns how many groups the ingredient has joined.
func (s *State) ParentCount(name string) int {
	return s.parentCount[name]
}

func (s *State) claim(name string) {
	s.parentCount[name]++
}

// Assigner forms groups from ranked candidates.
type Assigner struct {
	tun config.Tunables
}

// New creates an assigner with the given tunables.
func New(tun config.Tunables) *Assigner {
	return &Assigner{tun: tun}
}

// Assign walks candidates in rank order and forms a group for each
// word that still has at least MinGroupSize available ingredients.
// Lower-scored words only consume capacity the higher-scored ones left
// behind. Returned groups preserve rank order; children are in posting
// order (alphabetical). foodGroups maps ingredient name to food group.
func (a *Assigner) Assign(candidates []score.Candidate, idx *index.WordIndex, foodGroups map[string]string) ([]Group, *State) {
	state := NewState(a.tun.MaxParentsPerIngredient)
	var groups []Group

	for _, cand := range candidates {
		available := make([]string, 0)
		for _, name := range idx.Postings(cand.Word) {
			if state.Available(name) {
				available = append(available, name)
			}
		}

		if len(available) < a.tun.MinGroupSize {
			continue
		}

		group := Group{Parent: cand.Word, Children: make([]Child, 0, len(available))}
		for _, name := range available {
			group.Children = append(group.Children, Child{
				Name:      name,
				FoodGroup: foodGroups[name],
			})
			state.claim(name)
		}
		groups = append(groups, group)
	}

	return groups, state
}
