// Package report summarizes pipeline runs for operator review. Every
// report carries a ULID so saved runs stay distinguishable and sortable
// by time.
package report

import (
	"crypto/rand"
	"fmt"
	"io"
	"sort"

	"github.com/oklog/ulid/v2"
)

// Builder constructs run reports.
type Builder struct {
	entropy *ulid.MonotonicEntropy
}

// New creates a report builder.
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// GroupSummary describes one consolidation group for display.
type GroupSummary struct {
	Parent   string
	Size     int
	Examples []string // first few children
}

// Analysis summarizes the analysis phase.
type Analysis struct {
	ID                  string
	TotalIngredients    int
	ProcessingTerms     int
	Groups              int
	Relationships       int // total parent-child nominations
	UniqueChildren      int
	MultiParentChildren int
	TopGroups           []GroupSummary
}

// GroupInput is the minimal group shape the builder needs.
type GroupInput struct {
	Parent   string
	Children []string
}

// BuildAnalysis aggregates group statistics. topN limits TopGroups;
// examplesPerGroup limits GroupSummary.Examples.
func (b *Builder) BuildAnalysis(groups []GroupInput, totalIngredients, processingTerms, topN, examplesPerGroup int) Analysis {
	a := Analysis{
		ID:               ulid.MustNew(ulid.Now(), b.entropy).String(),
		TotalIngredients: totalIngredients,
		ProcessingTerms:  processingTerms,
		Groups:           len(groups),
	}

	parentCounts := make(map[string]int)
	for _, g := range groups {
		a.Relationships += len(g.Children)
		for _, c := range g.Children {
			parentCounts[c]++
		}
	}
	a.UniqueChildren = len(parentCounts)
	for _, n := range parentCounts {
		if n > 1 {
			a.MultiParentChildren++
		}
	}

	ordered := make([]GroupInput, len(groups))
	copy(ordered, groups)
	sort.SliceStable(ordered, func(i, j int) bool {
		if len(ordered[i].Children) != len(ordered[j].Children) {
			return len(ordered[i].Children) > len(ordered[j].Children)
		}
		return ordered[i].Parent < ordered[j].Parent
	})
	if topN > len(ordered) {
		topN = len(ordered)
	}
	for _, g := range ordered[:topN] {
		examples := g.Children
		if len(examples) > examplesPerGroup {
			examples = examples[:examplesPerGroup]
		}
		a.TopGroups = append(a.TopGroups, GroupSummary{
			Parent:   g.Parent,
			Size:     len(g.Children),
			Examples: examples,
		})
	}

	return a
}

// WriteAnalysis renders the analysis report as text.
func WriteAnalysis(w io.Writer, a Analysis) error {
	avg := 0.0
	if a.Groups > 0 {
		avg = float64(a.Relationships) / float64(a.Groups)
	}

	if _, err := fmt.Fprintf(w, "Run %s\n", a.ID); err != nil {
		return err
	}
	lines := []string{
		fmt.Sprintf("- Ingredients analyzed: %d", a.TotalIngredients),
		fmt.Sprintf("- Processing terms excluded: %d", a.ProcessingTerms),
		fmt.Sprintf("- Consolidation groups found: %d", a.Groups),
		fmt.Sprintf("- Unique ingredients to consolidate: %d", a.UniqueChildren),
		fmt.Sprintf("- Total parent-child relationships: %d", a.Relationships),
		fmt.Sprintf("- Ingredients with multiple parents: %d", a.MultiParentChildren),
		fmt.Sprintf("- Average group size: %.1f", avg),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(a.TopGroups) > 0 {
		if _, err := fmt.Fprintf(w, "\nTop %d groups by size:\n", len(a.TopGroups)); err != nil {
			return err
		}
		for i, g := range a.TopGroups {
			if _, err := fmt.Fprintf(w, "%2d. %s: %d ingredients\n", i+1, g.Parent, g.Size); err != nil {
				return err
			}
			for _, ex := range g.Examples {
				if _, err := fmt.Fprintf(w, "     - %s\n", ex); err != nil {
					return err
				}
			}
			if g.Size > len(g.Examples) {
				if _, err := fmt.Fprintf(w, "     ... and %d more\n", g.Size-len(g.Examples)); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// Finalization summarizes the finalization phase.
type Finalization struct {
	ID         string
	FoodGroups int
	Nodes      int
	Edges      int
	Aliases    int
	Depths     map[int]int // depth -> node count
}

// BuildFinalization aggregates hierarchy statistics.
func (b *Builder) BuildFinalization(foodGroups, edges, aliases int, depths []int) Finalization {
	f := Finalization{
		ID:         ulid.MustNew(ulid.Now(), b.entropy).String(),
		FoodGroups: foodGroups,
		Nodes:      len(depths),
		Edges:      edges,
		Aliases:    aliases,
		Depths:     make(map[int]int),
	}
	for _, d := range depths {
		f.Depths[d]++
	}
	return f
}

// WriteFinalization renders the finalization report as text.
func WriteFinalization(w io.Writer, f Finalization) error {
	if _, err := fmt.Fprintf(w, "Run %s\n", f.ID); err != nil {
		return err
	}
	lines := []string{
		fmt.Sprintf("Food groups:                %d", f.FoodGroups),
		fmt.Sprintf("Total ingredients:          %d", f.Nodes),
		fmt.Sprintf("Parent-child relationships: %d", f.Edges),
		fmt.Sprintf("Aliases:                    %d", f.Aliases),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\nIngredient hierarchy depths:"); err != nil {
		return err
	}
	depths := make([]int, 0, len(f.Depths))
	for d := range f.Depths {
		depths = append(depths, d)
	}
	sort.Ints(depths)
	for _, d := range depths {
		if _, err := fmt.Fprintf(w, "  Depth %d: %d ingredients\n", d, f.Depths[d]); err != nil {
			return err
		}
	}

	return nil
}
