// Package ingrid wires the consolidation pipeline together: analysis
// proposes parent groups from shared words, a human edits the proposal,
// finalization turns the approved groups into a multi-parent hierarchy.
package ingrid

import (
	"context"

	"github.com/pantrylab/ingrid/pkg/ingrid/assign"
	"github.com/pantrylab/ingrid/pkg/ingrid/config"
	"github.com/pantrylab/ingrid/pkg/ingrid/hierarchy"
	"github.com/pantrylab/ingrid/pkg/ingrid/index"
	"github.com/pantrylab/ingrid/pkg/ingrid/ingest"
	"github.com/pantrylab/ingrid/pkg/ingrid/proposal"
	"github.com/pantrylab/ingrid/pkg/ingrid/report"
	"github.com/pantrylab/ingrid/pkg/ingrid/score"
	"github.com/pantrylab/ingrid/pkg/ingrid/terms"
	"github.com/pantrylab/ingrid/pkg/ingrid/store"
)

// Report display limits.
const (
	topGroupsToShow       = 10
	exampleChildrenToShow = 2
)

// Ingredient is one row of the analysis input.
type Ingredient struct {
	Name      string
	FoodGroup string
}

// Synonym is one row of the optional synonyms input.
type Synonym struct {
	PDName    string
	AliasName string
}

// Engine runs the consolidation pipeline.
type Engine struct {
	settings  *config.Settings
	tokenizer *ingest.Tokenizer
	reports   *report.Builder
}

// Options configures an Engine.
type Options struct {
	// Settings for the run; nil means embedded defaults.
	Settings *config.Settings
}

// New creates an Engine with the given options.
func New(opts Options) *Engine {
	settings := opts.Settings
	if settings == nil {
		settings = &config.Settings{
			Tunables:  config.DefaultTunables(),
			Stopwords: config.DefaultStopwords(),
			Denylist:  config.DefaultDenylist(),
		}
	}

	return &Engine{
		settings:  settings,
		tokenizer: ingest.NewTokenizer(settings.Stopwords.Terms, settings.Tunables.MinWordLength),
		reports:   report.New(),
	}
}

// AnalysisResult holds the proposed groups and run statistics.
type AnalysisResult struct {
	Groups []proposal.Group
	Report report.Analysis
}

// Analyze mines shared words across ingredient names and proposes
// consolidation groups. Identical inputs always yield identical groups.
func (e *Engine) Analyze(ingredients []Ingredient) AnalysisResult {
	tun := e.settings.Tunables

	indexed := make([]index.Ingredient, len(ingredients))
	foodGroups := make(map[string]string, len(ingredients))
	for i, ing := range ingredients {
		indexed[i] = index.Ingredient{Name: ing.Name, FoodGroup: ing.FoodGroup}
		foodGroups[ing.Name] = ing.FoodGroup
	}

	idx := index.Build(e.tokenizer, indexed)
	filter := terms.Identify(idx, tun)
	scorer := score.NewScorer(e.tokenizer, tun)
	ranked := scorer.Rank(idx, filter.IsProcessingTerm)
	groups, _ := assign.New(tun).Assign(ranked, idx, foodGroups)

	result := AnalysisResult{
		Groups: make([]proposal.Group, len(groups)),
	}
	reportGroups := make([]report.GroupInput, len(groups))
	for i, g := range groups {
		children := make([]proposal.Child, len(g.Children))
		names := make([]string, len(g.Children))
		for j, c := range g.Children {
			children[j] = proposal.Child{Name: c.Name, FoodGroup: c.FoodGroup}
			names[j] = c.Name
		}
		result.Groups[i] = proposal.Group{Parent: g.Parent, Children: children}
		reportGroups[i] = report.GroupInput{Parent: g.Parent, Children: names}
	}

	result.Report = e.reports.BuildAnalysis(reportGroups, len(ingredients),
		filter.Count(), topGroupsToShow, exampleChildrenToShow)

	return result
}

// FinalizeResult holds the built hierarchy and run statistics.
type FinalizeResult struct {
	Hierarchy hierarchy.Hierarchy
	Report    report.Finalization
}

// Finalize builds the hierarchy from approved groups, the original
// ingredient collection and optional synonyms. Groups below the
// minimum size are dropped: a single-child group consolidates nothing.
func (e *Engine) Finalize(groups []proposal.Group, ingredients []Ingredient, synonyms []Synonym) FinalizeResult {
	minSize := e.settings.Tunables.MinGroupSize

	hgroups := make([]hierarchy.Group, 0, len(groups))
	for _, g := range groups {
		if len(g.Children) < minSize {
			continue
		}
		children := make([]hierarchy.Child, len(g.Children))
		for i, c := range g.Children {
			children[i] = hierarchy.Child{Name: c.Name, FoodGroup: c.FoodGroup}
		}
		hgroups = append(hgroups, hierarchy.Group{Parent: g.Parent, Children: children})
	}

	hingredients := make([]hierarchy.Ingredient, len(ingredients))
	for i, ing := range ingredients {
		hingredients[i] = hierarchy.Ingredient{Name: ing.Name, FoodGroup: ing.FoodGroup}
	}
	hsynonyms := make([]hierarchy.Synonym, len(synonyms))
	for i, s := range synonyms {
		hsynonyms[i] = hierarchy.Synonym{PDName: s.PDName, AliasName: s.AliasName}
	}

	h := hierarchy.Build(hgroups, hingredients, hsynonyms)

	depths := make([]int, len(h.Nodes))
	for i, n := range h.Nodes {
		depths[i] = n.Depth
	}

	return FinalizeResult{
		Hierarchy: h,
		Report: e.reports.BuildFinalization(len(h.FoodGroups), len(h.Edges),
			len(h.Aliases), depths),
	}
}

// Seed persists a finalized hierarchy into the given store.
func (e *Engine) Seed(ctx context.Context, st store.Store, h hierarchy.Hierarchy) error {
	payload := store.Hierarchy{
		FoodGroups: h.FoodGroups,
		Nodes:      make([]store.Node, len(h.Nodes)),
		Edges:      make([]store.Edge, len(h.Edges)),
		Aliases:    make([]store.Alias, len(h.Aliases)),
	}
	for i, n := range h.Nodes {
		payload.Nodes[i] = store.Node{Name: n.Name, FoodGroup: n.FoodGroup, Depth: n.Depth}
	}
	for i, edge := range h.Edges {
		payload.Edges[i] = store.Edge{Parent: edge.Parent, Child: edge.Child}
	}
	for i, a := range h.Aliases {
		payload.Aliases[i] = store.Alias{AliasName: a.AliasName, IngredientName: a.IngredientName}
	}

	return st.SeedHierarchy(ctx, payload)
}
