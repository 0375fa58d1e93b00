// Package hierarchy turns approved consolidation groups plus the
// original ingredient collection into the finalized multi-parent
// hierarchy: nodes with resolved food groups and depths, parent-child
// edges, and remapped aliases.
package hierarchy

import (
	"fmt"
	"sort"
)

// Child is one approved child entry under a parent.
type Child struct {
	Name      string
	FoodGroup string
}

// Group is an approved parent concept with its children.
type Group struct {
	Parent   string
	Children []Child
}

// Ingredient is one row of the original collection.
type Ingredient struct {
	Name      string
	FoodGroup string
}

// Synonym is one row of the optional synonyms dataset.
type Synonym struct {
	PDName    string
	AliasName string
}

// Node is a finalized ingredient with its hierarchy depth: 0 for a
// root, otherwise one more than the deepest parent.
type Node struct {
	Name      string
	FoodGroup string
	Depth     int
}

// Edge is a retained parent-child relationship.
type Edge struct {
	Parent string
	Child  string
}

// Alias maps an alternate name onto a finalized ingredient.
type Alias struct {
	AliasName      string
	IngredientName string
}

// Hierarchy is the finalized output of a consolidation run.
type Hierarchy struct {
	FoodGroups []string // sorted union across originals and children
	Nodes      []Node   // sorted by name
	Edges      []Edge   // in approval order
	Aliases    []Alias  // in synonym input order, dead rows dropped
	Notes      []string // recoverable oddities (self-references)
	Warnings   []string // cycle reports
}

// Build assembles the hierarchy. Self-referential children produce a
// note and no edge; cycles in the approved edges are reported and
// resolved to depth 0 at the revisited node instead of failing the run.
func Build(groups []Group, ingredients []Ingredient, synonyms []Synonym) Hierarchy {
	var h Hierarchy

	foodGroups := make(map[string]struct{})
	for _, ing := range ingredients {
		foodGroups[ing.FoodGroup] = struct{}{}
	}
	for _, g := range groups {
		for _, c := range g.Children {
			foodGroups[c.FoodGroup] = struct{}{}
		}
	}
	h.FoodGroups = make([]string, 0, len(foodGroups))
	for fg := range foodGroups {
		h.FoodGroups = append(h.FoodGroups, fg)
	}
	sort.Strings(h.FoodGroups)

	registered := make(map[string]string) // name -> food group
	register := func(name, foodGroup string) {
		if _, ok := registered[name]; !ok {
			registered[name] = foodGroup
		}
	}

	for _, g := range groups {
		register(g.Parent, parentFoodGroup(g.Children))

		for _, c := range g.Children {
			if c.Name == g.Parent {
				h.Notes = append(h.Notes,
					fmt.Sprintf("skipping self-reference for %q (same as parent)", c.Name))
				continue
			}
			register(c.Name, c.FoodGroup)
			h.Edges = append(h.Edges, Edge{Parent: g.Parent, Child: c.Name})
		}
	}

	for _, ing := range ingredients {
		register(ing.Name, ing.FoodGroup)
	}

	depths, warnings := resolveDepths(registered, h.Edges)
	h.Warnings = warnings

	h.Nodes = make([]Node, 0, len(registered))
	for name, fg := range registered {
		h.Nodes = append(h.Nodes, Node{Name: name, FoodGroup: fg, Depth: depths[name]})
	}
	sort.Slice(h.Nodes, func(i, j int) bool { return h.Nodes[i].Name < h.Nodes[j].Name })

	for _, syn := range synonyms {
		if _, ok := registered[syn.PDName]; !ok {
			// The referenced ingredient was filtered upstream.
			continue
		}
		h.Aliases = append(h.Aliases, Alias{
			AliasName:      syn.AliasName,
			IngredientName: syn.PDName,
		})
	}

	return h
}

// parentFoodGroup picks the most frequent food group among children,
// breaking ties in favor of the first one encountered.
func parentFoodGroup(children []Child) string {
	counts := make(map[string]int)
	var order []string
	for _, c := range children {
		if _, ok := counts[c.FoodGroup]; !ok {
			order = append(order, c.FoodGroup)
		}
		counts[c.FoodGroup]++
	}

	best := ""
	bestCount := -1
	for _, fg := range order {
		if counts[fg] > bestCount {
			best = fg
			bestCount = counts[fg]
		}
	}
	return best
}

// Traversal colors for depth resolution.
const (
	white = iota // unvisited
	gray         // on the current traversal path
	black        // depth finalized
)

// resolveDepths computes every node's depth with an explicit iterative
// traversal: memoized finished depths, an in-progress marker per path,
// and cycle short-circuiting. Revisiting a gray node means the approved
// edges contain a cycle; that node is finalized at depth 0 with a
// warning and every other node still resolves.
func resolveDepths(registered map[string]string, edges []Edge) (map[string]int, []string) {
	parentsOf := make(map[string][]string)
	for _, e := range edges {
		parentsOf[e.Child] = append(parentsOf[e.Child], e.Parent)
	}

	depths := make(map[string]int, len(registered))
	colors := make(map[string]int, len(registered))
	var warnings []string

	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)

	type frame struct {
		name string
		next int // index of the next parent to resolve
	}

	for _, root := range names {
		if colors[root] != white {
			continue
		}

		stack := []frame{{name: root}}
		colors[root] = gray

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			parents := parentsOf[f.name]

			if f.next < len(parents) {
				p := parents[f.next]
				f.next++

				switch colors[p] {
				case white:
					colors[p] = gray
					stack = append(stack, frame{name: p})
				case gray:
					warnings = append(warnings,
						fmt.Sprintf("cycle detected involving %q", p))
					depths[p] = 0
					colors[p] = black
				}
				continue
			}

			// All parents resolved; finalize unless a cycle already
			// pinned this node to depth 0.
			if colors[f.name] != black {
				depth := 0
				for _, p := range parents {
					if d := depths[p] + 1; d > depth {
						depth = d
					}
				}
				depths[f.name] = depth
				colors[f.name] = black
			}
			stack = stack[:len(stack)-1]
		}
	}

	return depths, warnings
}
