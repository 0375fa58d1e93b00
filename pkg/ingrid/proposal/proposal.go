// Package proposal reads and writes the human-editable consolidation
// proposal format:
//
//	[PARENT_NAME]
//	child_name,food_group
//	child_name,food_group
//
// Lines starting with '#' are comments, blank lines separate sections.
// The format is the review boundary: a human edits the proposed groups
// before finalization.
package proposal

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Child is one ingredient entry under a parent section.
type Child struct {
	Name      string
	FoodGroup string
}

// Group is a parent section with its children.
type Group struct {
	Parent   string
	Children []Child
}

var header = []string{
	"# Ingredient Consolidation Proposal",
	"# ",
	"# This file contains proposed ingredient consolidations.",
	"# Each section represents a potential parent ingredient with its children.",
	"# ",
	"# The same ingredient can appear under multiple parent sections.",
	"# ",
	"# To DISABLE a consolidation group, comment out the entire section",
	"# by adding '#' at the beginning of each line.",
	"# ",
	"# To REMOVE specific children from a group, comment out just those lines.",
	"# ",
	"# Format:",
	"# [PARENT_INGREDIENT_NAME]",
	"# child_ingredient_name,food_group",
	"# ",
	"# After editing, run ingrid-finalize to process this file.",
	"# ",
}

// Write serializes groups: largest first (ties by parent name so
// identical inputs produce identical bytes), children sorted by name.
func Write(w io.Writer, groups []Group) error {
	bw := bufio.NewWriter(w)

	for _, line := range header {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}

	ordered := make([]Group, len(groups))
	copy(ordered, groups)
	sort.SliceStable(ordered, func(i, j int) bool {
		if len(ordered[i].Children) != len(ordered[j].Children) {
			return len(ordered[i].Children) > len(ordered[j].Children)
		}
		return ordered[i].Parent < ordered[j].Parent
	})

	for _, g := range ordered {
		if _, err := fmt.Fprintf(bw, "[%s]\n", g.Parent); err != nil {
			return err
		}

		children := make([]Child, len(g.Children))
		copy(children, g.Children)
		sort.Slice(children, func(i, j int) bool {
			return children[i].Name < children[j].Name
		})

		for _, c := range children {
			if _, err := fmt.Fprintf(bw, "%s,%s\n", c.Name, c.FoodGroup); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(bw); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Parse reads an edited proposal. Comments, blank lines, content before
// any section and lines without a comma are skipped; a child line is
// split on the first comma only, both sides trimmed. Sections left with
// no children are dropped. Parent keys are kept exactly as written.
func Parse(r io.Reader) ([]Group, error) {
	var groups []Group
	current := -1

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			groups = append(groups, Group{Parent: line[1 : len(line)-1]})
			current = len(groups) - 1
			continue
		}

		if current < 0 || !strings.Contains(line, ",") {
			// Stray content from hand-editing; not fatal.
			continue
		}

		parts := strings.SplitN(line, ",", 2)
		groups[current].Children = append(groups[current].Children, Child{
			Name:      strings.TrimSpace(parts[0]),
			FoodGroup: strings.TrimSpace(parts[1]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read proposal: %w", err)
	}

	kept := groups[:0]
	for _, g := range groups {
		if len(g.Children) > 0 {
			kept = append(kept, g)
		}
	}
	if len(kept) == 0 {
		return nil, nil
	}

	return kept, nil
}
