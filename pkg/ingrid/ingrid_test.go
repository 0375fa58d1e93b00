package ingrid

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pantrylab/ingrid/pkg/ingrid/hierarchy"
	"github.com/pantrylab/ingrid/pkg/ingrid/proposal"
	"github.com/pantrylab/ingrid/pkg/ingrid/store/memstore"
)

// fixture builds a collection large enough that the frequency gates do
// not reject small families: two real families plus unrelated one-word
// ingredients.
func fixture() []Ingredient {
	ings := []Ingredient{
		{Name: "CHEESE", FoodGroup: "Dairy"},
		{Name: "CHEDDAR CHEESE", FoodGroup: "Dairy"},
		{Name: "SWISS CHEESE", FoodGroup: "Dairy"},
		{Name: "CREAM CHEESE", FoodGroup: "Dairy"},
		{Name: "TOMATO SAUCE", FoodGroup: "Condiments"},
		{Name: "SOY SAUCE", FoodGroup: "Condiments"},
		{Name: "BARBECUE SAUCE", FoodGroup: "Condiments"},
	}
	for i := 0; i < 33; i++ {
		ings = append(ings, Ingredient{
			Name:      fmt.Sprintf("FILLER%02d", i),
			FoodGroup: "Vegetables",
		})
	}
	return ings
}

func findGroup(groups []proposal.Group, parent string) (proposal.Group, bool) {
	for _, g := range groups {
		if g.Parent == parent {
			return g, true
		}
	}
	return proposal.Group{}, false
}

// TestEndToEnd runs the complete workflow: analysis proposes groups,
// the proposal round-trips through its text format, finalization builds
// the hierarchy and the result seeds a store.
func TestEndToEnd(t *testing.T) {
	ctx := context.Background()
	engine := New(Options{})
	ings := fixture()

	result := engine.Analyze(ings)
	if len(result.Groups) != 2 {
		t.Fatalf("Analyze produced %d groups, want 2", len(result.Groups))
	}

	cheese, ok := findGroup(result.Groups, "CHEESE")
	if !ok {
		t.Fatal("Analyze did not propose a CHEESE group")
	}
	if len(cheese.Children) != 4 {
		t.Errorf("CHEESE group has %d children, want 4", len(cheese.Children))
	}
	sauce, ok := findGroup(result.Groups, "SAUCE")
	if !ok {
		t.Fatal("Analyze did not propose a SAUCE group")
	}
	if len(sauce.Children) != 3 {
		t.Errorf("SAUCE group has %d children, want 3", len(sauce.Children))
	}

	if result.Report.TotalIngredients != len(ings) {
		t.Errorf("report total = %d, want %d", result.Report.TotalIngredients, len(ings))
	}

	// Round-trip through the editable proposal file.
	var buf bytes.Buffer
	if err := proposal.Write(&buf, result.Groups); err != nil {
		t.Fatalf("Write proposal: %v", err)
	}
	parsed, err := proposal.Parse(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Parse proposal: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("round-trip produced %d groups, want 2", len(parsed))
	}

	// Finalize with one synonym.
	syns := []Synonym{{PDName: "CHEDDAR CHEESE", AliasName: "cheddar"}}
	fin := engine.Finalize(parsed, ings, syns)
	h := fin.Hierarchy

	byName := make(map[string]int)
	for _, n := range h.Nodes {
		byName[n.Name] = n.Depth
	}
	if d, ok := byName["CHEESE"]; !ok || d != 0 {
		t.Errorf("CHEESE depth = %d (found %v), want 0", d, ok)
	}
	if d, ok := byName["CHEDDAR CHEESE"]; !ok || d != 1 {
		t.Errorf("CHEDDAR CHEESE depth = %d (found %v), want 1", d, ok)
	}
	if d, ok := byName["SAUCE"]; !ok || d != 0 {
		t.Errorf("SAUCE depth = %d (found %v), want 0", d, ok)
	}
	if len(h.Aliases) != 1 {
		t.Errorf("got %d aliases, want 1", len(h.Aliases))
	}
	if fin.Report.Edges != len(h.Edges) {
		t.Errorf("report edges = %d, want %d", fin.Report.Edges, len(h.Edges))
	}

	// Seed and query.
	st := memstore.New()
	defer st.Close()
	if err := engine.Seed(ctx, st, h); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	children, err := st.ListChildren(ctx, "CHEESE")
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(children) != 3 {
		t.Errorf("CHEESE has %d stored children, want 3", len(children))
	}
	node, found, err := st.GetNode(ctx, "CHEDDAR CHEESE")
	if err != nil || !found {
		t.Fatalf("GetNode: found=%v err=%v", found, err)
	}
	if node.Depth != 1 {
		t.Errorf("stored depth = %d, want 1", node.Depth)
	}
	aliases, err := st.ListAliases(ctx, "CHEDDAR CHEESE")
	if err != nil {
		t.Fatalf("ListAliases: %v", err)
	}
	if len(aliases) != 1 || aliases[0] != "cheddar" {
		t.Errorf("aliases = %v, want [cheddar]", aliases)
	}
}

// TestFinalizeDropsSingletonGroups verifies that a group edited down to
// one child consolidates nothing.
func TestFinalizeDropsSingletonGroups(t *testing.T) {
	engine := New(Options{})

	groups := []proposal.Group{{
		Parent:   "CHEESE",
		Children: []proposal.Child{{Name: "CHEDDAR CHEESE", FoodGroup: "Dairy"}},
	}}
	ings := []Ingredient{
		{Name: "CHEDDAR CHEESE", FoodGroup: "Dairy"},
	}

	fin := engine.Finalize(groups, ings, nil)
	if len(fin.Hierarchy.Edges) != 0 {
		t.Errorf("got %d edges, want 0", len(fin.Hierarchy.Edges))
	}
	if _, found := nodeByName(fin.Hierarchy.Nodes, "CHEESE"); found {
		t.Error("dropped group still registered its parent")
	}
	if n, found := nodeByName(fin.Hierarchy.Nodes, "CHEDDAR CHEESE"); !found || n.Depth != 0 {
		t.Errorf("standalone ingredient missing or wrong depth: %+v found=%v", n, found)
	}
}

func nodeByName(nodes []hierarchy.Node, name string) (hierarchy.Node, bool) {
	for _, n := range nodes {
		if n.Name == name {
			return n, true
		}
	}
	return hierarchy.Node{}, false
}
