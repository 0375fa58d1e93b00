package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pantrylab/ingrid/pkg/ingrid/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteSeedAndQuery(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	h := store.Hierarchy{
		FoodGroups: []string{"Dairy", "Fruit"},
		Nodes: []store.Node{
			{Name: "CHEESE", FoodGroup: "Dairy", Depth: 0},
			{Name: "CHEDDAR CHEESE", FoodGroup: "Dairy", Depth: 1},
			{Name: "SWISS CHEESE", FoodGroup: "Dairy", Depth: 1},
			{Name: "ORANGE JUICE", FoodGroup: "Fruit", Depth: 0},
		},
		Edges: []store.Edge{
			{Parent: "CHEESE", Child: "CHEDDAR CHEESE"},
			{Parent: "CHEESE", Child: "SWISS CHEESE"},
		},
		Aliases: []store.Alias{
			{AliasName: "cheddar", IngredientName: "CHEDDAR CHEESE"},
			{AliasName: "sharp cheddar", IngredientName: "CHEDDAR CHEESE"},
		},
	}

	if err := st.SeedHierarchy(ctx, h); err != nil {
		t.Fatalf("SeedHierarchy: %v", err)
	}

	n, ok, err := st.GetNode(ctx, "SWISS CHEESE")
	if err != nil {
		t.Fatalf("GetNode: %v", err)
	}
	if !ok || n.Depth != 1 {
		t.Errorf("Unexpected node: ok=%v %+v", ok, n)
	}

	groups, err := st.ListFoodGroups(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(groups, []string{"Dairy", "Fruit"}) {
		t.Errorf("Unexpected food groups: %v", groups)
	}

	children, err := st.ListChildren(ctx, "CHEESE")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(children, []string{"CHEDDAR CHEESE", "SWISS CHEESE"}) {
		t.Errorf("Unexpected children: %v", children)
	}

	aliases, err := st.ListAliases(ctx, "CHEDDAR CHEESE")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(aliases, []string{"cheddar", "sharp cheddar"}) {
		t.Errorf("Unexpected aliases: %v", aliases)
	}

	count, err := st.CountNodes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Errorf("Expected 4 nodes, got %d", count)
	}
}

func TestSQLiteReseedReplaces(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	first := store.Hierarchy{
		FoodGroups: []string{"Dairy"},
		Nodes:      []store.Node{{Name: "CHEESE", FoodGroup: "Dairy"}},
	}
	if err := st.SeedHierarchy(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := store.Hierarchy{
		FoodGroups: []string{"Grains"},
		Nodes:      []store.Node{{Name: "OATS", FoodGroup: "Grains"}},
	}
	if err := st.SeedHierarchy(ctx, second); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := st.GetNode(ctx, "CHEESE"); ok {
		t.Error("Reseed must remove previous nodes")
	}
	count, _ := st.CountNodes(ctx)
	if count != 1 {
		t.Errorf("Expected 1 node, got %d", count)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	st, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	h := store.Hierarchy{
		FoodGroups: []string{"Fruit"},
		Nodes:      []store.Node{{Name: "MANGO", FoodGroup: "Fruit"}},
	}
	if err := st.SeedHierarchy(ctx, h); err != nil {
		t.Fatal(err)
	}
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	st2, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	defer st2.Close()

	if _, ok, err := st2.GetNode(ctx, "MANGO"); err != nil || !ok {
		t.Errorf("Expected MANGO to survive reopen: ok=%v err=%v", ok, err)
	}
}
