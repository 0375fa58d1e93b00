// Command ingrid-finalize reads the edited consolidation proposal,
// builds the ingredient hierarchy and writes the seed datasets,
// optionally loading them into a SQLite database.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/pantrylab/ingrid/internal/dataset"
	"github.com/pantrylab/ingrid/pkg/ingrid"
	"github.com/pantrylab/ingrid/pkg/ingrid/config"
	"github.com/pantrylab/ingrid/pkg/ingrid/hierarchy"
	"github.com/pantrylab/ingrid/pkg/ingrid/proposal"
	"github.com/pantrylab/ingrid/pkg/ingrid/report"
	"github.com/pantrylab/ingrid/pkg/ingrid/store/sqlite"
)

func main() {
	var (
		proposalPath = flag.String("proposal", "", "Edited consolidation proposal (required)")
		input        = flag.String("ingredients", "", "Filtered ingredients CSV (required)")
		synonymsPath = flag.String("synonyms", "", "Optional: synonyms CSV for alias output")
		outDir       = flag.String("out-dir", ".", "Directory for the seed CSVs")
		dbPath       = flag.String("db", "", "Optional: SQLite database to seed")
		tunablesCfg  = flag.String("tunables", "", "Optional: tunables YAML")
	)
	flag.Parse()

	if *proposalPath == "" {
		log.Fatal("--proposal required")
	}
	if *input == "" {
		log.Fatal("--ingredients required")
	}

	loader := config.Loader{TunablesPath: *tunablesCfg}
	settings, err := loader.Load()
	if err != nil {
		log.Fatalf("load configs: %v", err)
	}

	pf, err := os.Open(*proposalPath)
	if err != nil {
		log.Fatalf("open proposal: %v", err)
	}
	groups, err := proposal.Parse(pf)
	pf.Close()
	if err != nil {
		log.Fatalf("parse proposal: %v", err)
	}
	if len(groups) == 0 {
		log.Printf("proposal %s contains no active groups", *proposalPath)
	}

	rows, err := dataset.LoadIngredients(*input)
	if err != nil {
		log.Fatalf("load ingredients: %v", err)
	}
	ingredients := make([]ingrid.Ingredient, len(rows))
	for i, r := range rows {
		ingredients[i] = ingrid.Ingredient{Name: r.Name, FoodGroup: r.FoodGroup}
	}

	var synonyms []ingrid.Synonym
	if *synonymsPath != "" {
		srows, err := dataset.LoadSynonyms(*synonymsPath)
		if err != nil {
			log.Printf("warning: load synonyms: %v; continuing without aliases", err)
		} else {
			synonyms = make([]ingrid.Synonym, len(srows))
			for i, s := range srows {
				synonyms[i] = ingrid.Synonym{PDName: s.PDName, AliasName: s.AliasName}
			}
		}
	}

	engine := ingrid.New(ingrid.Options{Settings: settings})
	result := engine.Finalize(groups, ingredients, synonyms)
	h := result.Hierarchy

	for _, w := range h.Warnings {
		log.Printf("warning: %s", w)
	}
	for _, n := range h.Notes {
		log.Printf("note: %s", n)
	}

	if err := writeSeedFiles(*outDir, h); err != nil {
		log.Fatal(err)
	}

	if *dbPath != "" {
		ctx := context.Background()
		st, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		if err := engine.Seed(ctx, st, h); err != nil {
			st.Close()
			log.Fatalf("seed database: %v", err)
		}
		if err := st.Close(); err != nil {
			log.Fatalf("close database: %v", err)
		}
	}

	if err := report.WriteFinalization(os.Stdout, result.Report); err != nil {
		log.Fatalf("write report: %v", err)
	}
}

func writeSeedFiles(dir string, h hierarchy.Hierarchy) error {
	if err := dataset.WriteFoodGroups(filepath.Join(dir, "food_groups.csv"), h.FoodGroups); err != nil {
		return err
	}

	nodes := make([]dataset.Node, len(h.Nodes))
	for i, n := range h.Nodes {
		nodes[i] = dataset.Node{Name: n.Name, FoodGroup: n.FoodGroup, Depth: n.Depth}
	}
	if err := dataset.WriteNodes(filepath.Join(dir, "ingredients.csv"), nodes); err != nil {
		return err
	}

	edges := make([]dataset.Edge, len(h.Edges))
	for i, e := range h.Edges {
		edges[i] = dataset.Edge{Parent: e.Parent, Child: e.Child}
	}
	if err := dataset.WriteEdges(filepath.Join(dir, "ingredient_parents.csv"), edges); err != nil {
		return err
	}

	aliases := make([]dataset.Alias, len(h.Aliases))
	for i, a := range h.Aliases {
		aliases[i] = dataset.Alias{AliasName: a.AliasName, IngredientName: a.IngredientName}
	}
	return dataset.WriteAliases(filepath.Join(dir, "ingredient_aliases.csv"), aliases)
}
