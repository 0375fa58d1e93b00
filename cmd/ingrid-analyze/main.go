// Command ingrid-analyze mines shared words across ingredient names
// and writes a human-editable consolidation proposal.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/pantrylab/ingrid/internal/dataset"
	"github.com/pantrylab/ingrid/pkg/ingrid"
	"github.com/pantrylab/ingrid/pkg/ingrid/config"
	"github.com/pantrylab/ingrid/pkg/ingrid/proposal"
	"github.com/pantrylab/ingrid/pkg/ingrid/report"
)

func main() {
	var (
		input        = flag.String("ingredients", "", "Filtered ingredients CSV (required)")
		proposalOut  = flag.String("proposal-out", "consolidation_proposal.txt", "Proposal file to write")
		tunablesCfg  = flag.String("tunables", "", "Optional: tunables YAML")
		stopwordsCfg = flag.String("stopwords", "", "Optional: stopwords YAML")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--ingredients required")
	}

	loader := config.Loader{
		TunablesPath:  *tunablesCfg,
		StopwordsPath: *stopwordsCfg,
	}
	settings, err := loader.Load()
	if err != nil {
		log.Fatalf("load configs: %v", err)
	}

	rows, err := dataset.LoadIngredients(*input)
	if err != nil {
		log.Fatalf("load ingredients: %v", err)
	}

	ingredients := make([]ingrid.Ingredient, len(rows))
	for i, r := range rows {
		ingredients[i] = ingrid.Ingredient{Name: r.Name, FoodGroup: r.FoodGroup}
	}

	engine := ingrid.New(ingrid.Options{Settings: settings})
	result := engine.Analyze(ingredients)

	f, err := os.Create(*proposalOut)
	if err != nil {
		log.Fatalf("create proposal: %v", err)
	}
	if err := proposal.Write(f, result.Groups); err != nil {
		f.Close()
		log.Fatalf("write proposal: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("close proposal: %v", err)
	}

	if err := report.WriteAnalysis(os.Stdout, result.Report); err != nil {
		log.Fatalf("write report: %v", err)
	}
}
