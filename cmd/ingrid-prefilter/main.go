// Command ingrid-prefilter turns a raw thesaurus export into the
// filtered ingredient and synonym datasets the analysis phase consumes.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/pantrylab/ingrid/internal/dataset"
	"github.com/pantrylab/ingrid/pkg/ingrid/config"
	"github.com/pantrylab/ingrid/pkg/ingrid/prefilter"
)

func main() {
	var (
		input          = flag.String("input", "", "Raw thesaurus CSV (required)")
		ingredientsOut = flag.String("ingredients-out", "ingredients.csv", "Filtered ingredients CSV")
		synonymsOut    = flag.String("synonyms-out", "ingredient_synonyms.csv", "Remapped synonyms CSV")
		denylistCfg    = flag.String("denylist", "", "Optional: denylist YAML overriding the built-in list")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	denylist := config.DefaultDenylist()
	if *denylistCfg != "" {
		loaded, err := config.LoadDenylist(*denylistCfg)
		if err != nil {
			log.Fatalf("load denylist: %v", err)
		}
		denylist = loaded
	}

	filter, err := prefilter.New(denylist)
	if err != nil {
		log.Fatalf("compile denylist: %v", err)
	}

	raw, err := dataset.LoadRawThesaurus(*input)
	if err != nil {
		log.Fatalf("load thesaurus: %v", err)
	}

	rows := make([]prefilter.Row, len(raw))
	for i, r := range raw {
		rows[i] = prefilter.Row{
			Descriptor: r.Descriptor,
			FoodGroup:  r.FoodGroup,
			ParsedTerm: r.ParsedTerm,
		}
	}

	result := filter.Run(rows)

	ingredients := make([]dataset.Ingredient, len(result.Ingredients))
	for i, ing := range result.Ingredients {
		ingredients[i] = dataset.Ingredient{Name: ing.Name, FoodGroup: ing.FoodGroup}
	}
	if err := dataset.WriteIngredients(*ingredientsOut, ingredients); err != nil {
		log.Fatalf("write ingredients: %v", err)
	}

	synonyms := make([]dataset.Synonym, len(result.Synonyms))
	for i, s := range result.Synonyms {
		synonyms[i] = dataset.Synonym{PDName: s.PDName, AliasName: s.AliasName}
	}
	if err := dataset.WriteSynonyms(*synonymsOut, synonyms); err != nil {
		log.Fatalf("write synonyms: %v", err)
	}

	fmt.Printf("Read %d rows, kept %d ingredients (%d synonyms)\n",
		result.TotalRows, result.Kept, len(result.Synonyms))
	fmt.Printf("Wrote %s and %s\n", *ingredientsOut, *synonymsOut)
}
