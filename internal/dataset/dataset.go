// Package dataset reads and writes the tabular artifacts exchanged at
// the pipeline boundary: ingredient and synonym CSVs in, hierarchy
// CSVs out.
package dataset

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
)

// Ingredient is one row of the ingredient dataset.
type Ingredient struct {
	Name      string
	FoodGroup string
}

// Synonym is one row of the synonyms dataset.
type Synonym struct {
	PDName    string
	AliasName string
}

// RawRow is one row of the unfiltered thesaurus export.
type RawRow struct {
	Descriptor string
	FoodGroup  string
	ParsedTerm string
}

// Node is one row of the finalized ingredient output.
type Node struct {
	Name      string
	FoodGroup string
	Depth     int
}

// Edge is one row of the parent-child output.
type Edge struct {
	Parent string
	Child  string
}

// Alias is one row of the alias output.
type Alias struct {
	AliasName      string
	IngredientName string
}

// readAll opens a CSV file and returns its records plus a column index
// built from the header row.
func readAll(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("read %s: empty file", path)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[name] = i
	}
	return records[1:], columns, nil
}

func requireColumns(columns map[string]int, path string, names ...string) error {
	for _, name := range names {
		if _, ok := columns[name]; !ok {
			return fmt.Errorf("%s: missing column %q", path, name)
		}
	}
	return nil
}

// LoadIngredients reads a (pd_name, food_group) CSV.
func LoadIngredients(path string) ([]Ingredient, error) {
	records, columns, err := readAll(path)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(columns, path, "pd_name", "food_group"); err != nil {
		return nil, err
	}

	var out []Ingredient
	for i, rec := range records {
		name := field(rec, columns["pd_name"])
		foodGroup := field(rec, columns["food_group"])
		if name == "" || foodGroup == "" {
			log.Printf("Warning: skipping incomplete row %d in %s", i+2, path)
			continue
		}
		out = append(out, Ingredient{Name: name, FoodGroup: foodGroup})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no valid rows found in %s", path)
	}
	return out, nil
}

// LoadSynonyms reads a (pd_name, alias_name) CSV.
func LoadSynonyms(path string) ([]Synonym, error) {
	records, columns, err := readAll(path)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(columns, path, "pd_name", "alias_name"); err != nil {
		return nil, err
	}

	var out []Synonym
	for i, rec := range records {
		pd := field(rec, columns["pd_name"])
		alias := field(rec, columns["alias_name"])
		if pd == "" || alias == "" {
			log.Printf("Warning: skipping incomplete row %d in %s", i+2, path)
			continue
		}
		out = append(out, Synonym{PDName: pd, AliasName: alias})
	}
	return out, nil
}

// LoadRawThesaurus reads the unfiltered thesaurus export.
func LoadRawThesaurus(path string) ([]RawRow, error) {
	records, columns, err := readAll(path)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(columns, path, "Preferred descriptor", "Broad group"); err != nil {
		return nil, err
	}

	termCol, hasTerms := columns["Parsed ingredient term"]

	var out []RawRow
	for _, rec := range records {
		row := RawRow{
			Descriptor: field(rec, columns["Preferred descriptor"]),
			FoodGroup:  field(rec, columns["Broad group"]),
		}
		if hasTerms {
			row.ParsedTerm = field(rec, termCol)
		}
		if row.Descriptor == "" {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteIngredients writes the ingredient dataset, sorted by name.
func WriteIngredients(path string, ingredients []Ingredient) error {
	ordered := make([]Ingredient, len(ingredients))
	copy(ordered, ingredients)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	rows := make([][]string, len(ordered))
	for i, ing := range ordered {
		rows[i] = []string{ing.Name, ing.FoodGroup}
	}
	return writeCSV(path, []string{"pd_name", "food_group"}, rows)
}

// WriteSynonyms writes the synonym dataset, sorted by (pd, alias).
func WriteSynonyms(path string, synonyms []Synonym) error {
	ordered := make([]Synonym, len(synonyms))
	copy(ordered, synonyms)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].PDName != ordered[j].PDName {
			return ordered[i].PDName < ordered[j].PDName
		}
		return ordered[i].AliasName < ordered[j].AliasName
	})

	rows := make([][]string, len(ordered))
	for i, s := range ordered {
		rows[i] = []string{s.PDName, s.AliasName}
	}
	return writeCSV(path, []string{"pd_name", "alias_name"}, rows)
}

// WriteFoodGroups writes the food group list, sorted.
func WriteFoodGroups(path string, groups []string) error {
	ordered := make([]string, len(groups))
	copy(ordered, groups)
	sort.Strings(ordered)

	rows := make([][]string, len(ordered))
	for i, g := range ordered {
		rows[i] = []string{g}
	}
	return writeCSV(path, []string{"name"}, rows)
}

// WriteNodes writes the finalized ingredient list, sorted by name.
func WriteNodes(path string, nodes []Node) error {
	ordered := make([]Node, len(nodes))
	copy(ordered, nodes)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	rows := make([][]string, len(ordered))
	for i, n := range ordered {
		rows[i] = []string{n.Name, n.FoodGroup, strconv.Itoa(n.Depth)}
	}
	return writeCSV(path, []string{"name", "food_group", "hierarchy_depth"}, rows)
}

// WriteEdges writes the parent-child list, sorted by (parent, child).
func WriteEdges(path string, edges []Edge) error {
	ordered := make([]Edge, len(edges))
	copy(ordered, edges)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Parent != ordered[j].Parent {
			return ordered[i].Parent < ordered[j].Parent
		}
		return ordered[i].Child < ordered[j].Child
	})

	rows := make([][]string, len(ordered))
	for i, e := range ordered {
		rows[i] = []string{e.Parent, e.Child}
	}
	return writeCSV(path, []string{"parent_name", "child_name"}, rows)
}

// WriteAliases writes the alias list, sorted by (ingredient, alias).
func WriteAliases(path string, aliases []Alias) error {
	ordered := make([]Alias, len(aliases))
	copy(ordered, aliases)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].IngredientName != ordered[j].IngredientName {
			return ordered[i].IngredientName < ordered[j].IngredientName
		}
		return ordered[i].AliasName < ordered[j].AliasName
	})

	rows := make([][]string, len(ordered))
	for i, a := range ordered {
		rows[i] = []string{a.AliasName, a.IngredientName}
	}
	return writeCSV(path, []string{"alias_name", "ingredient_name"}, rows)
}
