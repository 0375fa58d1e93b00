// Package prefilter prepares raw thesaurus rows for analysis: it
// normalizes preferred descriptors, drops additives and over-processed
// variants via the curated denylist, deduplicates, and remaps synonym
// rows onto the surviving descriptors.
package prefilter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pantrylab/ingrid/pkg/ingrid/config"
)

// Row is one raw thesaurus record.
type Row struct {
	Descriptor string // preferred descriptor, unnormalized
	FoodGroup  string
	ParsedTerm string // candidate alias
}

// Ingredient is a filtered, normalized descriptor.
type Ingredient struct {
	Name      string
	FoodGroup string
}

// Synonym is a retained alias row after remapping.
type Synonym struct {
	PDName    string
	AliasName string
}

// Filter applies the denylist to normalized descriptors.
type Filter struct {
	denylist          config.Denylist
	additivePats      []*regexp.Regexp
	overProcessedPats []*regexp.Regexp
}

// New compiles the denylist patterns into a filter.
func New(dl config.Denylist) (*Filter, error) {
	f := &Filter{denylist: dl}

	for _, pat := range dl.AdditivePatterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("compile additive pattern %q: %w", pat, err)
		}
		f.additivePats = append(f.additivePats, re)
	}
	for _, pat := range dl.OverProcessedPatterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("compile over-processed pattern %q: %w", pat, err)
		}
		f.overProcessedPats = append(f.overProcessedPats, re)
	}

	return f, nil
}

// Normalize reduces a raw descriptor to its canonical form: the text
// before the first comma, parenthetical content removed, uppercased.
func Normalize(descriptor string) string {
	name := norm.NFKC.String(descriptor)

	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	}

	var b strings.Builder
	depth := 0
	for _, r := range name {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}

	return strings.ToUpper(strings.Join(strings.Fields(b.String()), " "))
}

// Include decides whether a normalized descriptor survives filtering.
func (f *Filter) Include(name, foodGroup string) bool {
	if foodGroup == f.denylist.SkippedFoodGroup {
		for _, ex := range f.denylist.SkippedGroupExceptions {
			if name == ex {
				return true
			}
		}
		return false
	}

	for _, kw := range f.denylist.ProcessedKeywords {
		if strings.Contains(name, kw) {
			return false
		}
	}

	for _, re := range f.additivePats {
		if re.MatchString(name) {
			return false
		}
	}

	for _, re := range f.overProcessedPats {
		if re.MatchString(name) {
			return false
		}
	}

	return true
}

// Result holds the filtered datasets.
type Result struct {
	Ingredients []Ingredient // sorted by name
	Synonyms    []Synonym    // sorted by (pd_name, alias_name)
	TotalRows   int
	Kept        int
}

// Run filters and deduplicates the raw rows. The first occurrence of a
// normalized (name, food group) pair wins; synonym rows are remapped
// through normalization, restricted to surviving descriptors,
// lowercased, deduplicated and purged of self-references.
func (f *Filter) Run(rows []Row) Result {
	res := Result{TotalRows: len(rows)}

	seen := make(map[string]struct{})
	included := make(map[string]struct{})
	for _, row := range rows {
		name := Normalize(row.Descriptor)
		foodGroup := strings.TrimSpace(row.FoodGroup)
		if name == "" || foodGroup == "" {
			continue
		}

		key := name + "\x00" + foodGroup
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if !f.Include(name, foodGroup) {
			continue
		}
		if _, ok := included[name]; ok {
			continue
		}
		included[name] = struct{}{}
		res.Ingredients = append(res.Ingredients, Ingredient{Name: name, FoodGroup: foodGroup})
	}
	res.Kept = len(res.Ingredients)

	sort.Slice(res.Ingredients, func(i, j int) bool {
		return res.Ingredients[i].Name < res.Ingredients[j].Name
	})

	seenSyn := make(map[string]struct{})
	for _, row := range rows {
		name := Normalize(row.Descriptor)
		if _, ok := included[name]; !ok {
			continue
		}

		alias := strings.ToLower(strings.TrimSpace(row.ParsedTerm))
		if alias == "" || alias == strings.ToLower(name) {
			continue
		}

		key := name + "\x00" + alias
		if _, ok := seenSyn[key]; ok {
			continue
		}
		seenSyn[key] = struct{}{}
		res.Synonyms = append(res.Synonyms, Synonym{PDName: name, AliasName: alias})
	}

	sort.Slice(res.Synonyms, func(i, j int) bool {
		if res.Synonyms[i].PDName != res.Synonyms[j].PDName {
			return res.Synonyms[i].PDName < res.Synonyms[j].PDName
		}
		return res.Synonyms[i].AliasName < res.Synonyms[j].AliasName
	})

	return res
}
