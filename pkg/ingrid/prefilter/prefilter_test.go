package prefilter

import (
	"reflect"
	"testing"

	"github.com/pantrylab/ingrid/pkg/ingrid/config"
)

func newFilter(t *testing.T) *Filter {
	t.Helper()
	f, err := New(config.DefaultDenylist())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Tomatoes, canned, whole", "TOMATOES"},
		{"Cheese (cheddar)", "CHEESE"},
		{"  apple   juice ", "APPLE JUICE"},
		{"Milk (whole) (pasteurized)", "MILK"},
	}

	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIncludeDenylist(t *testing.T) {
	f := newFilter(t)

	excluded := []string{
		"VANILLA EXTRACT",
		"HYDROLYZED SOY PROTEIN",
		"ALPHA-TOCOPHEROL",
		"E100",
		"SORBIC ACID",
		"VITAMIN D",
		"TOMATO PUREE",
	}
	for _, name := range excluded {
		if f.Include(name, "Vegetables") {
			t.Errorf("%q should be excluded", name)
		}
	}

	included := []string{"TOMATOES", "CHEDDAR CHEESE", "OLIVE OIL"}
	for _, name := range included {
		if !f.Include(name, "Vegetables") {
			t.Errorf("%q should be included", name)
		}
	}
}

func TestIncludeSkippedFoodGroup(t *testing.T) {
	f := newFilter(t)
	group := config.DefaultDenylist().SkippedFoodGroup

	if f.Include("ASPARTAME", group) {
		t.Error("Additive food group should be skipped")
	}
	if !f.Include("BAKING POWDER", group) {
		t.Error("BAKING POWDER is an exception and should be kept")
	}
	if !f.Include("SODIUM BICARBONATE", group) {
		t.Error("SODIUM BICARBONATE is an exception and should be kept")
	}
}

func TestRunDeduplicatesAndSorts(t *testing.T) {
	f := newFilter(t)

	rows := []Row{
		{Descriptor: "Tomatoes, canned", FoodGroup: "Vegetables", ParsedTerm: "canned tomatoes"},
		{Descriptor: "Tomatoes, fresh", FoodGroup: "Vegetables", ParsedTerm: "fresh tomatoes"},
		{Descriptor: "Apple juice", FoodGroup: "Fruit", ParsedTerm: "juice of apple"},
	}

	res := f.Run(rows)

	expected := []Ingredient{
		{Name: "APPLE JUICE", FoodGroup: "Fruit"},
		{Name: "TOMATOES", FoodGroup: "Vegetables"},
	}
	if !reflect.DeepEqual(res.Ingredients, expected) {
		t.Errorf("Expected %v, got %v", expected, res.Ingredients)
	}
	if res.TotalRows != 3 || res.Kept != 2 {
		t.Errorf("Unexpected counts: %+v", res)
	}
}

func TestRunSynonyms(t *testing.T) {
	f := newFilter(t)

	rows := []Row{
		{Descriptor: "Cheddar cheese", FoodGroup: "Dairy", ParsedTerm: "Cheddar"},
		{Descriptor: "Cheddar cheese", FoodGroup: "Dairy", ParsedTerm: "cheddar cheese"}, // self-reference
		{Descriptor: "Vanilla extract", FoodGroup: "Misc", ParsedTerm: "vanilla"},        // filtered PD
	}

	res := f.Run(rows)

	expected := []Synonym{{PDName: "CHEDDAR CHEESE", AliasName: "cheddar"}}
	if !reflect.DeepEqual(res.Synonyms, expected) {
		t.Errorf("Expected synonyms %v, got %v", expected, res.Synonyms)
	}
}

func TestNewRejectsBadPattern(t *testing.T) {
	dl := config.DefaultDenylist()
	dl.AdditivePatterns = append(dl.AdditivePatterns, "([")

	if _, err := New(dl); err == nil {
		t.Fatal("Expected error for invalid regex")
	}
}
