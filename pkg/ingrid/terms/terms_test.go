package terms

import (
	"testing"

	"github.com/pantrylab/ingrid/pkg/ingrid/config"
	"github.com/pantrylab/ingrid/pkg/ingrid/index"
	"github.com/pantrylab/ingrid/pkg/ingrid/ingest"
)

func buildIndex(names []string) *index.WordIndex {
	tok := ingest.NewTokenizer([]string{"THE", "AND", "OR", "OF", "IN", "ON", "AT", "TO", "FOR", "WITH"}, 3)
	ingredients := make([]index.Ingredient, len(names))
	for i, n := range names {
		ingredients[i] = index.Ingredient{Name: n, FoodGroup: "Misc"}
	}
	return index.Build(tok, ingredients)
}

func TestIdentifyFlagsHighDiversityWord(t *testing.T) {
	// CANNED appears across many unrelated base words.
	idx := buildIndex([]string{
		"CANNED TOMATOES",
		"CANNED PEACHES",
		"CANNED SALMON",
		"CANNED BEANS",
		"CANNED CORN",
	})

	f := Identify(idx, config.DefaultTunables())

	if !f.IsProcessingTerm("CANNED") {
		t.Error("CANNED should be classified as a processing term")
	}
	if f.IsProcessingTerm("TOMATOES") {
		t.Error("TOMATOES is too rare to be a processing term")
	}
}

func TestIdentifySkipsLowFrequencyWords(t *testing.T) {
	// CHEESE appears in 3 of many names; with a large vocabulary its
	// frequency stays below the processing-term threshold.
	names := []string{
		"CHEDDAR CHEESE", "SWISS CHEESE", "COTTAGE CHEESE",
		"ORANGE JUICE", "APPLE JUICE", "GRAPE JUICE",
		"QUINOA", "BARLEY", "LENTILS", "CHICKPEAS", "ALMONDS",
		"WALNUTS", "PECANS", "OATS", "MILLET", "SORGHUM",
		"SPELT", "AMARANTH", "BUCKWHEAT", "FARRO", "FREEKEH",
	}

	f := Identify(buildIndex(names), config.DefaultTunables())

	if f.IsProcessingTerm("CHEESE") {
		t.Error("CHEESE should not be classified as a processing term")
	}
}

func TestIdentifyRespectsDiversityRatio(t *testing.T) {
	// A frequent word whose companions are all short (< 4 chars) has no
	// qualifying base words, so it cannot be flagged.
	idx := buildIndex([]string{
		"RAW EGG",
		"RAW HAM",
		"RAW COD",
	})

	f := Identify(idx, config.DefaultTunables())

	if f.IsProcessingTerm("RAW") {
		t.Error("RAW has no qualifying base words and must not be flagged")
	}
	if f.Count() != 0 {
		t.Errorf("Expected no processing terms, got %d", f.Count())
	}
}
