package index

import (
	"reflect"
	"testing"

	"github.com/pantrylab/ingrid/pkg/ingrid/ingest"
)

func testTokenizer() *ingest.Tokenizer {
	return ingest.NewTokenizer([]string{"THE", "AND", "OR", "OF", "IN", "ON", "AT", "TO", "FOR", "WITH"}, 3)
}

func TestBuildPostingsAndFrequency(t *testing.T) {
	ingredients := []Ingredient{
		{Name: "CHEDDAR CHEESE", FoodGroup: "Dairy"},
		{Name: "SWISS CHEESE", FoodGroup: "Dairy"},
		{Name: "ORANGE JUICE", FoodGroup: "Fruit"},
	}

	idx := Build(testTokenizer(), ingredients)

	if idx.TotalIngredients() != 3 {
		t.Errorf("Expected 3 ingredients, got %d", idx.TotalIngredients())
	}
	if idx.Frequency("CHEESE") != 2 {
		t.Errorf("Expected CHEESE frequency 2, got %d", idx.Frequency("CHEESE"))
	}

	postings := idx.Postings("CHEESE")
	expected := []string{"CHEDDAR CHEESE", "SWISS CHEESE"}
	if !reflect.DeepEqual(postings, expected) {
		t.Errorf("Expected postings %v, got %v", expected, postings)
	}

	if idx.Postings("BUTTER") != nil {
		t.Error("Expected nil postings for unseen word")
	}
}

func TestBuildCountsRepeatedWordOnce(t *testing.T) {
	ingredients := []Ingredient{
		{Name: "CHEESE CHEESE SPREAD", FoodGroup: "Dairy"},
	}

	idx := Build(testTokenizer(), ingredients)

	if idx.Frequency("CHEESE") != 1 {
		t.Errorf("Word repeated within one name should count once, got %d", idx.Frequency("CHEESE"))
	}
}

func TestWordsSorted(t *testing.T) {
	ingredients := []Ingredient{
		{Name: "SWISS CHEESE", FoodGroup: "Dairy"},
		{Name: "APPLE JUICE", FoodGroup: "Fruit"},
	}

	idx := Build(testTokenizer(), ingredients)

	words := idx.Words()
	expected := []string{"APPLE", "CHEESE", "JUICE", "SWISS"}
	if !reflect.DeepEqual(words, expected) {
		t.Errorf("Expected %v, got %v", expected, words)
	}
	if idx.DistinctWords() != 4 {
		t.Errorf("Expected 4 distinct words, got %d", idx.DistinctWords())
	}
}
