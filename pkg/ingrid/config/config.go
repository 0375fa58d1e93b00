package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pantrylab/ingrid/pkg/ingrid/internalerr"
)

// Tunables holds every heuristic constant used by the analysis phase.
// All thresholds are explicit so tests can exercise alternate
// parameterizations without touching package-level state.
type Tunables struct {
	// Tokenization
	MinWordLength int `yaml:"min_word_length"`

	// Group formation
	MinGroupSize            int     `yaml:"min_group_size"`
	MaxIngredientPercentage float64 `yaml:"max_ingredient_percentage"`
	MinScoreThreshold       float64 `yaml:"min_score_threshold"`

	// Scoring bonuses
	MaxFrequencyScore   float64 `yaml:"max_frequency_score"`
	BeginningWordBonus  float64 `yaml:"beginning_word_bonus"`
	MediumWordBonus     float64 `yaml:"medium_word_bonus"`
	LongWordBonus       float64 `yaml:"long_word_bonus"`
	CoherenceMultiplier float64 `yaml:"coherence_multiplier"`

	// Multi-parent assignment
	MaxParentsPerIngredient int     `yaml:"max_parents_per_ingredient"`
	MinSecondaryParentScore float64 `yaml:"min_secondary_parent_score"`

	// Processing term identification
	ProcessingTermThreshold float64 `yaml:"processing_term_threshold"`
	BaseWordDiversityRatio  float64 `yaml:"base_word_diversity_ratio"`
	MinBaseWordLength       int     `yaml:"min_base_word_length"`
}

// DefaultTunables returns the standard heuristic parameterization.
func DefaultTunables() Tunables {
	return Tunables{
		MinWordLength:           3,
		MinGroupSize:            2,
		MaxIngredientPercentage: 0.1,
		MinScoreThreshold:       30,
		MaxFrequencyScore:       100,
		BeginningWordBonus:      30,
		MediumWordBonus:         10,
		LongWordBonus:           20,
		CoherenceMultiplier:     40,
		MaxParentsPerIngredient: 3,
		MinSecondaryParentScore: 50,
		ProcessingTermThreshold: 0.15,
		BaseWordDiversityRatio:  0.3,
		MinBaseWordLength:       4,
	}
}

// Validate checks that the tunables are internally consistent.
func (t Tunables) Validate() error {
	if t.MinWordLength < 1 {
		return fmt.Errorf("%w: min_word_length must be >= 1", internalerr.ErrInvalidConfig)
	}
	if t.MinGroupSize < 2 {
		return fmt.Errorf("%w: min_group_size must be >= 2", internalerr.ErrInvalidConfig)
	}
	if t.MaxParentsPerIngredient < 1 {
		return fmt.Errorf("%w: max_parents_per_ingredient must be >= 1", internalerr.ErrInvalidConfig)
	}
	if t.MaxIngredientPercentage <= 0 || t.MaxIngredientPercentage > 1 {
		return fmt.Errorf("%w: max_ingredient_percentage must be in (0,1]", internalerr.ErrInvalidConfig)
	}
	if t.ProcessingTermThreshold <= 0 {
		return fmt.Errorf("%w: processing_term_threshold must be > 0", internalerr.ErrInvalidConfig)
	}
	return nil
}

// LoadTunables loads tunables from a YAML file. Fields omitted in the
// file keep their default values.
func LoadTunables(path string) (Tunables, error) {
	t := DefaultTunables()

	data, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}

	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, err
	}

	if err := t.Validate(); err != nil {
		return t, err
	}

	return t, nil
}

// Stopwords represents the stop-word list configuration.
type Stopwords struct {
	Terms []string `yaml:"terms"`
}

// DefaultStopwords returns the article/connective words excluded from
// grouping analysis.
func DefaultStopwords() Stopwords {
	return Stopwords{Terms: []string{
		"THE", "AND", "OR", "OF", "IN", "ON", "AT", "TO", "FOR", "WITH",
	}}
}

// LoadStopwords loads stop-words from a YAML file.
func LoadStopwords(path string) (Stopwords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Stopwords{}, err
	}

	var sw Stopwords
	if err := yaml.Unmarshal(data, &sw); err != nil {
		return Stopwords{}, err
	}

	return sw, nil
}

// Denylist configures the upstream descriptor prefilter: over-processed
// keywords, additive name patterns and food-group exceptions.
type Denylist struct {
	// Keywords anywhere in the descriptor that mark it over-processed.
	ProcessedKeywords []string `yaml:"processed_keywords"`
	// Regex patterns identifying additives and chemical codes.
	AdditivePatterns []string `yaml:"additive_patterns"`
	// Regex patterns identifying over-processed variants of canonical forms.
	OverProcessedPatterns []string `yaml:"over_processed_patterns"`
	// Food group that is skipped wholesale.
	SkippedFoodGroup string `yaml:"skipped_food_group"`
	// Descriptors kept even when their food group is skipped.
	SkippedGroupExceptions []string `yaml:"skipped_group_exceptions"`
}

// DefaultDenylist returns the curated filter used for the USDA IngID
// thesaurus.
func DefaultDenylist() Denylist {
	return Denylist{
		ProcessedKeywords: []string{
			// Chemical processing
			"EXTRACT", "CONCENTRATE", "OLEORESIN", "ISOLATE", "PROTEIN POWDER",
			"HYDROLYZED", "MODIFIED", "ARTIFICIAL", "SYNTHETIC",
			"PHOSPHATE", "SULFATE", "CHLORIDE", "OXIDE", "HYDROXIDE",
			// Food processing methods
			"FERMENTED", "DISTILLED", "REFINED", "PROCESSED",
			"DEGERMINATED", "RECONSTITUTED", "DEHYDRATED", "FREEZE DRIED",
			"PASTEURIZED", "STERILIZED", "IRRADIATED", "SMOKED",
			// Food additives and agents
			"EMULSIFIER", "STABILIZER", "THICKENER", "PRESERVATIVE",
			"FLAVOR", "FLAVORING", "COLORING", "DYE", "PIGMENT",
			"SWEETENER", "ENHANCER", "AGENT", "ADDITIVE",
			// Chemical compounds and vitamins
			"TOCOPHEROL", "ASCORBIC", "CITRIC", "LACTIC", "MALIC",
			"TARTARIC", "BENZOIC", "SORBIC", "PROPIONIC",
			// Over-processed forms
			"GRANULES", "CRYSTALS", "SOLUTION", "SUSPENSION",
		},
		AdditivePatterns: []string{
			`^[A-Z]+-[A-Z]+`,
			`\b\d+\b`,
			`^E\d+`,
			`ACID$`,
			`^FD&C`,
			`\bVITAMIN\b`,
			`\bMINERAL\b`,
		},
		OverProcessedPatterns: []string{
			`FROM CONCENTRATE$`,
			`CONCENTRATE$`,
			`\bDRIED$`,
			`\bPUREE$`,
			`\bPULP$`,
		},
		SkippedFoodGroup:       "Additives and Isolated ingredients (includes sweeteners)",
		SkippedGroupExceptions: []string{"BAKING POWDER", "SODIUM BICARBONATE"},
	}
}

// LoadDenylist loads a denylist from a YAML file.
func LoadDenylist(path string) (Denylist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Denylist{}, err
	}

	var dl Denylist
	if err := yaml.Unmarshal(data, &dl); err != nil {
		return Denylist{}, err
	}

	return dl, nil
}
