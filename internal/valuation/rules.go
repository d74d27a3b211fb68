// Package valuation turns merged instrument data into a cheap/fair/expensive
// verdict: Graham fair value for stocks, price-to-book thresholds for funds.
package valuation

import (
	"fmt"
	"sort"

	"github.com/wonny/carteira/internal/contracts"
)

// KeywordRule maps a category keyword found in free text to a category
type KeywordRule struct {
	Keyword  string             `yaml:"keyword" toml:"keyword" json:"keyword"`
	Category contracts.Category `yaml:"category" toml:"category" json:"category"`
}

// Rules holds every valuation constant.
// ⭐ SSOT: no threshold or tolerance is hard-coded outside DefaultRules
type Rules struct {
	// Tolerance is the relative band around fair value classified as fair
	Tolerance float64 `json:"tolerance"`

	// GrahamMultiplier is the 22.5 in √(22.5 × LPA × VPA)
	GrahamMultiplier float64 `json:"graham_multiplier"`

	// Epsilon is the absolute band around a P/VP threshold classified as fair
	Epsilon float64 `json:"epsilon"`

	// Thresholds is the fair P/VP per fund category
	Thresholds map[contracts.Category]float64 `json:"thresholds"`

	// Keywords is evaluated in order; the first keyword contained in the text wins
	Keywords []KeywordRule `json:"keywords"`
}

// DefaultRules returns the built-in rule set
func DefaultRules() Rules {
	return Rules{
		Tolerance:        0.02,
		GrahamMultiplier: 22.5,
		Epsilon:          1e-6,
		Thresholds: map[contracts.Category]float64{
			contracts.CategoryPaper:       1.02,
			contracts.CategoryOther:       1.02,
			contracts.CategoryFundOfFunds: 1.02,
			contracts.CategoryBrick:       1.20,
			contracts.CategoryMixed:       1.20,
		},
		Keywords: []KeywordRule{
			{Keyword: "tijolo", Category: contracts.CategoryBrick},
			{Keyword: "papel", Category: contracts.CategoryPaper},
			{Keyword: "fundo misto", Category: contracts.CategoryMixed},
			{Keyword: "fundos", Category: contracts.CategoryFundOfFunds},
			{Keyword: "misto", Category: contracts.CategoryMixed},
			{Keyword: "outro", Category: contracts.CategoryOther},
		},
	}
}

// KeywordList returns the keywords in evaluation order, for page scraping
func (r Rules) KeywordList() []string {
	out := make([]string, 0, len(r.Keywords))
	for _, k := range r.Keywords {
		out = append(out, k.Keyword)
	}
	return out
}

// ValidationError reports an unusable rule value
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var knownCategories = map[contracts.Category]bool{
	contracts.CategoryPaper:       true,
	contracts.CategoryBrick:       true,
	contracts.CategoryMixed:       true,
	contracts.CategoryFundOfFunds: true,
	contracts.CategoryOther:       true,
}

// Validate checks every constraint the classifiers rely on
func (r Rules) Validate() error {
	if r.Tolerance < 0 || r.Tolerance >= 1 {
		return ValidationError{"tolerance", "must be in [0, 1)"}
	}
	if r.GrahamMultiplier <= 0 {
		return ValidationError{"graham_multiplier", "must be > 0"}
	}
	if r.Epsilon < 0 {
		return ValidationError{"epsilon", "must be >= 0"}
	}

	cats := make([]string, 0, len(r.Thresholds))
	for c := range r.Thresholds {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)
	for _, c := range cats {
		if !knownCategories[contracts.Category(c)] {
			return ValidationError{"thresholds." + c, "unknown category"}
		}
		if r.Thresholds[contracts.Category(c)] <= 0 {
			return ValidationError{"thresholds." + c, "must be > 0"}
		}
	}

	if len(r.Keywords) == 0 {
		return ValidationError{"keywords", "at least one keyword is required"}
	}
	for i, k := range r.Keywords {
		if k.Keyword == "" {
			return ValidationError{fmt.Sprintf("keywords[%d].keyword", i), "required"}
		}
		if !knownCategories[k.Category] {
			return ValidationError{fmt.Sprintf("keywords[%d].category", i), fmt.Sprintf("unknown category %q", k.Category)}
		}
	}

	return nil
}
