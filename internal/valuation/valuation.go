package valuation

import (
	"math"
	"strings"

	"github.com/wonny/carteira/internal/contracts"
)

// FairValue is the Graham number √(multiplier × LPA × VPA).
// Absent when either input is absent or the product is negative.
func (r Rules) FairValue(lpa, vpa contracts.Num) contracts.Num {
	if !lpa.Valid || !vpa.Valid {
		return contracts.None
	}
	product := r.GrahamMultiplier * lpa.Value * vpa.Value
	if product < 0 || math.IsNaN(product) {
		return contracts.None
	}
	return contracts.Some(math.Sqrt(product))
}

// ClassifyPrice compares a price against its fair value.
// Within the tolerance band is fair, regardless of direction.
func (r Rules) ClassifyPrice(price, fair contracts.Num) contracts.Classification {
	if !price.Valid || !fair.Valid || fair.Value <= 0 {
		return contracts.Unknown
	}

	p, f := price.Value, fair.Value
	switch {
	case math.Abs(p-f)/f <= r.Tolerance:
		return contracts.Fair
	case p < f:
		return contracts.Cheap
	default:
		return contracts.Expensive
	}
}

// ClassifyPVP compares a price-to-book ratio against the category threshold
func (r Rules) ClassifyPVP(category contracts.Category, pvp contracts.Num) contracts.Classification {
	if !pvp.Valid {
		return contracts.Unknown
	}
	t, ok := r.Thresholds[category]
	if !ok {
		return contracts.Unknown
	}

	switch {
	case pvp.Value < t:
		return contracts.Cheap
	case math.Abs(pvp.Value-t) < r.Epsilon:
		return contracts.Fair
	default:
		return contracts.Expensive
	}
}

// NormalizeCategory maps free text to a category using the keyword table.
// Matching is a case-insensitive substring test; the first keyword wins.
func (r Rules) NormalizeCategory(raw string) contracts.Category {
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" {
		return contracts.CategoryUnknown
	}
	for _, k := range r.Keywords {
		if strings.Contains(t, strings.ToLower(k.Keyword)) {
			return k.Category
		}
	}
	return contracts.CategoryUnknown
}
