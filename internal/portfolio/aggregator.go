// Package portfolio projects passive income over the wallet holdings.
package portfolio

import (
	"github.com/wonny/carteira/internal/contracts"
)

// PositionValue returns the money invested in a holding.
// The reported total value wins; otherwise quantity × average price.
func PositionValue(h contracts.Holding) contracts.Num {
	if h.TotalValue.Present() {
		return h.TotalValue.Num
	}
	if h.Quantity.Valid && h.AvgPrice.Valid {
		return contracts.Some(h.Quantity.Value * h.AvgPrice.Value)
	}
	return contracts.None
}

// qualifies reports whether a holding enters the income projection
func qualifies(h contracts.Holding) (value, yield float64, ok bool) {
	v := PositionValue(h)
	if !v.Valid || v.Value <= 0 || !h.Yield.Valid {
		return 0, 0, false
	}
	return v.Value, h.Yield.Value, true
}

// Summarize projects income over every qualifying holding: position value
// present and positive, yield present. Returns nil when none qualifies.
// ⭐ Always called with the full wallet, never a filtered input list
func Summarize(holdings []contracts.Holding) *contracts.PortfolioSummary {
	s := &contracts.PortfolioSummary{}

	for _, h := range holdings {
		value, yield, ok := qualifies(h)
		if !ok {
			s.Skipped++
			continue
		}
		s.TotalInvested += value
		s.AnnualIncome += value * yield / 100
		s.Holdings++
	}

	if s.Holdings == 0 || s.TotalInvested <= 0 {
		return nil
	}

	s.MonthlyIncome = s.AnnualIncome / 12
	s.MonthlyYield = (s.AnnualIncome / s.TotalInvested) / 12

	return s
}
