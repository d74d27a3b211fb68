package contracts

import "time"

// PortfolioSummary aggregates income statistics over the wallet holdings that
// report both a position value and a yield.
// ⭐ A nil summary means "not computable", never "0% yield"
type PortfolioSummary struct {
	TotalInvested float64 `json:"total_invested"`
	AnnualIncome  float64 `json:"annual_income"`
	MonthlyIncome float64 `json:"monthly_income"`
	MonthlyYield  float64 `json:"monthly_yield"` // ratio, 0.0071 = 0.71% a month
	Holdings      int     `json:"holdings"`      // holdings that entered the sums
	Skipped       int     `json:"skipped"`
}

// AnnualYield returns the projected yearly yield ratio
func (s *PortfolioSummary) AnnualYield() float64 {
	return s.MonthlyYield * 12
}

// Report is the structured result of one run over an input list
type Report struct {
	RunID       string             `json:"run_id"`
	Kind        Kind               `json:"kind"`
	GeneratedAt time.Time          `json:"generated_at"`
	Records     []InstrumentRecord `json:"records"`
	Summary     *PortfolioSummary  `json:"summary"`
	Degraded    bool               `json:"degraded"` // wallet unavailable, scrape-only
	RulesHash   string             `json:"rules_hash"`
}

// Record finds a record by symbol
func (r *Report) Record(symbol string) (*InstrumentRecord, bool) {
	symbol = NormalizeSymbol(symbol)
	for i := range r.Records {
		if r.Records[i].Symbol == symbol {
			return &r.Records[i], true
		}
	}
	return nil, false
}

// CountByStatus returns how many records fall in each classification
func (r *Report) CountByStatus() map[Classification]int {
	counts := make(map[Classification]int)
	for _, rec := range r.Records {
		counts[rec.Status]++
	}
	return counts
}
