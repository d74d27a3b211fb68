package contracts

import (
	"fmt"
	"strings"
)

// Kind selects the wallet segment, the public page and the valuation mode
type Kind string

const (
	KindStock Kind = "stock" // ações: earnings/book-value mode
	KindFund  Kind = "fund"  // FIIs: price-to-book mode
)

// WalletSegment returns the instrument-kind segment of the wallet API path
func (k Kind) WalletSegment() string {
	if k == KindFund {
		return "Fii"
	}
	return "Ticker"
}

// PagePath returns the path prefix of the public instrument page
func (k Kind) PagePath() string {
	if k == KindFund {
		return "fiis"
	}
	return "acoes"
}

// ParseKind accepts the English names and the Portuguese page prefixes
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stock", "stocks", "acao", "acoes", "ações":
		return KindStock, nil
	case "fund", "funds", "fii", "fiis":
		return KindFund, nil
	default:
		return "", fmt.Errorf("unknown instrument kind: %q (valid: stock, fund)", s)
	}
}

// Category is the normalized real-estate fund category
type Category string

const (
	CategoryUnknown     Category = ""
	CategoryPaper       Category = "papel"  // paper-backed (receivables)
	CategoryBrick       Category = "tijolo" // brick-and-mortar
	CategoryMixed       Category = "misto"  // mixed fund
	CategoryFundOfFunds Category = "fundos" // fund of funds
	CategoryOther       Category = "outro"
)

// Classification is the cheap/fair/expensive verdict
type Classification string

const (
	Cheap     Classification = "cheap"
	Fair      Classification = "fair"
	Expensive Classification = "expensive"
	Unknown   Classification = "unknown"
)

// Holding is one position reported by the wallet API.
// Field presence is not guaranteed; absent numbers decode to None.
type Holding struct {
	Symbol       string  `json:"ticker_name"`
	CurrentPrice FlexNum `json:"current_price"`
	AvgPrice     FlexNum `json:"avg_price"`
	Quantity     FlexNum `json:"quantity"`
	Yield        FlexNum `json:"dividend_yield"` // annualized, percent
	TotalValue   FlexNum `json:"total_value"`
	Category     string  `json:"fii_type"`
	LPA          FlexNum `json:"lpa"`
	VPA          FlexNum `json:"vpa"`
	PVP          FlexNum `json:"p_vp"`
}

// Key returns the normalized symbol used to match holdings against input symbols
func (h Holding) Key() string {
	return NormalizeSymbol(h.Symbol)
}

// ScrapedRecord holds what could be read from a public instrument page
type ScrapedRecord struct {
	Price    Num    `json:"price"`
	LPA      Num    `json:"lpa"`
	VPA      Num    `json:"vpa"`
	PVP      Num    `json:"p_vp"`
	Category string `json:"category"` // raw keyword, normalized by the valuator
}

// InstrumentRecord is the merged, valued view of one input symbol
type InstrumentRecord struct {
	Symbol    string         `json:"symbol"`
	Kind      Kind           `json:"kind"`
	Price     Num            `json:"price"`
	AvgPrice  Num            `json:"avg_price"`
	LPA       Num            `json:"lpa"`
	VPA       Num            `json:"vpa"`
	FairValue Num            `json:"fair_value"`
	PVP       Num            `json:"p_vp"`
	Category  Category       `json:"category"`
	Status    Classification `json:"status"`
	InWallet  bool           `json:"in_wallet"`
	Scraped   bool           `json:"scraped"`
}

// NormalizeSymbol trims and upper-cases a ticker symbol
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
