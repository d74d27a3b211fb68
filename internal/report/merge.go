// Package report merges wallet holdings with scraped page data, values every
// requested instrument and assembles the run report.
package report

import (
	"strings"

	"github.com/wonny/carteira/internal/contracts"
	"github.com/wonny/carteira/internal/valuation"
)

// Merged is the field-wise union of a holding and a scraped record
type Merged struct {
	Price    contracts.Num
	AvgPrice contracts.Num
	LPA      contracts.Num
	VPA      contracts.Num
	PVP      contracts.Num
	Category string // raw text, normalized during assembly
	InWallet bool
	Scraped  bool
}

// Merge combines the two sources field by field. A wallet value wins when it
// is present and non-zero; otherwise the scraped value is used. The average
// price exists only in the wallet and is copied as reported. Either source
// may be nil.
func Merge(kind contracts.Kind, h *contracts.Holding, s *contracts.ScrapedRecord) Merged {
	var m Merged
	var scraped contracts.ScrapedRecord
	if s != nil {
		scraped = *s
		m.Scraped = true
	}

	if h != nil {
		m.InWallet = true
		m.Price = prefer(h.CurrentPrice.Num, scraped.Price)
		m.AvgPrice = h.AvgPrice.Num
	} else {
		m.Price = scraped.Price
	}

	switch kind {
	case contracts.KindStock:
		if h != nil {
			m.LPA = prefer(h.LPA.Num, scraped.LPA)
			m.VPA = prefer(h.VPA.Num, scraped.VPA)
		} else {
			m.LPA, m.VPA = scraped.LPA, scraped.VPA
		}
	case contracts.KindFund:
		if h != nil {
			m.PVP = prefer(h.PVP.Num, scraped.PVP)
			m.Category = walletCategory(h)
		} else {
			m.PVP = scraped.PVP
		}
		if m.Category == "" {
			m.Category = scraped.Category
		}
	}

	return m
}

func prefer(wallet, fallback contracts.Num) contracts.Num {
	if wallet.Present() {
		return wallet
	}
	return fallback
}

// walletCategory treats blanks and the "-" placeholder as missing
func walletCategory(h *contracts.Holding) string {
	c := strings.TrimSpace(h.Category)
	if c == "-" {
		return ""
	}
	return c
}

// NeedsScrape reports whether the public page has to be fetched to complete
// a holding. A nil holding always needs it.
func NeedsScrape(kind contracts.Kind, h *contracts.Holding) bool {
	if h == nil {
		return true
	}
	if !h.CurrentPrice.Present() {
		return true
	}

	switch kind {
	case contracts.KindStock:
		return !h.LPA.Present() || !h.VPA.Present()
	case contracts.KindFund:
		return !h.PVP.Present() || walletCategory(h) == ""
	}
	return false
}

// Assemble merges the sources and values the result
func Assemble(kind contracts.Kind, symbol string, h *contracts.Holding, s *contracts.ScrapedRecord, rules valuation.Rules) contracts.InstrumentRecord {
	m := Merge(kind, h, s)

	rec := contracts.InstrumentRecord{
		Symbol:   contracts.NormalizeSymbol(symbol),
		Kind:     kind,
		Price:    m.Price,
		AvgPrice: m.AvgPrice,
		InWallet: m.InWallet,
		Scraped:  m.Scraped,
		Status:   contracts.Unknown,
	}

	switch kind {
	case contracts.KindStock:
		rec.LPA = m.LPA
		rec.VPA = m.VPA
		rec.FairValue = rules.FairValue(m.LPA, m.VPA)
		rec.Status = rules.ClassifyPrice(m.Price, rec.FairValue)
	case contracts.KindFund:
		rec.PVP = m.PVP
		rec.Category = rules.NormalizeCategory(m.Category)
		rec.Status = rules.ClassifyPVP(rec.Category, m.PVP)
	}

	return rec
}
