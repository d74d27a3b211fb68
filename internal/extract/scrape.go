package extract

import (
	"github.com/wonny/carteira/internal/contracts"
	"github.com/wonny/carteira/pkg/logger"
)

// Profile parameterizes the single page scraper for one instrument kind
type Profile struct {
	Kind   contracts.Kind
	Fields []Field
	Price  PriceChain

	// CategoryKeywords is the ordered keyword table; nil skips category lookup
	CategoryKeywords []string
}

// StockProfile reads price, LPA and VPA from an ações page
func StockProfile() Profile {
	chain := SentenceStrategies()
	chain = append(chain, ClassHintStrategy(), PriceTagStrategy(), LastResortStrategy())

	return Profile{
		Kind:   contracts.KindStock,
		Fields: []Field{FieldLPA, FieldVPA},
		Price:  chain,
	}
}

// FundProfile reads price, P/VP and the category keyword from a FII page
func FundProfile(keywords []string) Profile {
	chain := SentenceStrategies()
	chain = append(chain, LastResortStrategy())

	return Profile{
		Kind:             contracts.KindFund,
		Fields:           []Field{FieldPVP},
		Price:            chain,
		CategoryKeywords: keywords,
	}
}

// Scrape extracts a record from an instrument page body.
// It never fails: fields that cannot be found stay absent.
func Scrape(body, symbol string, profile Profile, log *logger.Logger) contracts.ScrapedRecord {
	if log == nil {
		log = logger.NewNop()
	}
	page := NewPage(body)

	var rec contracts.ScrapedRecord
	var strategy string
	rec.Price, strategy = profile.Price.Find(page, symbol)

	for _, f := range profile.Fields {
		v := LocateField(page, f)
		switch f.Key {
		case KeyLPA:
			rec.LPA = v
		case KeyVPA:
			rec.VPA = v
		case KeyPVP:
			rec.PVP = v
		}
	}

	if profile.CategoryKeywords != nil {
		rec.Category = LocateCategory(page, profile.CategoryKeywords)
	}

	fields := map[string]interface{}{
		"symbol": symbol,
		"kind":   profile.Kind,
	}
	if !rec.Price.Valid {
		log.WithFields(fields).Debug("price not found on page")
	} else {
		log.WithFields(fields).WithField("strategy", strategy).Debug("price located")
	}
	for _, f := range profile.Fields {
		if !valueOf(rec, f.Key).Valid {
			log.WithFields(fields).WithField("field", f.Key).Debug("field not found on page")
		}
	}
	if profile.CategoryKeywords != nil && rec.Category == "" {
		log.WithFields(fields).Debug("category not found on page")
	}

	return rec
}

func valueOf(rec contracts.ScrapedRecord, key FieldKey) contracts.Num {
	switch key {
	case KeyLPA:
		return rec.LPA
	case KeyVPA:
		return rec.VPA
	case KeyPVP:
		return rec.PVP
	}
	return contracts.None
}
