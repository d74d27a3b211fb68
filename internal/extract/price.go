package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/carteira/internal/contracts"
)

// MaxFallbackPrice bounds the loose strategies: a page-wide "R$" hit at or
// above it is almost always a market cap or a dividend total, not a quote.
const MaxFallbackPrice = 10000.0

// PriceStrategy is one way of reading the current quote off a page
type PriceStrategy struct {
	Name string
	Find func(p *Page, symbol string) contracts.Num
}

// PriceChain evaluates strategies in order; the first present value wins
type PriceChain []PriceStrategy

// Find returns the first price any strategy yields and the strategy's name
func (c PriceChain) Find(p *Page, symbol string) (contracts.Num, string) {
	symbol = contracts.NormalizeSymbol(symbol)
	for _, s := range c {
		if v := s.Find(p, symbol); v.Valid {
			return v, s.Name
		}
	}
	return contracts.None, ""
}

// SentenceStrategies are the text patterns shared by every page profile:
// the price sentence naming the symbol, then progressively looser variants.
func SentenceStrategies() PriceChain {
	return PriceChain{
		sentence("quote-sentence", `(?i)cot[aã]ção.*?\b%s\b.*?R\$\s*([0-9.,]+)`),
		sentence("symbol-sentence", `(?i)\b%s\b.*?R\$\s*([0-9.,]+)`),
		sentence("quote-word", `(?i)cot[aã]ção.*?R\$\s*([0-9.,]+)`),
		sentence("symbol-near", `(?i)%s.{0,40}R\$\s*([0-9.,]+)`),
	}
}

// sentence builds a strategy from a pattern whose %s is the quoted symbol.
// Only the first match counts; if its number does not parse the strategy
// yields nothing and the chain moves on.
func sentence(name, pattern string) PriceStrategy {
	withSymbol := strings.Contains(pattern, "%s")
	var fixed *regexp.Regexp
	if !withSymbol {
		fixed = regexp.MustCompile(pattern)
	}

	return PriceStrategy{
		Name: name,
		Find: func(p *Page, symbol string) contracts.Num {
			re := fixed
			if withSymbol {
				if symbol == "" {
					return contracts.None
				}
				re = regexp.MustCompile(strings.Replace(pattern, "%s", regexp.QuoteMeta(symbol), 1))
			}

			m := re.FindStringSubmatch(p.Text)
			if m == nil {
				return contracts.None
			}
			return ParseNumber(m[1])
		},
	}
}

var priceClassHints = []string{"price", "preco", "valor", "cotac", "cotaç", "last", "atual"}

// ClassHintStrategy reads the first element whose class attribute hints at a
// price and whose text parses to a plausible positive value.
func ClassHintStrategy() PriceStrategy {
	return PriceStrategy{
		Name: "class-hint",
		Find: func(p *Page, _ string) contracts.Num {
			for _, n := range elements(p.Doc) {
				class, ok := attr(n, "class")
				if !ok || !hasAnyFold(class, priceClassHints) {
					continue
				}
				if v := ParseNumber(nodeText(n)); plausiblePrice(v) {
					return v
				}
			}
			return contracts.None
		},
	}
}

var (
	priceTags  = []string{"strong", "h1", "h2", "h3", "span", "div"}
	priceShape = regexp.MustCompile(`R\$|\d+[.,]\d{2}`)
)

// PriceTagStrategy scans emphasis and heading tags, one tag name at a time,
// for text that looks like a price ("R$" or two decimals). The whole element
// text is parsed and bounded by MaxFallbackPrice.
func PriceTagStrategy() PriceStrategy {
	return PriceStrategy{
		Name: "price-tag",
		Find: func(p *Page, _ string) contracts.Num {
			found := contracts.None
			for _, tag := range priceTags {
				p.Doc.Find(tag).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
					text := nodeText(sel.Get(0))
					if !priceShape.MatchString(text) {
						return true
					}
					if v := ParseNumber(text); plausiblePrice(v) {
						found = v
						return false
					}
					return true
				})
				if found.Valid {
					return found
				}
			}
			return contracts.None
		},
	}
}

var anyCurrency = regexp.MustCompile(`R\$\s*([0-9.,]+)`)

// LastResortStrategy takes the first "R$ <number>" on the page, bounded by
// MaxFallbackPrice.
func LastResortStrategy() PriceStrategy {
	return PriceStrategy{
		Name: "first-currency",
		Find: func(p *Page, _ string) contracts.Num {
			m := anyCurrency.FindStringSubmatch(p.Text)
			if m == nil {
				return contracts.None
			}
			if v := ParseNumber(m[1]); plausiblePrice(v) {
				return v
			}
			return contracts.None
		},
	}
}

func plausiblePrice(v contracts.Num) bool {
	return v.Valid && v.Value > 0 && v.Value < MaxFallbackPrice
}

func hasAnyFold(s string, subs []string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
