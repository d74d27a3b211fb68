package extract

import (
	"regexp"
	"strings"

	"github.com/wonny/carteira/internal/contracts"
)

// FieldKey names the record slot a located value goes into
type FieldKey string

const (
	KeyLPA FieldKey = "lpa"
	KeyVPA FieldKey = "vpa"
	KeyPVP FieldKey = "p_vp"
)

// Field describes a labelled numeric indicator on an instrument page
type Field struct {
	Key    FieldKey
	Labels []string // upper-case label texts

	labelTags tagSet
	valueTags tagSet
	pattern   *regexp.Regexp // flat-text fallback, one capture group
}

var (
	labelTags = tags("span", "td", "th", "strong", "b")
	valueTags = tags("span", "td", "strong", "b")
)

// FieldLPA is earnings per share
var FieldLPA = Field{
	Key:       KeyLPA,
	Labels:    []string{"LPA"},
	labelTags: labelTags,
	valueTags: valueTags,
	pattern:   regexp.MustCompile(`(?i)LPA[:\s]*(-?[0-9.,]+)`),
}

// FieldVPA is book value per share
var FieldVPA = Field{
	Key:       KeyVPA,
	Labels:    []string{"VPA"},
	labelTags: labelTags,
	valueTags: valueTags,
	pattern:   regexp.MustCompile(`(?i)VPA[:\s]*(-?[0-9.,]+)`),
}

// FieldPVP is price-to-book. Fund pages render it inside div cards.
var FieldPVP = Field{
	Key:       KeyPVP,
	Labels:    []string{"P/VP", "PVP"},
	labelTags: tags("span", "td", "th", "strong", "b", "div"),
	valueTags: tags("span", "td", "strong", "b", "div"),
	pattern:   regexp.MustCompile(`(?i)P/?VP[:\s]*(-?[0-9.,]+)`),
}

// LocateField finds the value of f on the page.
// The structural pass runs first; the flat-text pattern is the fallback.
func LocateField(p *Page, f Field) contracts.Num {
	if v := locateByLabel(p, f); v.Valid {
		return v
	}
	return locateByPattern(p.Text, f)
}

// locateByLabel walks elements in document order. For every label element the
// next candidate value element is parsed; candidates nested inside the label
// that do not parse (icons, tooltips, the label text itself) are skipped.
// The first valid parse wins.
func locateByLabel(p *Page, f Field) contracts.Num {
	nodes := elements(p.Doc)

	for i, n := range nodes {
		if !f.labelTags[n.Data] || !f.matchesLabel(nodeText(n)) {
			continue
		}

		for _, next := range nodes[i+1:] {
			if !f.valueTags[next.Data] {
				continue
			}
			if v := ParseNumber(nodeText(next)); v.Valid {
				return v
			}
			if !isDescendant(next, n) {
				break
			}
		}
	}

	return contracts.None
}

func (f Field) matchesLabel(text string) bool {
	t := strings.ToUpper(strings.TrimSpace(text))
	for _, label := range f.Labels {
		if t == label || strings.HasPrefix(t, label+" ") || strings.HasPrefix(t, label+":") {
			return true
		}
	}
	return false
}

func locateByPattern(text string, f Field) contracts.Num {
	for _, m := range f.pattern.FindAllStringSubmatch(text, -1) {
		if v := ParseNumber(m[1]); v.Valid {
			return v
		}
	}
	return contracts.None
}
