package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CategoryStrategy returns the text a category keyword is searched in
type CategoryStrategy struct {
	Name   string
	Source func(p *Page) []string
}

var articleBody = regexp.MustCompile(`(?is)"articleBody"\s*:\s*"(.*?)"`)

// CategoryStrategies lists the places a fund category is described, most
// specific first: the articleBody meta tag, the structured-data script and
// finally the whole page.
func CategoryStrategies() []CategoryStrategy {
	return []CategoryStrategy{
		{
			Name: "meta-article-body",
			Source: func(p *Page) []string {
				var out []string
				p.Doc.Find(`meta[name="articleBody"]`).Each(func(_ int, s *goquery.Selection) {
					if c, ok := s.Attr("content"); ok {
						out = append(out, c)
					}
				})
				return out
			},
		},
		{
			Name: "ld-json",
			Source: func(p *Page) []string {
				var out []string
				p.Doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
					for _, m := range articleBody.FindAllStringSubmatch(s.Text(), -1) {
						out = append(out, m[1])
					}
				})
				return out
			},
		},
		{
			Name: "page-text",
			Source: func(p *Page) []string {
				return []string{p.Text}
			},
		},
	}
}

// LocateCategory returns the first keyword found, trying each strategy in
// order and each keyword in table order. Empty when nothing matches.
func LocateCategory(p *Page, keywords []string) string {
	for _, s := range CategoryStrategies() {
		for _, text := range s.Source(p) {
			if kw := findKeyword(text, keywords); kw != "" {
				return kw
			}
		}
	}
	return ""
}

func findKeyword(text string, keywords []string) string {
	t := strings.ToLower(text)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(t, strings.ToLower(kw)) {
			return kw
		}
	}
	return ""
}
