// Package extract pulls numeric fields, prices and fund categories out of
// investidor10 instrument pages.
//
// Every extractor is an ordered list of independent strategies evaluated in
// fixed priority order; the first strategy that yields a value wins. All of
// them are total: a strategy that finds nothing returns contracts.None, it
// never fails.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/wonny/carteira/internal/contracts"
)

// Page is a parsed instrument page
type Page struct {
	Doc *goquery.Document

	// Text is the visible page text: text nodes joined by a single space,
	// whitespace runs collapsed, scripts and styles left out.
	Text string
}

// NewPage parses an HTML body. A body that cannot be parsed yields an empty page.
func NewPage(body string) *Page {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		doc = goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}
	return &Page{
		Doc:  doc,
		Text: nodeText(doc.Get(0)),
	}
}

// ParseNumber reads a Brazilian-formatted number ("1.234,56", "R$ 12,30").
// Anything unparseable is absent.
func ParseNumber(s string) contracts.Num {
	return contracts.ParseNum(s)
}

// nodeText returns the text under n, text nodes joined with a single space
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "template", "noscript":
				return
			}
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return collapseSpace(strings.Join(parts, " "))
}

// collapseSpace turns every whitespace run (including NBSP) into one space
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// elements returns every element node of the document in document order
func elements(doc *goquery.Document) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root := doc.Get(0); root != nil {
		walk(root)
	}
	return nodes
}

// isDescendant reports whether n sits inside ancestor
func isDescendant(n, ancestor *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

type tagSet map[string]bool

func tags(names ...string) tagSet {
	s := make(tagSet, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}
