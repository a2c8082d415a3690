package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// nodeText walks an HTML node and returns its visible text with element
// boundaries rendered as single spaces. goquery's Text() concatenates text
// nodes directly, which glues adjacent words together across tags.
func nodeText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if trimmed := strings.Join(strings.Fields(n.Data), " "); trimmed != "" {
				parts = append(parts, trimmed)
			}
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

// selectionText returns the space-joined visible text of a selection.
func selectionText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		if text := nodeText(n); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// htmlToText strips markup from an HTML fragment, returning collapsed text.
func htmlToText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapseWhitespace(fragment)
	}
	return selectionText(doc.Find("body"))
}

// collapseWhitespace reduces all whitespace runs to single spaces and trims.
func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
