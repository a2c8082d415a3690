package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fallbackMinLength is the minimum text length for the generic block search.
const fallbackMinLength = 300

// fallbackSignalBonus is the flat bonus for a generic block containing any
// job-description signal word.
const fallbackSignalBonus = 400

// extractBySelectors applies the selector cascade and returns the text of the
// highest scoring matching element. Score is text length plus the rule's
// bonus for each signal phrase present.
func extractBySelectors(doc *goquery.Document, rules []SelectorRule) string {
	bestText := ""
	bestScore := 0

	for _, rule := range rules {
		doc.Find(rule.Selector).Each(func(_ int, s *goquery.Selection) {
			text := selectionText(s)
			if len(text) < rule.MinLength {
				return
			}
			score := len(text)
			lowered := strings.ToLower(text)
			for _, signal := range signalPhrases {
				if strings.Contains(lowered, signal) {
					score += rule.SignalBonus
				}
			}
			if score > bestScore {
				bestScore = score
				bestText = text
			}
		})
	}
	return bestText
}

// extractFallbackBlocks scans generic container elements for the largest
// plausible description block, skipping obvious navigation and boilerplate
// wrappers.
func extractFallbackBlocks(doc *goquery.Document) string {
	bestText := ""
	bestScore := 0

	doc.Find("section, article, div").Each(func(_ int, s *goquery.Selection) {
		attrs := strings.ToLower(strings.Join([]string{
			s.AttrOr("id", ""),
			s.AttrOr("class", ""),
			s.AttrOr("role", ""),
			s.AttrOr("aria-label", ""),
		}, " "))
		for _, marker := range noiseMarkers {
			if strings.Contains(attrs, marker) {
				return
			}
		}

		text := selectionText(s)
		if len(text) < fallbackMinLength {
			return
		}
		score := len(text)
		lowered := strings.ToLower(text)
		for _, signal := range fallbackSignals {
			if strings.Contains(lowered, signal) {
				score += fallbackSignalBonus
				break
			}
		}
		if score > bestScore {
			bestScore = score
			bestText = text
		}
	})
	return bestText
}

// extractMeta reads description-like meta tags: og:description first, then
// the standard description tag. Short values are rejected as link previews
// rather than content.
func extractMeta(doc *goquery.Document) string {
	const minMetaLength = 80

	if content, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		if collapsed := collapseWhitespace(content); len(collapsed) > minMetaLength {
			return collapsed
		}
	}
	if content, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if collapsed := collapseWhitespace(content); len(collapsed) > minMetaLength {
			return collapsed
		}
	}
	return ""
}

// wholePageText strips script, style and navigational chrome from the page
// and returns all remaining visible text.
func wholePageText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, header, footer, nav, aside").Remove()
	return selectionText(doc.Find("body"))
}
