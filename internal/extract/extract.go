// Package extract derives the best-effort plain-text job description from
// heterogeneous HTML using a prioritized cascade of strategies: structured
// data, DOM selector heuristics, generic block search, meta tags, a general
// article extractor, and finally the whole visible page. Every strategy
// degrades to nothing rather than failing; extraction fails only when all of
// them come up empty.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extractor runs the extraction cascade. The selector tables and the article
// fallback are configuration so callers (and tests) can adjust them without
// touching the cascade itself.
type Extractor struct {
	Rules    []SelectorRule
	Article  ArticleExtractor
	Platform func(urlStr string) Platform
}

// New returns an Extractor with the default selector cascade, trafilatura as
// the article fallback, and URL-based platform detection.
func New() *Extractor {
	return &Extractor{
		Rules:    DefaultSelectorRules(),
		Article:  TrafilaturaExtractor,
		Platform: DetectPlatform,
	}
}

// Extract is a convenience wrapper around the default Extractor.
func Extract(rawHTML, pageURL string) string {
	return New().Extract(rawHTML, pageURL)
}

// Extract returns the combined plain-text job description for the page, or
// the empty string when no strategy produced text. It never fails on
// malformed input. All non-empty fragments are space-joined: downstream
// ranking tolerates the redundancy, and keeping every fragment preserves
// content a single strategy would have missed.
func (e *Extractor) Extract(rawHTML, pageURL string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	var fragments []string
	appendFragment := func(text string) {
		if text != "" {
			fragments = append(fragments, text)
		}
	}

	appendFragment(extractJSONLD(doc))

	rules := e.Rules
	if e.Platform != nil {
		if platformRules := PlatformSelectorRules(e.Platform(pageURL)); len(platformRules) > 0 {
			rules = append(platformRules, rules...)
		}
	}
	domText := extractBySelectors(doc, rules)
	if domText == "" {
		domText = extractFallbackBlocks(doc)
	}
	appendFragment(domText)

	appendFragment(extractMeta(doc))

	if e.Article != nil {
		appendFragment(e.Article(rawHTML, pageURL))
	}

	// Destructive: wholePageText removes nodes, so it runs last.
	appendFragment(wholePageText(doc))

	return strings.TrimSpace(strings.Join(fragments, " "))
}
