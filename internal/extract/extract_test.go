package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestExtractor returns an extractor without the trafilatura fallback so
// assertions only exercise the deterministic strategies.
func newTestExtractor() *Extractor {
	return &Extractor{
		Rules:    DefaultSelectorRules(),
		Platform: DetectPlatform,
	}
}

func longDescription(marker string) string {
	return marker + " " + strings.Repeat("Design and operate distributed services. ", 10) +
		"Requirements include strong knowledge of Go and Kubernetes. Responsibilities cover on-call."
}

func TestExtract_JSONLDJobPosting(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"JobPosting","title":"Backend Engineer",
"description":"<p>Build <b>golang-jsonld-marker</b> services.</p><p>Requirements: Go, gRPC.</p>"}
</script>
</head><body><p>short</p></body></html>`

	text := newTestExtractor().Extract(html, "https://example.com/job")

	assert.Contains(t, text, "golang-jsonld-marker")
	assert.Contains(t, text, "Requirements: Go, gRPC.")
	assert.NotContains(t, text, "<p>")
}

func TestExtract_JSONLDGenericKeyNeedsLength(t *testing.T) {
	short := `<script type="application/json">{"jobDescription":"too short"}</script>`
	long := `<script type="application/json">{"jobDescription":"` + longDescription("generic-key-marker") + `"}</script>`

	e := newTestExtractor()
	assert.NotContains(t, e.Extract("<html><body>"+short+"</body></html>", ""), "too short")
	assert.Contains(t, e.Extract("<html><body>"+long+"</body></html>", ""), "generic-key-marker")
}

func TestExtract_JSONLDIgnoresMalformedIslands(t *testing.T) {
	html := `<html><body>
<script type="application/ld+json">{not valid json</script>
<script type="application/ld+json">{"@type":"JobPosting","description":"` + longDescription("second-island-marker") + `"}</script>
</body></html>`

	text := newTestExtractor().Extract(html, "")

	assert.Contains(t, text, "second-island-marker")
}

func TestExtract_DOMSelectorCascade(t *testing.T) {
	html := `<html><body>
<div class="job-description">` + longDescription("dom-selector-marker") + `</div>
</body></html>`

	text := newTestExtractor().Extract(html, "")

	assert.Contains(t, text, "dom-selector-marker")
}

func TestExtract_DOMHighestScoringElementWins(t *testing.T) {
	short := "A tiny blurb about perks. " + strings.Repeat("Benefits and culture notes. ", 8)
	html := `<html><body>
<div class="job-description">` + short + `</div>
<div class="job-description">` + longDescription("winning-marker") + `</div>
</body></html>`

	e := &Extractor{Rules: DefaultSelectorRules()}
	doc := parseDoc(t, html)
	best := extractBySelectors(doc, e.Rules)

	assert.Contains(t, best, "winning-marker")
}

func TestExtract_FallbackBlockSkipsBoilerplate(t *testing.T) {
	filler := strings.Repeat("Navigation links and legal text for the site footer area. ", 10)
	html := `<html><body>
<div id="footer">` + filler + `</div>
<div id="main-block">` + longDescription("fallback-marker") + `</div>
</body></html>`

	doc := parseDoc(t, html)
	best := extractFallbackBlocks(doc)

	assert.Contains(t, best, "fallback-marker")
	assert.NotContains(t, best, "legal text")
}

func TestExtract_MetaDescriptionThreshold(t *testing.T) {
	long := strings.Repeat("Meta description of the role with enough detail to qualify. ", 3)
	html := `<html><head>
<meta property="og:description" content="` + long + `">
</head><body></body></html>`

	doc := parseDoc(t, html)
	assert.NotEmpty(t, extractMeta(doc))

	shortHTML := `<html><head><meta name="description" content="too short"></head><body></body></html>`
	assert.Empty(t, extractMeta(parseDoc(t, shortHTML)))
}

func TestExtract_MetaPrefersOpenGraph(t *testing.T) {
	long := strings.Repeat("og-description-text with plenty of padding to pass the threshold. ", 3)
	other := strings.Repeat("plain-description-text also long enough to pass the threshold. ", 3)
	html := `<html><head>
<meta name="description" content="` + other + `">
<meta property="og:description" content="` + long + `">
</head><body></body></html>`

	meta := extractMeta(parseDoc(t, html))

	assert.Contains(t, meta, "og-description-text")
}

func TestExtract_WholePageFallbackStripsChrome(t *testing.T) {
	html := `<html><body>
<nav>site navigation</nav>
<script>var tracking = "script-payload";</script>
<p>Visible paragraph about the position.</p>
<footer>copyright line</footer>
</body></html>`

	text := newTestExtractor().Extract(html, "")

	assert.Contains(t, text, "Visible paragraph about the position.")
	assert.NotContains(t, text, "script-payload")
}

func TestExtract_EmptyAndMalformedInput(t *testing.T) {
	e := newTestExtractor()

	assert.Empty(t, e.Extract("", ""))
	// A page with structure but no text yields no result.
	assert.Empty(t, e.Extract("<html><body><div></div><span></span></body></html>", ""))
}

func TestExtract_ArticleFallbackIsPluggable(t *testing.T) {
	e := newTestExtractor()
	e.Article = func(rawHTML, pageURL string) string { return "article-extractor-output" }

	text := e.Extract("<html><body><p>page body text</p></body></html>", "")

	assert.Contains(t, text, "article-extractor-output")
	assert.Contains(t, text, "page body text")
}

func TestExtract_CombinesFragments(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">{"@type":"JobPosting","description":"jsonld-fragment requirements"}</script>
</head><body>
<div class="job-description">` + longDescription("dom-fragment") + `</div>
</body></html>`

	text := newTestExtractor().Extract(html, "")

	assert.Contains(t, text, "jsonld-fragment")
	assert.Contains(t, text, "dom-fragment")
}

func TestDetectPlatform(t *testing.T) {
	assert.Equal(t, PlatformGreenhouse, DetectPlatform("https://boards.greenhouse.io/acme/jobs/1"))
	assert.Equal(t, PlatformLever, DetectPlatform("https://jobs.lever.co/acme/abc"))
	assert.Equal(t, PlatformWorkday, DetectPlatform("https://acme.wd1.myworkdayjobs.com/en-US/roles"))
	assert.Equal(t, PlatformUnknown, DetectPlatform("https://careers.example.com/role"))
	assert.Equal(t, PlatformUnknown, DetectPlatform("::not a url::"))
}

func TestPlatformSelectorRules_PrependedForKnownPlatform(t *testing.T) {
	html := `<html><body>
<div class="job__description body">` + longDescription("greenhouse-marker") + `</div>
</body></html>`

	text := newTestExtractor().Extract(html, "https://boards.greenhouse.io/acme/jobs/1")

	assert.Contains(t, text, "greenhouse-marker")
}

func TestFindJobDescription_NestedAndDeterministic(t *testing.T) {
	data := map[string]any{
		"zz": map[string]any{"@type": "JobPosting", "description": "nested posting description"},
		"aa": []any{map[string]any{"irrelevant": "x"}},
	}

	first := findJobDescription(data)
	require.Equal(t, "nested posting description", first)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, findJobDescription(data))
	}
}

func parseDoc(t *testing.T, raw string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	require.NoError(t, err)
	return doc
}
