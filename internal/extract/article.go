package extract

import (
	"bytes"
	nurl "net/url"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// ArticleExtractor turns raw HTML into article text. It is the pluggable
// general-content fallback of the cascade; implementations must return the
// empty string on any failure instead of an error.
type ArticleExtractor func(rawHTML, pageURL string) string

// TrafilaturaExtractor extracts the main article content using
// go-trafilatura, mirroring the readability-style fallback used for pages no
// dedicated selector understands.
func TrafilaturaExtractor(rawHTML, pageURL string) string {
	opts := trafilatura.Options{
		ExcludeComments: true,
		ExcludeTables:   true,
		EnableFallback:  true,
	}
	if parsed, err := nurl.Parse(pageURL); err == nil && parsed.Host != "" {
		opts.OriginalURL = parsed
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil || result == nil || result.ContentNode == nil {
		return ""
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return ""
	}
	return htmlToText(buf.String())
}
