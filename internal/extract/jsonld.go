package extract

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minGenericDescriptionLength is the minimum length for a description found
// under a generic key (rather than a tagged JobPosting) to be trusted.
const minGenericDescriptionLength = 120

// descriptionKeys are generic keys under which single-page apps embed job
// descriptions without the JobPosting schema, in probe order.
var descriptionKeys = []string{
	"description",
	"jobDescription",
	"job_description",
	"details",
	"summary",
	"body",
	"content",
}

// extractJSONLD scans the document's script islands for structured data
// describing a job posting and returns its description as plain text.
func extractJSONLD(doc *goquery.Document) string {
	var found string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		typeAttr := strings.ToLower(s.AttrOr("type", ""))
		if typeAttr != "" && !strings.Contains(typeAttr, "json") {
			return true
		}

		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}

		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return true
		}

		descriptionHTML := findJobDescription(data)
		if descriptionHTML == "" {
			return true
		}

		if text := htmlToText(descriptionHTML); text != "" {
			found = text
			return false
		}
		return true
	})
	return found
}

// findJobDescription recursively searches decoded JSON for a job description.
// Objects tagged as job postings win outright; otherwise any sufficiently
// long string under a description-like key is accepted. Nested maps are
// visited in sorted key order so the first hit is deterministic.
func findJobDescription(data any) string {
	switch node := data.(type) {
	case map[string]any:
		typeValue, _ := node["@type"].(string)
		if typeValue == "" {
			typeValue, _ = node["type"].(string)
		}
		switch strings.ToLower(typeValue) {
		case "jobposting", "job":
			for _, key := range []string{"description", "responsibilities"} {
				if desc, ok := node[key].(string); ok && strings.TrimSpace(desc) != "" {
					return desc
				}
			}
		}

		for _, key := range descriptionKeys {
			if value, ok := node[key].(string); ok && len(strings.TrimSpace(value)) > minGenericDescriptionLength {
				return value
			}
		}

		keys := make([]string, 0, len(node))
		for key := range node {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if extracted := findJobDescription(node[key]); extracted != "" {
				return extracted
			}
		}
	case []any:
		for _, item := range node {
			if extracted := findJobDescription(item); extracted != "" {
				return extracted
			}
		}
	}
	return ""
}
