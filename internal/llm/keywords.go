package llm

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// keywordsSchema validates the expected model output before trusting it.
const keywordsSchema = `{
	"type": "object",
	"required": ["keywords"],
	"properties": {
		"keywords": {
			"type": "array",
			"items": {"type": "string"}
		}
	}
}`

// Keywords asks the model for the focus keywords a resume should contain for
// the given job text. It returns an empty list on any failure or
// misconfiguration and never returns an error: the augmentation is optional
// and the heuristic ranking must proceed without it.
func Keywords(ctx context.Context, cfg Config, jobText, resumeText string, max int) []string {
	if strings.TrimSpace(jobText) == "" || !cfg.Enabled() {
		return nil
	}

	client, err := NewClient(ctx, cfg)
	if err != nil {
		log.Printf("[llm] failed to initialise client: %v", err)
		return nil
	}
	defer func() { _ = client.Close() }()

	raw, err := client.GenerateJSON(ctx, buildKeywordPrompt(jobText, resumeText, max))
	if err != nil {
		log.Printf("[llm] keyword extraction request failed: %v", err)
		return nil
	}

	return ParseKeywords(raw, max)
}

// buildKeywordPrompt assembles the extraction prompt. The resume text is
// included as reference only so the model favors terms the resume lacks.
func buildKeywordPrompt(jobText, resumeText string, max int) string {
	var b strings.Builder
	b.WriteString("You analyse job descriptions and list the most relevant skills, tools, ")
	b.WriteString("and domain keywords. Return a JSON object with a `keywords` array of strings.\n\n")
	b.WriteString("Extract the top focus keywords the resume should contain. ")
	b.WriteString("Include up to ")
	b.WriteString(strconv.Itoa(max))
	b.WriteString(" distinct items. Skip duplicates, generic stop words, and company names unless vital.\n\n")
	b.WriteString("Job description:\n")
	b.WriteString(strings.TrimSpace(jobText))
	if strings.TrimSpace(resumeText) != "" {
		b.WriteString("\n\nExisting resume content (for reference, do not paraphrase):\n")
		b.WriteString(resumeText)
	}
	return b.String()
}

// ParseKeywords extracts a deduplicated, capped keyword list from raw model
// output. Structurally valid JSON is trusted as-is; anything else falls back
// to splitting the text on newlines and commas.
func ParseKeywords(raw string, max int) []string {
	raw = CleanJSONBlock(raw)
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var collected []string
	if validKeywordsJSON(raw) {
		var payload struct {
			Keywords []string `json:"keywords"`
		}
		if err := json.Unmarshal([]byte(raw), &payload); err == nil {
			for _, item := range payload.Keywords {
				if cleaned := strings.TrimSpace(item); cleaned != "" {
					collected = append(collected, cleaned)
				}
			}
		}
	} else {
		for _, chunk := range strings.FieldsFunc(raw, func(r rune) bool {
			return r == '\n' || r == ','
		}) {
			candidate := strings.Trim(chunk, " \t-•\"[]{}")
			if len(candidate) > 1 {
				collected = append(collected, candidate)
			}
		}
	}

	seen := make(map[string]struct{}, len(collected))
	ordered := make([]string, 0, len(collected))
	for _, keyword := range collected {
		lowered := strings.ToLower(keyword)
		if _, dup := seen[lowered]; dup {
			continue
		}
		seen[lowered] = struct{}{}
		ordered = append(ordered, keyword)
		if len(ordered) >= max {
			break
		}
	}
	return ordered
}

// validKeywordsJSON reports whether raw conforms to the keywords schema.
func validKeywordsJSON(raw string) bool {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(keywordsSchema),
		gojsonschema.NewStringLoader(raw),
	)
	return err == nil && result.Valid()
}
