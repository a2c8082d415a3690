package keywords

import (
	"regexp"
	"strings"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Missing returns the candidates absent from the resume content, preserving
// input order. Multi-word phrases are checked as substrings of the
// whitespace-collapsed lowercase text; single words are checked against the
// tokenized vocabulary so surrounding punctuation does not hide a match.
func Missing(resumeContent string, candidates []string) []string {
	normalized := whitespacePattern.ReplaceAllString(strings.ToLower(resumeContent), " ")

	terms := make(map[string]struct{})
	for _, token := range resumeTerms(resumeContent) {
		terms[token] = struct{}{}
	}

	missing := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		lowered := strings.ToLower(candidate)
		if strings.Contains(lowered, " ") {
			if strings.Contains(normalized, lowered) {
				continue
			}
		} else {
			if _, ok := terms[lowered]; ok {
				continue
			}
		}
		missing = append(missing, candidate)
	}
	return missing
}

// resumeTerms extracts the resume's token vocabulary. Unlike Tokenize it
// keeps stopwords and numeric tokens: a keyword already present in the resume
// should count as present regardless of its class.
func resumeTerms(resumeContent string) []string {
	return tokenPattern.FindAllString(strings.ToLower(resumeContent), -1)
}
