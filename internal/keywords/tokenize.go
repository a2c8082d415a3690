// Package keywords derives ranked keyword candidates from job description
// text and compares them against existing resume vocabulary.
package keywords

import (
	"regexp"
	"strings"
)

// tokenPattern matches technical tokens of length >= 2. The tail class allows
// "+", "#", "-" and "/" so tokens like "c++", "c#" and "ci/cd" survive intact.
var tokenPattern = regexp.MustCompile(`[a-z0-9][a-z0-9+#/-]+`)

// Tokenize lowercases text and returns its keyword-candidate tokens,
// excluding stopwords and purely numeric tokens.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	matches := tokenPattern.FindAllString(lowered, -1)

	tokens := make([]string, 0, len(matches))
	for _, token := range matches {
		if IsStopword(token) {
			continue
		}
		if isNumeric(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// isNumeric reports whether the token consists solely of digits.
func isNumeric(token string) bool {
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(token) > 0
}
