package keywords

import (
	"sort"
	"strings"
)

// Scoring weights for ranking keyword candidates. Bigrams are rewarded more
// heavily than single words of similar frequency.
const (
	unigramLengthWeight = 0.05
	bigramFreqWeight    = 1.5
	bigramLengthWeight  = 0.03
)

// Rank returns up to max ranked keyword candidates for the given text.
// Candidates are unigrams and bigrams scored by frequency and length, sorted
// deterministically (score desc, length desc, lexicographic asc), with
// case-insensitive duplicates and single words already covered by an accepted
// phrase filtered out.
func Rank(text string, max int) []string {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return []string{}
	}

	unigramCounts := make(map[string]int)
	for _, token := range tokens {
		unigramCounts[token]++
	}

	bigramCounts := make(map[string]int)
	for i := 0; i+1 < len(tokens); i++ {
		first, second := tokens[i], tokens[i+1]
		if IsStopword(first) || IsStopword(second) {
			continue
		}
		bigramCounts[first+" "+second]++
	}

	scores := make(map[string]float64, len(unigramCounts)+len(bigramCounts))
	for token, count := range unigramCounts {
		scores[token] = float64(count) + float64(len(token))*unigramLengthWeight
	}
	for bigram, count := range bigramCounts {
		scores[bigram] = scores[bigram] + float64(count)*bigramFreqWeight + float64(len(bigram))*bigramLengthWeight
	}

	sorted := make([]string, 0, len(scores))
	for candidate := range scores {
		sorted = append(sorted, candidate)
	}
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})

	seen := make(map[string]struct{})
	phrases := make([]string, 0)
	result := make([]string, 0, max)
	for _, candidate := range sorted {
		if len(candidate) < 2 {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		if !strings.Contains(candidate, " ") && containedInPhrase(candidate, phrases) {
			continue
		}
		seen[candidate] = struct{}{}
		if strings.Contains(candidate, " ") {
			phrases = append(phrases, candidate)
		}
		result = append(result, candidate)
		if len(result) >= max {
			break
		}
	}
	return result
}

// containedInPhrase reports whether the single-word candidate occurs as a
// substring of any accepted multi-word phrase. This is a textual check, not a
// semantic one: a word overlapping an unrelated phrase is still suppressed.
func containedInPhrase(candidate string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(phrase, candidate) {
			return true
		}
	}
	return false
}

// Merge appends extra candidates (typically AI-suggested) to the heuristic
// list, deduplicating case-insensitively while preserving encounter order.
func Merge(candidates []string, extra []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	merged := make([]string, 0, len(candidates)+len(extra))
	for _, kw := range candidates {
		seen[strings.ToLower(kw)] = struct{}{}
		merged = append(merged, kw)
	}
	for _, kw := range extra {
		lowered := strings.ToLower(kw)
		if _, dup := seen[lowered]; dup {
			continue
		}
		seen[lowered] = struct{}{}
		merged = append(merged, kw)
	}
	return merged
}
