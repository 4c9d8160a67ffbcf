package support

import (
	"sort"
	"strings"
)

// Candidate is a knowledge entry considered when answering a support query.
// Candidates come from published knowledge-base articles plus the about
// document and are immutable during a scoring pass.
type Candidate struct {
	Title    string
	Content  string
	Keywords []string
	Source   string
}

// ScoredCandidate pairs a candidate with its token-overlap score.
type ScoredCandidate struct {
	Candidate
	Score int
}

const minTokenLength = 3

// Tokenize lowercases the query, splits on non-word boundaries and drops
// tokens shorter than three characters.
func Tokenize(message string) []string {
	fields := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !isWordRune(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

// Rank scores every candidate against the query and returns the list in
// descending score order (stable, so earlier candidates win ties) together
// with the single best match. Best is nil when nothing scores above zero.
//
// Matching is substring containment, not whole-word: a short token can hit
// inside an unrelated longer word. Published content depends on this recall
// behavior, so it must not be tightened to word matching.
func Rank(message string, candidates []Candidate) ([]ScoredCandidate, *ScoredCandidate) {
	tokens := Tokenize(message)

	scored := make([]ScoredCandidate, 0, len(candidates))
	bestScore := 0
	bestIndex := -1

	for i, cand := range candidates {
		haystack := strings.ToLower(cand.Title + " " + strings.Join(cand.Keywords, " ") + " " + cand.Content)
		score := 0
		for _, tok := range tokens {
			if strings.Contains(haystack, tok) {
				score++
			}
		}
		scored = append(scored, ScoredCandidate{Candidate: cand, Score: score})
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})

	if bestIndex < 0 {
		return scored, nil
	}
	best := ScoredCandidate{Candidate: candidates[bestIndex], Score: bestScore}
	return scored, &best
}

// Truncate limits s to max runes, appending an ellipsis when content was cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
