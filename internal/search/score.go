// Package search provides fuzzy subsequence scoring and query-driven
// filtering over a project snapshot.
package search

import "strings"

// Scoring constants for the subsequence scan.
const (
	matchBase   = 10 // awarded for every matched query character
	streakBonus = 2  // multiplied by the current consecutive-match streak
	missPenalty = 1  // subtracted for every candidate character skipped
	prefixBonus = 30 // candidate starts with the query
	exactBonus  = 50 // candidate equals the query, on top of prefixBonus
)

// Score computes a fuzzy match score between a query and a candidate.
//
// Both strings are trimmed and lowercased first. The query must appear
// in the candidate as a subsequence (all query characters present in
// order, contiguity not required), otherwise the candidate does not
// match at all and ok is false. The returned score is meaningless when
// ok is false and must never be fed into comparisons or sums.
//
// Matched characters earn 10 plus 2 per consecutive-match streak;
// skipped candidate characters cost 1. Scanning stops once the query is
// exhausted, so trailing candidate characters are free. A candidate
// that starts with the query earns +30, and +50 more when equal.
//
// An empty query matches everything with a neutral score of 0.
func Score(query, candidate string) (score int, ok bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	c := strings.ToLower(strings.TrimSpace(candidate))

	if q == "" {
		return 0, true
	}
	if c == "" {
		return 0, false
	}

	qr := []rune(q)
	cursor := 0
	streak := 0

	for _, r := range c {
		if cursor == len(qr) {
			break
		}
		if r == qr[cursor] {
			cursor++
			streak++
			score += matchBase + streakBonus*streak
		} else {
			streak = 0
			score -= missPenalty
		}
	}

	if cursor < len(qr) {
		return 0, false
	}

	if strings.HasPrefix(c, q) {
		score += prefixBonus
		if c == q {
			score += exactBonus
		}
	}

	return score, true
}
