package search

import (
	"sort"
	"strings"
)

const (
	// InclusionFloor is the score a candidate must exceed (strictly) to
	// appear in ranked results at all.
	InclusionFloor = 30

	// DefaultLimit caps ranked results when the caller does not.
	DefaultLimit = 10
)

// Candidate is a ranked match produced by Matcher.
type Candidate struct {
	Text  string
	Score int
}

// Matcher ranks candidate strings against free-text queries. Its methods
// are pure functions of their inputs.
type Matcher struct {
	scorer Scorer
}

// NewMatcher returns a Matcher backed by the given scorer. A nil scorer
// falls back to WeightedRatio.
func NewMatcher(scorer Scorer) *Matcher {
	if scorer == nil {
		scorer = WeightedRatio{}
	}
	return &Matcher{scorer: scorer}
}

// Rank scores every candidate against the trimmed query and returns
// those scoring above InclusionFloor, best first. A candidate exactly
// equal to the trimmed query skips scoring, gets 100 and sorts ahead of
// any other candidate with the same score; remaining ties keep the
// candidate order. An empty query or candidate set yields an empty
// result, never an error. limit <= 0 falls back to DefaultLimit.
func (m *Matcher) Rank(query string, candidates []string, limit int) []Candidate {
	query = strings.TrimSpace(query)
	if query == "" || len(candidates) == 0 {
		return nil
	}

	if limit <= 0 {
		limit = DefaultLimit
	}

	ranked := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c == query {
			ranked = append(ranked, Candidate{Text: c, Score: 100})
			continue
		}
		if score := m.scorer.Score(query, c); score > InclusionFloor {
			ranked = append(ranked, Candidate{Text: c, Score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Text == query && ranked[j].Text != query
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}

// BestMatch reduces Rank to the single best candidate. The sentinel
// ("", 0) signals that no comparison was possible: empty query, empty
// candidate set, or nothing above the inclusion floor.
func (m *Matcher) BestMatch(query string, candidates []string) (string, int) {
	ranked := m.Rank(query, candidates, 1)
	if len(ranked) == 0 {
		return "", 0
	}
	return ranked[0].Text, ranked[0].Score
}
