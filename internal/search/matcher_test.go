package search

import "testing"

// stubScorer returns canned scores per candidate, so ranking policy can
// be tested apart from the scoring algorithm.
type stubScorer struct {
	scores map[string]int
}

func (s *stubScorer) Score(_, candidate string) int {
	return s.scores[candidate]
}

func TestRankExactMatchWins(t *testing.T) {
	t.Parallel()

	// The decoy fuzzy-scores 100 and sits earlier in the candidate
	// order; the exact match must still rank first.
	matcher := NewMatcher(&stubScorer{scores: map[string]int{
		"decoy": 100,
		"dev":   100,
	}})

	ranked := matcher.Rank("dev", []string{"decoy", "dev"}, 5)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(ranked))
	}

	if ranked[0].Text != "dev" || ranked[0].Score != 100 {
		t.Fatalf("expected exact match first at 100, got %q at %d", ranked[0].Text, ranked[0].Score)
	}

	if text, score := matcher.BestMatch("dev", []string{"decoy", "dev"}); text != "dev" || score != 100 {
		t.Fatalf("expected best match (dev, 100), got (%q, %d)", text, score)
	}
}

func TestRankAppliesInclusionFloor(t *testing.T) {
	t.Parallel()

	matcher := NewMatcher(&stubScorer{scores: map[string]int{
		"at-floor":    30,
		"above-floor": 31,
		"zero":        0,
	}})

	ranked := matcher.Rank("query", []string{"at-floor", "above-floor", "zero"}, 10)
	if len(ranked) != 1 {
		t.Fatalf("expected only the candidate above the floor, got %d entries", len(ranked))
	}

	if ranked[0].Text != "above-floor" {
		t.Fatalf("unexpected candidate: %q", ranked[0].Text)
	}
}

func TestRankSortsDescendingWithStableTies(t *testing.T) {
	t.Parallel()

	matcher := NewMatcher(&stubScorer{scores: map[string]int{
		"first-60":  60,
		"ninety":    90,
		"second-60": 60,
		"eighty":    80,
	}})

	candidates := []string{"first-60", "ninety", "second-60", "eighty"}
	ranked := matcher.Rank("query", candidates, 10)

	want := []string{"ninety", "eighty", "first-60", "second-60"}
	if len(ranked) != len(want) {
		t.Fatalf("expected %d candidates, got %d", len(want), len(ranked))
	}

	for i, text := range want {
		if ranked[i].Text != text {
			t.Fatalf("position %d: expected %q, got %q", i, text, ranked[i].Text)
		}
	}

	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Fatalf("scores not sorted descending: %v", ranked)
		}
	}
}

func TestRankTruncatesToLimit(t *testing.T) {
	t.Parallel()

	scores := make(map[string]int)
	candidates := make([]string, 0, 12)
	for _, c := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		scores[c] = 90
		candidates = append(candidates, c)
	}
	matcher := NewMatcher(&stubScorer{scores: scores})

	if got := matcher.Rank("query", candidates, 5); len(got) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(got))
	}

	// limit <= 0 falls back to the default of 10.
	if got := matcher.Rank("query", candidates, 0); len(got) != DefaultLimit {
		t.Fatalf("expected %d entries for the default limit, got %d", DefaultLimit, len(got))
	}
}

func TestRankEmptyInputs(t *testing.T) {
	t.Parallel()

	matcher := NewMatcher(nil)

	cases := []struct {
		name       string
		query      string
		candidates []string
	}{
		{"empty query", "", []string{"Development Account"}},
		{"whitespace query", "   ", []string{"Development Account"}},
		{"no candidates", "dev", nil},
		{"empty candidate slice", "dev", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := matcher.Rank(tc.query, tc.candidates, 10); len(got) != 0 {
				t.Fatalf("expected empty result, got %v", got)
			}
		})
	}
}

func TestRankTrimsQuery(t *testing.T) {
	t.Parallel()

	matcher := NewMatcher(nil)

	ranked := matcher.Rank("  dev-admin  ", []string{"dev-admin"}, 5)
	if len(ranked) != 1 || ranked[0].Score != 100 {
		t.Fatalf("expected trimmed query to match exactly, got %v", ranked)
	}
}

func TestBestMatchSentinel(t *testing.T) {
	t.Parallel()

	matcher := NewMatcher(nil)

	cases := []struct {
		name       string
		query      string
		candidates []string
	}{
		{"empty query", "", []string{"Development Account"}},
		{"whitespace query", " \t ", []string{"Development Account"}},
		{"no candidates", "dev", nil},
		{"nothing above floor", "xyz123", []string{"Development Account", "Production Account"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if text, score := matcher.BestMatch(tc.query, tc.candidates); text != "" || score != 0 {
				t.Fatalf("expected sentinel (\"\", 0), got (%q, %d)", text, score)
			}
		})
	}
}

func TestBestMatchRealScorer(t *testing.T) {
	t.Parallel()

	matcher := NewMatcher(nil)
	accounts := []string{"Development Account", "Production Account"}

	text, score := matcher.BestMatch("Dev", accounts)
	if text != "Development Account" {
		t.Fatalf("expected Development Account, got %q", text)
	}
	if score <= 70 {
		t.Fatalf("expected score above the accept threshold, got %d", score)
	}
}
