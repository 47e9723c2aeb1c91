package search

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Scorer computes a similarity score between a free-text query and a
// candidate string on a 0-100 scale. Identical strings (after
// normalization) score exactly 100. Implementations must be pure so
// ranked output stays deterministic.
type Scorer interface {
	Score(query, candidate string) int
}

// WeightedRatio is the default Scorer. It combines a plain edit-distance
// ratio with best-window and token-based ratios, weighted by the relative
// length of the two strings. Profile and account names are hierarchical
// phrases ("Production Account - AdministratorAccess"), so a short query
// contained in a longer candidate must score far above plain edit
// distance.
type WeightedRatio struct{}

const (
	// Partial alignment only engages when one string is at least half
	// again as long as the other.
	partialLengthRatio = 1.5
	// Very short queries against very long candidates get a reduced
	// partial weight so that a single shared letter cannot dominate.
	longLengthRatio = 8.0

	unbaseScale      = 0.95
	partialScale     = 0.90
	longPartialScale = 0.60
)

// Score implements Scorer.
func (WeightedRatio) Score(query, candidate string) int {
	p1 := normalize(query)
	p2 := normalize(candidate)
	if p1 == "" || p2 == "" {
		return 0
	}

	r1 := []rune(p1)
	r2 := []rune(p2)

	base := ratio(r1, r2)

	longer, shorter := len(r1), len(r2)
	if shorter > longer {
		longer, shorter = shorter, longer
	}
	lenRatio := float64(longer) / float64(shorter)

	if lenRatio < partialLengthRatio {
		tsort := float64(tokenSortRatio(p1, p2)) * unbaseScale
		tset := float64(tokenSetRatio(p1, p2)) * unbaseScale
		return max(base, intr(tsort), intr(tset))
	}

	scale := partialScale
	if lenRatio > longLengthRatio {
		scale = longPartialScale
	}

	partial := float64(partialRatio(r1, r2)) * scale
	ptsort := float64(partialTokenSortRatio(p1, p2)) * unbaseScale * scale
	ptset := float64(partialTokenSetRatio(p1, p2)) * unbaseScale * scale

	return max(base, intr(partial), intr(ptsort), intr(ptset))
}

// normalize lowercases s and replaces every rune that is not a letter,
// digit or underscore with a space, so "dev-admin", "dev admin" and
// "Dev_Admin"-style names compare on their content rather than their
// separators.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

// ratio is the indel similarity of two rune sequences: the share of
// characters covered by their longest common subsequence, scaled to
// 0-100.
func ratio(a, b []rune) int {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return intr(200 * float64(lcs(a, b)) / float64(total))
}

func lcs(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}

	return prev[len(b)]
}

// partialRatio slides a window the length of the shorter string across
// the longer one and returns the best ratio of any alignment. A query
// contained verbatim in a candidate scores 100 here.
func partialRatio(a, b []rune) int {
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		return 0
	}

	best := 0
	for start := 0; start+len(shorter) <= len(longer); start++ {
		if r := ratio(shorter, longer[start:start+len(shorter)]); r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}

	return best
}

func tokenSortRatio(s1, s2 string) int {
	return ratio([]rune(sortTokens(s1)), []rune(sortTokens(s2)))
}

func partialTokenSortRatio(s1, s2 string) int {
	return partialRatio([]rune(sortTokens(s1)), []rune(sortTokens(s2)))
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSetRatio(s1, s2 string) int {
	return tokenSet(s1, s2, ratio)
}

func partialTokenSetRatio(s1, s2 string) int {
	return tokenSet(s1, s2, partialRatio)
}

// tokenSet compares the sorted token intersection of the two strings
// against each side's full token list. A query whose tokens all appear
// in the candidate scores 100 here regardless of word order or extra
// words.
func tokenSet(s1, s2 string, score func(a, b []rune) int) int {
	tokens1 := uniqueTokens(s1)
	tokens2 := uniqueTokens(s2)

	in1 := make(map[string]bool, len(tokens1))
	for _, t := range tokens1 {
		in1[t] = true
	}
	in2 := make(map[string]bool, len(tokens2))
	for _, t := range tokens2 {
		in2[t] = true
	}

	var sect, rest1, rest2 []string
	for _, t := range tokens1 {
		if in2[t] {
			sect = append(sect, t)
		} else {
			rest1 = append(rest1, t)
		}
	}
	for _, t := range tokens2 {
		if !in1[t] {
			rest2 = append(rest2, t)
		}
	}

	base := strings.Join(sect, " ")
	combined1 := strings.TrimSpace(base + " " + strings.Join(rest1, " "))
	combined2 := strings.TrimSpace(base + " " + strings.Join(rest2, " "))

	return max(
		score([]rune(base), []rune(combined1)),
		score([]rune(base), []rune(combined2)),
		score([]rune(combined1), []rune(combined2)),
	)
}

func uniqueTokens(s string) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, t := range strings.Fields(s) {
		if !seen[t] {
			seen[t] = true
			tokens = append(tokens, t)
		}
	}
	sort.Strings(tokens)
	return tokens
}

func intr(f float64) int {
	return int(math.Round(f))
}
