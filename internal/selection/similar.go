package selection

import (
	"sort"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/Another0Noob/stagelog/internal/normalize"
)

const maxSimilar = 5

// Similar lists existing titles that look like title without being the same
// show, closest first. Duplicates collapse to their first spelling.
func Similar(title string, existing []string) []string {
	pat := normalize.Key(title)
	if pat == "" || len(existing) == 0 {
		return nil
	}

	// Index existing titles by key so each show is ranked once.
	owners := make(map[string]string, len(existing))
	keys := make([]string, 0, len(existing))
	for _, e := range existing {
		k := normalize.Key(e)
		if k == "" || k == pat {
			continue
		}
		if _, seen := owners[k]; seen {
			continue
		}
		owners[k] = e
		keys = append(keys, k)
	}

	thr := distanceThreshold(utf8.RuneCountInString(pat))
	candidates := filterCandidates(keys, pat, thr)
	if len(candidates) == 0 {
		return nil
	}

	// Either side may be the shorter spelling, so rank both ways.
	ranks := fuzzy.RankFind(pat, candidates)
	for _, c := range candidates {
		if fuzzy.Match(c, pat) {
			ranks = append(ranks, fuzzy.Rank{Source: c, Target: c, Distance: fuzzy.LevenshteinDistance(c, pat)})
		}
	}
	sort.Stable(ranks)

	out := make([]string, 0, maxSimilar)
	picked := make(map[string]struct{})
	for _, r := range ranks {
		if r.Distance > thr {
			continue
		}
		if _, dup := picked[r.Target]; dup {
			continue
		}
		picked[r.Target] = struct{}{}
		out = append(out, owners[r.Target])
		if len(out) == maxSimilar {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// distanceThreshold calculates acceptable edit distance (~20% of length)
func distanceThreshold(n int) int {
	th := n / 5
	if th < 1 {
		return 1
	}
	if th > 3 {
		return 3
	}
	return th
}

// filterCandidates pre-filters candidates by rune length and first rune
func filterCandidates(all []string, pattern string, threshold int) []string {
	firstRune := func(s string) rune {
		r, _ := utf8.DecodeRuneInString(s)
		return r
	}

	fr := firstRune(pattern)
	patLen := utf8.RuneCountInString(pattern)

	candidates := make([]string, 0, len(all))
	for _, t := range all {
		if abs(utf8.RuneCountInString(t)-patLen) > threshold {
			continue
		}
		if firstRune(t) != fr {
			continue
		}
		candidates = append(candidates, t)
	}
	return candidates
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
