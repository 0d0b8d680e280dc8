package normalize

import (
	"regexp"
	"strings"
)

// reFormerly matches a "(구. old name)" annotation.
var reFormerly = regexp.MustCompile(`\(구\.\s*[^)]+\)`)

// Venue canonicalizes a venue name taken from the listing API.
//
//	"논산아트센터(구. 논산문화예술회관) (대공연장)" -> "논산아트센터 대공연장"
//	"드림씨어터 [부산] (드림씨어터 [부산] )"        -> "드림씨어터 부산"
//	"블루스퀘어 (신한카드홀 (구. 인터파크홀) )"      -> "블루스퀘어 신한카드홀"
func Venue(raw string) string {
	if raw == "" {
		return ""
	}

	s := collapseSpace(reFormerly.ReplaceAllString(raw, ""))
	s = mergeTrailingGroup(s)
	s = foldRegion(s)

	return collapseSpace(s)
}

// trailingGroup locates the parenthetical that closes at the last ')' in s.
// It returns the byte offsets of the matching '(' and that ')'.
func trailingGroup(s string) (open, end int, ok bool) {
	end = strings.LastIndexByte(s, ')')
	if end == -1 {
		return 0, 0, false
	}

	depth := 0
	for i := end - 1; i >= 0; i-- {
		switch s[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				return i, end, true
			}
			depth--
		}
	}
	return 0, 0, false
}

// mergeTrailingGroup collapses a trailing parenthetical that repeats the name
// before it, or promotes its content to plain suffix text when it differs.
func mergeTrailingGroup(s string) string {
	open, end, ok := trailingGroup(s)
	if !ok {
		return s
	}

	before := strings.TrimSpace(s[:open])
	inside := strings.TrimSpace(s[open+1 : end])
	after := strings.TrimSpace(s[end+1:])

	beforeBare := stripTags(before)
	insideBare := stripTags(inside)

	if beforeBare != insideBare {
		return joinNonEmpty(before, inside, after)
	}

	region, found := Region(inside)
	if !found {
		region, _ = Region(before)
	}
	return joinNonEmpty(beforeBare, region, after)
}

// foldRegion turns a leftover [Region] tag into a trailing plain token,
// unless the region already appears in the name.
func foldRegion(s string) string {
	region, ok := Region(s)
	if !ok {
		return s
	}

	bare := stripTags(s)
	if strings.Contains(bare, region) {
		return bare
	}
	return bare + " " + region
}

func joinNonEmpty(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
