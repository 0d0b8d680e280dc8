package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	reTag    = regexp.MustCompile(`\[[^\]]+\]`)
	reRegion = regexp.MustCompile(`\[([^\]]+)\]`)
)

// collapseSpace trims s and folds every run of Unicode whitespace into a
// single ASCII space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripTags removes every [Region] tag. A tag and the whitespace around it
// collapse to a single space.
func stripTags(s string) string {
	return collapseSpace(reTag.ReplaceAllString(s, " "))
}

// HasTag reports whether s contains an opening bracket. A reference title is
// only trusted when it is bracket-free.
func HasTag(s string) bool {
	return strings.ContainsRune(s, '[')
}

// Region returns the content of the first [Region] tag in s.
func Region(s string) (string, bool) {
	m := reRegion.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Key returns the comparison key for a title: tags stripped, all whitespace
// removed, NFC composed and case folded.
func Key(s string) string {
	s = strings.Join(strings.Fields(stripTags(s)), "")
	if s == "" {
		return ""
	}
	return cases.Fold().String(norm.NFC.String(s))
}

// SameTitle reports whether a and b name the same show once tags, spacing
// and case are ignored.
func SameTitle(a, b string) bool {
	return Key(a) == Key(b)
}

// Title canonicalizes a performance title taken from the listing API.
//
// When reference is non-empty and bracket-free, and raw matches it ignoring
// tags, spacing and case, the reference's own spelling wins. Otherwise the
// title is derived from raw alone.
func Title(raw, reference string) string {
	if raw == "" {
		return ""
	}

	current := stripTags(raw)

	if reference != "" && !HasTag(reference) {
		if ref := stripTags(reference); ref != "" && SameTitle(ref, current) {
			return ref
		}
	}

	return current
}
