// Package consortium implements the auto-formation engine: roster filtering,
// leader/member grouping, and ownership-share computation. Like the resolver,
// everything here is pure and synchronous; candidate lookups happen in the
// caller before the engine runs.
package consortium

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var parentheticalRe = regexp.MustCompile(`\([^)]*\)`)

// NormalizeCompanyName reduces a company name to a comparable key: NFKC fold
// (so ㈜ becomes (주)), corporate-entity markers and parenthetical suffixes
// stripped, punctuation and whitespace dropped, casefolded. Roster presets
// and lookup-service records spell the same company differently; this is the
// join key between them.
func NormalizeCompanyName(name string) string {
	s := norm.NFKC.String(name)
	s = strings.ToLower(s)
	s = parentheticalRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "주식회사", "")
	s = strings.ReplaceAll(s, "유한회사", "")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SameCompany reports whether a preset name and a candidate display name
// refer to the same company after normalization.
func SameCompany(presetName, candidateName string) bool {
	a := NormalizeCompanyName(presetName)
	b := NormalizeCompanyName(candidateName)
	return a != "" && a == b
}
