// Package tender implements the tier and eligibility resolver: owner
// normalization, amount-tier selection, performance-target derivation, and
// single-bid eligibility evaluation. Every function here is a pure, total
// computation over already-materialized inputs.
package tender

import "strings"

// Canonical owner ids. Free-text agency names map onto this closed set; the
// ids double as keys into the rule document.
const (
	OwnerLH     = "LH"     // 한국토지주택공사
	OwnerKEC    = "KEC"    // 한국도로공사
	OwnerKR     = "KR"     // 국가철도공단
	OwnerPPS    = "PPS"    // 조달청
	OwnerKWater = "KWATER" // 한국수자원공사
)

// ownerAliases maps trimmed, casefolded agency names to canonical ids.
// Alias data lives here, not in logic, so new spellings are one-line additions.
var ownerAliases = map[string]string{
	"lh":       OwnerLH,
	"lh공사":     OwnerLH,
	"엘에이치":     OwnerLH,
	"한국토지주택공사": OwnerLH,
	"토지주택공사":   OwnerLH,

	"kec":     OwnerKEC,
	"ex":      OwnerKEC,
	"도로공사":    OwnerKEC,
	"한국도로공사":  OwnerKEC,
	"고속도로공사":  OwnerKEC,

	"kr":     OwnerKR,
	"철도공단":   OwnerKR,
	"국가철도공단": OwnerKR,
	"한국철도시설공단": OwnerKR,

	"pps": OwnerPPS,
	"조달청": OwnerPPS,
	"나라장터": OwnerPPS,

	"kwater":  OwnerKWater,
	"k-water": OwnerKWater,
	"수자원공사":   OwnerKWater,
	"한국수자원공사": OwnerKWater,
}

// NormalizeOwner maps a free-text owner name to its canonical id. The empty
// string means the owner is not recognized; evaluation fails fast on that.
func NormalizeOwner(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return ""
	}
	if id, ok := ownerAliases[key]; ok {
		return id
	}
	// Canonical ids are accepted as-is regardless of case.
	upper := strings.ToUpper(key)
	switch upper {
	case OwnerLH, OwnerKEC, OwnerKR, OwnerPPS, OwnerKWater:
		return upper
	}
	return ""
}
