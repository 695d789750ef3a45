package tender

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Korean amount-range labels arrive as free text from the tender notice, e.g.
// "50억 미만", "50억~100억", "100억 이상". ParseRangeHint turns one into a
// representative amount used only to pick a plausible tier when no monetary
// figure was supplied directly.
//
//   - "A~B"  → mean of A and B
//   - "A 미만" → 0.9 × A
//   - "A 이상" → A × 1.2 for LH, A × 1.1 for everyone else
//
// Unparsable labels degrade to 0.
func ParseRangeHint(ownerID, label string) int64 {
	s := strings.TrimSpace(label)
	if s == "" {
		return 0
	}

	if lo, hi, ok := splitRange(s); ok {
		a, b := parseKoreanAmount(lo), parseKoreanAmount(hi)
		if a > 0 && b > 0 {
			return (a + b) / 2
		}
		if a > 0 {
			return a
		}
		return b
	}

	switch {
	case strings.Contains(s, "미만"), strings.Contains(s, "이하"):
		ceiling := parseKoreanAmount(s)
		return int64(math.Round(float64(ceiling) * 0.9))
	case strings.Contains(s, "이상"), strings.Contains(s, "초과"):
		floor := parseKoreanAmount(s)
		factor := 1.1
		if ownerID == OwnerLH {
			factor = 1.2
		}
		return int64(math.Round(float64(floor) * factor))
	}

	return parseKoreanAmount(s)
}

var rangeSeps = []string{"~", "～", "∼", "―"}

func splitRange(s string) (lo, hi string, ok bool) {
	for _, sep := range rangeSeps {
		if i := strings.Index(s, sep); i >= 0 {
			return s[:i], s[i+len(sep):], true
		}
	}
	return "", "", false
}

var koreanAmountRe = regexp.MustCompile(`(?:(\d+(?:,\d{3})*(?:\.\d+)?)\s*조)?\s*(?:(\d+(?:,\d{3})*(?:\.\d+)?)\s*억)?\s*(?:(\d+(?:,\d{3})*(?:\.\d+)?)\s*만)?`)

// parseKoreanAmount extracts the first 조/억/만-denominated figure from text.
// A bare number with no unit suffix is taken as plain won.
func parseKoreanAmount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	for _, m := range koreanAmountRe.FindAllStringSubmatch(s, -1) {
		if m[1] == "" && m[2] == "" && m[3] == "" {
			continue
		}
		var total float64
		total += parseGrouped(m[1]) * 1_0000_0000_0000
		total += parseGrouped(m[2]) * 1_0000_0000
		total += parseGrouped(m[3]) * 1_0000
		return int64(math.Round(total))
	}

	// No Korean unit: fall back to the leading plain number, if any.
	digits := leadingNumber(s)
	if digits == "" {
		return 0
	}
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(f))
}

func parseGrouped(s string) float64 {
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func leadingNumber(s string) string {
	var b strings.Builder
	seen := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			seen = true
		case (r == ',' || r == '.') && seen:
			if r == '.' {
				b.WriteRune(r)
			}
		case seen:
			return b.String()
		}
	}
	return b.String()
}
