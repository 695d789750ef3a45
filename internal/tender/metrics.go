package tender

import (
	"sort"
	"strings"

	"github.com/daeil-group/tender-cli/internal/krw"
	"github.com/daeil-group/tender-cli/internal/model"
)

// Candidate records arrive from the lookup service with heterogeneous field
// names depending on which upstream list the company came from. Extraction
// tries known aliases in order, then falls back to a keyword scan over every
// field. The alias and keyword sets are data, not code.
var (
	sipyungAliases = []string{
		"sipyung", "시평", "시평액", "시공능력평가액", "시공능력액", "시공능력", "bid_capacity", "bidCapacity",
	}
	sipyungKeywords = []string{"시평", "시공능력"}

	perf5yAliases = []string{
		"perf5y", "5년실적", "최근5년실적", "실적5년", "5y_perf", "fiveYearPerformance", "performance5y",
	}
	perf5yKeywords = []string{"실적"}

	regionAliases = []string{
		"region", "지역", "소재지", "소재지역", "주소지역", "location",
	}
	regionKeywords = []string{"지역", "소재"}
)

// ExtractMetrics pulls sipyung, 5-year performance, and region out of a raw
// company record. A nil pointer in the result means the field was not present
// at all; an explicit zero stays zero. Extraction never fails.
func ExtractMetrics(company map[string]any) model.CompanyMetrics {
	var m model.CompanyMetrics

	if v, ok := lookupField(company, sipyungAliases, sipyungKeywords); ok {
		amt := krw.Amount(v)
		m.Sipyung = &amt
	}
	if v, ok := lookupField(company, perf5yAliases, perf5yKeywords); ok {
		amt := krw.Amount(v)
		m.Perf5y = &amt
	}
	if v, ok := lookupField(company, regionAliases, regionKeywords); ok {
		if s, isStr := v.(string); isStr {
			m.Region = strings.TrimSpace(s)
		}
	}
	return m
}

// lookupField tries exact alias matches first (case-insensitive), then any
// field whose name contains one of the keywords.
func lookupField(record map[string]any, aliases, keywords []string) (any, bool) {
	if len(record) == 0 {
		return nil, false
	}

	for _, alias := range aliases {
		for key, v := range record {
			if strings.EqualFold(strings.TrimSpace(key), alias) {
				return v, true
			}
		}
	}

	// Sorted keys keep the keyword fallback deterministic when several
	// fields contain the same keyword.
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, kw := range keywords {
		for _, key := range keys {
			if strings.Contains(strings.ToLower(key), strings.ToLower(kw)) {
				return record[key], true
			}
		}
	}
	return nil, false
}
