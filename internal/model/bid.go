package model

// BidContext is the input to a single-bid eligibility evaluation. Company is
// a raw string-keyed record as returned by the candidate-lookup service; the
// resolver extracts metrics from it by field-name alias.
type BidContext struct {
	Owner           string         `json:"owner"`
	RangeLabel      string         `json:"rangeLabel,omitempty"`
	EstimatedAmount int64          `json:"estimatedAmount,omitempty"`
	BaseAmount      int64          `json:"baseAmount,omitempty"`
	EntryAmount     int64          `json:"entryAmount,omitempty"`
	DutyRegions     []string       `json:"dutyRegions,omitempty"`
	Company         map[string]any `json:"company,omitempty"`
}

// CompanyMetrics holds the figures extracted from a company record. Nil
// pointers mean the field was absent, which is distinct from an explicit zero.
type CompanyMetrics struct {
	Sipyung *int64 `json:"sipyung,omitempty"`
	Perf5y  *int64 `json:"perf5y,omitempty"`
	Region  string `json:"region,omitempty"`
}

// PerformanceInfo records how the performance target amount was derived.
type PerformanceInfo struct {
	Ratio       float64   `json:"ratio"`
	Basis       BasisKind `json:"basis"`
	BasisAmount int64     `json:"basisAmount"`
	Target      int64     `json:"target"`
	Source      string    `json:"source"` // "override", "bands", or "none"
	Note        string    `json:"note,omitempty"`
}

// EligibilityResult is the verdict of a single-bid evaluation. OK is true iff
// no individual check is an explicit failure.
type EligibilityResult struct {
	OK          bool            `json:"ok"`
	EntryOK     Verdict         `json:"entryOk"`
	PerfOK      Verdict         `json:"perfOk"`
	RegionOK    Verdict         `json:"regionOk"`
	Reasons     []string        `json:"reasons,omitempty"`
	Facts       CompanyMetrics  `json:"facts"`
	TierAmount  int64           `json:"tierAmount"`
	Performance PerformanceInfo `json:"performanceInfo"`
}
