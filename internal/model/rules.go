package model

import "strings"

// PerformanceMode selects how a tier's performance requirement is expressed.
type PerformanceMode string

const (
	// PerformanceModeRatioBands scores the ratio of 5-year performance to the
	// basis amount against an ordered list of bands.
	PerformanceModeRatioBands PerformanceMode = "ratio-bands"
	// PerformanceModeFormula marks agency-specific scoring formulas the engine
	// cannot derive a ratio from.
	PerformanceModeFormula PerformanceMode = "formula"
)

// RatioBand is one step of a ratio-bands performance table: meeting MinRatio
// earns Score points.
type RatioBand struct {
	MinRatio float64 `json:"minRatio" yaml:"minRatio"`
	Score    float64 `json:"score" yaml:"score"`
}

// PerformanceSpec describes how performance (track record) is scored for a tier.
type PerformanceSpec struct {
	Mode       PerformanceMode `json:"mode" yaml:"mode"`
	Thresholds []RatioBand     `json:"thresholds,omitempty" yaml:"thresholds,omitempty"`
	MaxScore   float64         `json:"maxScore,omitempty" yaml:"maxScore,omitempty"`
}

// TierRules bundles the qualification rules attached to an amount tier.
type TierRules struct {
	Performance PerformanceSpec `json:"performance" yaml:"performance"`
}

// AmountTier is a half-open contract-value bracket [MinAmount, MaxAmount).
// MaxAmount == 0 means unbounded above.
type AmountTier struct {
	MinAmount int64     `json:"minAmount" yaml:"minAmount"`
	MaxAmount int64     `json:"maxAmount,omitempty" yaml:"maxAmount,omitempty"`
	Rules     TierRules `json:"rules" yaml:"rules"`
}

// OwnerAgency is one contracting authority and its ordered amount tiers.
// IDs are compared case-insensitively.
type OwnerAgency struct {
	ID    string       `json:"id" yaml:"id"`
	Name  string       `json:"name" yaml:"name"`
	Tiers []AmountTier `json:"tiers" yaml:"tiers"`
}

// RuleDoc is the full tier/rule configuration document.
type RuleDoc struct {
	Agencies []OwnerAgency `json:"agencies" yaml:"agencies"`
}

// Agency returns the agency with the given id (case-insensitive), or nil.
func (d *RuleDoc) Agency(id string) *OwnerAgency {
	for i := range d.Agencies {
		if strings.EqualFold(d.Agencies[i].ID, id) {
			return &d.Agencies[i]
		}
	}
	return nil
}

// BasisKind names which monetary figure a performance target is computed from.
type BasisKind string

const (
	BasisEstimatedAmount BasisKind = "estimatedAmount"
	BasisBaseAmount      BasisKind = "baseAmount"
	BasisNone            BasisKind = ""
)

// PerformanceOverride pins the performance ratio and basis for one
// (owner, range-label) pair, taking precedence over band derivation.
type PerformanceOverride struct {
	Ratio float64   `json:"ratio" yaml:"ratio"`
	Basis BasisKind `json:"basis" yaml:"basis"`
	Note  string    `json:"note,omitempty" yaml:"note,omitempty"`
}
