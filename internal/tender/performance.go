package tender

import (
	"math"
	"sort"

	"github.com/daeil-group/tender-cli/internal/model"
)

// OverrideKey addresses a per-(owner, range-label) performance override.
type OverrideKey struct {
	OwnerID    string
	RangeLabel string
}

// OverrideTable is the injected set of hard-pinned performance ratios. It
// takes precedence over band derivation.
type OverrideTable map[OverrideKey]model.PerformanceOverride

// DefaultOverrides returns the built-in override table: agency notices whose
// published ratio does not follow from their scoring bands.
func DefaultOverrides() OverrideTable {
	return OverrideTable{
		{OwnerID: OwnerKEC, RangeLabel: "100억 이상"}: {
			Ratio: 1.0,
			Basis: model.BasisBaseAmount,
			Note:  "고속도로 대형공사 만점실적 고시 기준",
		},
		{OwnerID: OwnerPPS, RangeLabel: "50억 미만"}: {
			Ratio: 0.7,
			Basis: model.BasisEstimatedAmount,
			Note:  "적격심사 세부기준 소규모 구간",
		},
	}
}

// DeriveRatio computes the performance ratio needed for a perfect score from
// a ratio-bands spec. The perfect score is the configured MaxScore, or the
// maximum score observed across bands when unset. Among bands meeting that
// score the HIGHEST MinRatio wins; this deliberately picks the most demanding
// ratio when several bands tie at the top. With no qualifying band the single
// highest-MinRatio band is used. Returns ok=false when no ratio is derivable
// (formula mode, empty bands).
func DeriveRatio(spec model.PerformanceSpec) (float64, bool) {
	if spec.Mode != model.PerformanceModeRatioBands || len(spec.Thresholds) == 0 {
		return 0, false
	}

	bands := make([]model.RatioBand, len(spec.Thresholds))
	copy(bands, spec.Thresholds)
	sort.SliceStable(bands, func(i, j int) bool {
		return bands[i].MinRatio < bands[j].MinRatio
	})

	perfect := spec.MaxScore
	if perfect <= 0 {
		for _, b := range bands {
			if b.Score > perfect {
				perfect = b.Score
			}
		}
	}

	best := -1
	for i, b := range bands {
		if b.Score >= perfect {
			best = i // ascending order: the last hit has the highest MinRatio
		}
	}
	if best < 0 {
		best = len(bands) - 1
	}
	return bands[best].MinRatio, true
}

// ResolveTarget computes the performance-target amount for a tier: the
// 5-year performance a company must show for a perfect score.
//
// An override, when present, supplies ratio and basis directly; otherwise the
// ratio comes from band derivation (1 when underivable). The basis prefers
// the override's choice, else base amount when positive, else estimated; a
// non-positive pick swaps to the other figure, and when both are
// non-positive the target is 0.
func ResolveTarget(overrides OverrideTable, ownerID, rangeLabel string, estimated, base int64, spec model.PerformanceSpec) model.PerformanceInfo {
	info := model.PerformanceInfo{Ratio: 1, Source: "none"}

	if ov, ok := overrides[OverrideKey{OwnerID: ownerID, RangeLabel: rangeLabel}]; ok {
		info.Ratio = ov.Ratio
		info.Basis = ov.Basis
		info.Source = "override"
		info.Note = ov.Note
	} else if ratio, ok := DeriveRatio(spec); ok {
		info.Ratio = ratio
		info.Source = "bands"
	}

	if info.Basis == model.BasisNone {
		if base > 0 {
			info.Basis = model.BasisBaseAmount
		} else {
			info.Basis = model.BasisEstimatedAmount
		}
	}

	info.BasisAmount = basisAmount(info.Basis, estimated, base)
	if info.BasisAmount <= 0 {
		// Swap to the other basis and relabel.
		swapped := model.BasisEstimatedAmount
		if info.Basis == model.BasisEstimatedAmount {
			swapped = model.BasisBaseAmount
		}
		if alt := basisAmount(swapped, estimated, base); alt > 0 {
			info.Basis = swapped
			info.BasisAmount = alt
		} else {
			info.Basis = model.BasisNone
			info.BasisAmount = 0
		}
	}

	if info.BasisAmount > 0 {
		info.Target = int64(math.Round(float64(info.BasisAmount) * info.Ratio))
	}
	return info
}

func basisAmount(basis model.BasisKind, estimated, base int64) int64 {
	if basis == model.BasisBaseAmount {
		return base
	}
	return estimated
}
