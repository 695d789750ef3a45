package tender

import (
	"fmt"
	"strings"

	"github.com/daeil-group/tender-cli/internal/krw"
	"github.com/daeil-group/tender-cli/internal/model"
)

// ReasonNoAgencyRules is the fail-fast reason when the owner cannot be
// normalized or the rule document has no agency block for it.
const ReasonNoAgencyRules = "해당 발주처 규칙을 찾을 수 없습니다."

// Resolver evaluates single-bid eligibility against an immutable rule
// document and override table. It holds no mutable state; evaluations are
// independent and idempotent.
type Resolver struct {
	rules     *model.RuleDoc
	overrides OverrideTable
}

// NewResolver builds a resolver over the given rule document. A nil override
// table means band derivation only.
func NewResolver(rules *model.RuleDoc, overrides OverrideTable) *Resolver {
	if overrides == nil {
		overrides = OverrideTable{}
	}
	return &Resolver{rules: rules, overrides: overrides}
}

// EvaluateSingleBid decides whether the company in the bid context qualifies
// to bid alone. Missing configuration surfaces as reasons, missing company
// data as indeterminate flags; the function is total and never fails.
func (r *Resolver) EvaluateSingleBid(bc model.BidContext) model.EligibilityResult {
	res := model.EligibilityResult{}

	ownerID := NormalizeOwner(bc.Owner)
	if ownerID == "" {
		res.Reasons = append(res.Reasons, ReasonNoAgencyRules)
		return res
	}
	agency := r.rules.Agency(ownerID)
	if agency == nil || len(agency.Tiers) == 0 {
		res.Reasons = append(res.Reasons, ReasonNoAgencyRules)
		return res
	}

	// First positive figure wins as the tier hint; the parsed range label is
	// the hint of last resort.
	hint := firstPositive(
		bc.EstimatedAmount,
		bc.BaseAmount,
		bc.EntryAmount,
		ParseRangeHint(ownerID, bc.RangeLabel),
	)

	tier := SelectTier(agency.Tiers, hint)
	res.TierAmount = tier.MinAmount
	res.Performance = ResolveTarget(r.overrides, ownerID, bc.RangeLabel,
		bc.EstimatedAmount, bc.BaseAmount, tier.Rules.Performance)

	res.Facts = ExtractMetrics(bc.Company)

	res.EntryOK = checkEntry(bc.EntryAmount, res.Facts.Sipyung)
	res.PerfOK = checkPerformance(res.Performance.Target, res.Facts.Perf5y)
	res.RegionOK = checkRegion(bc.DutyRegions, res.Facts.Region)

	if res.EntryOK == model.VerdictFail {
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"시평 미달: %s < %s",
			krw.Format(*res.Facts.Sipyung), krw.Format(bc.EntryAmount)))
	}
	if res.PerfOK == model.VerdictFail {
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"5년 실적 미달: %s < %s",
			krw.Format(*res.Facts.Perf5y), krw.Format(res.Performance.Target)))
	}
	if res.RegionOK == model.VerdictFail {
		res.Reasons = append(res.Reasons, fmt.Sprintf(
			"의무지역 미해당: %s ∉ [%s]",
			res.Facts.Region, strings.Join(bc.DutyRegions, ", ")))
	}

	res.OK = model.AllPass(res.EntryOK, res.PerfOK, res.RegionOK)
	return res
}

// checkEntry compares sipyung against the entry threshold. No threshold, or
// an unknown sipyung, is indeterminate.
func checkEntry(entryAmount int64, sipyung *int64) model.Verdict {
	if entryAmount <= 0 {
		return model.VerdictIndeterminate
	}
	if sipyung == nil {
		return model.VerdictIndeterminate
	}
	if *sipyung >= entryAmount {
		return model.VerdictPass
	}
	return model.VerdictFail
}

// checkPerformance compares 5-year performance against the target amount.
func checkPerformance(target int64, perf5y *int64) model.Verdict {
	if target <= 0 {
		return model.VerdictIndeterminate
	}
	if perf5y == nil {
		return model.VerdictIndeterminate
	}
	if *perf5y >= target {
		return model.VerdictPass
	}
	return model.VerdictFail
}

// checkRegion verifies duty-region membership. Region names from upstream
// lists drop the administrative suffix inconsistently ("경기" vs "경기도"),
// so containment either way counts as a match.
func checkRegion(dutyRegions []string, region string) model.Verdict {
	if len(dutyRegions) == 0 {
		return model.VerdictIndeterminate
	}
	region = strings.TrimSpace(region)
	if region == "" {
		return model.VerdictIndeterminate
	}
	for _, duty := range dutyRegions {
		duty = strings.TrimSpace(duty)
		if duty == "" {
			continue
		}
		if strings.EqualFold(duty, region) ||
			strings.Contains(duty, region) || strings.Contains(region, duty) {
			return model.VerdictPass
		}
	}
	return model.VerdictFail
}

func firstPositive(amounts ...int64) int64 {
	for _, a := range amounts {
		if a > 0 {
			return a
		}
	}
	return 0
}
