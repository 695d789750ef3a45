package tender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daeil-group/tender-cli/internal/model"
)

func lhRules() *model.RuleDoc {
	return &model.RuleDoc{
		Agencies: []model.OwnerAgency{
			{
				ID:   OwnerLH,
				Name: "한국토지주택공사",
				Tiers: []model.AmountTier{
					{
						MinAmount: 0,
						MaxAmount: 5_000_000_000,
						Rules: model.TierRules{
							Performance: model.PerformanceSpec{
								Mode: model.PerformanceModeRatioBands,
								Thresholds: []model.RatioBand{
									{MinRatio: 0.8, Score: 15},
									{MinRatio: 0, Score: 1},
								},
							},
						},
					},
					{
						MinAmount: 5_000_000_000,
						Rules: model.TierRules{
							Performance: model.PerformanceSpec{
								Mode: model.PerformanceModeRatioBands,
								Thresholds: []model.RatioBand{
									{MinRatio: 1.0, Score: 15},
									{MinRatio: 0, Score: 1},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestEvaluateSingleBidUnknownData(t *testing.T) {
	r := NewResolver(lhRules(), nil)

	// sipyung explicitly zero, perf5y absent, no entry requirement: nothing
	// can refute eligibility.
	res := r.EvaluateSingleBid(model.BidContext{
		Owner:      "LH공사",
		BaseAmount: 3_000_000_000,
		Company:    map[string]any{"시평": 0},
	})

	assert.Equal(t, model.VerdictIndeterminate, res.EntryOK)
	assert.Equal(t, int64(2_400_000_000), res.Performance.Target)
	assert.Equal(t, model.VerdictIndeterminate, res.PerfOK)
	assert.Equal(t, model.VerdictIndeterminate, res.RegionOK)
	assert.True(t, res.OK)
	assert.Empty(t, res.Reasons)
}

func TestEvaluateSingleBidEntryShortfall(t *testing.T) {
	r := NewResolver(lhRules(), nil)

	res := r.EvaluateSingleBid(model.BidContext{
		Owner:       "LH공사",
		BaseAmount:  3_000_000_000,
		EntryAmount: 1_000_000_000,
		Company:     map[string]any{"시평": 500_000_000},
	})

	assert.Equal(t, model.VerdictFail, res.EntryOK)
	assert.False(t, res.OK)
	require.Len(t, res.Reasons, 1)
	assert.Contains(t, res.Reasons[0], "시평 미달")
	assert.Contains(t, res.Reasons[0], "500,000,000 < 1,000,000,000")
}

func TestEvaluateSingleBidAllPass(t *testing.T) {
	r := NewResolver(lhRules(), nil)

	res := r.EvaluateSingleBid(model.BidContext{
		Owner:       "한국토지주택공사",
		BaseAmount:  3_000_000_000,
		EntryAmount: 1_000_000_000,
		DutyRegions: []string{"경기도"},
		Company: map[string]any{
			"시평":   "2,000,000,000",
			"5년실적": "2,500,000,000",
			"지역":   "경기",
		},
	})

	assert.Equal(t, model.VerdictPass, res.EntryOK)
	assert.Equal(t, model.VerdictPass, res.PerfOK)
	assert.Equal(t, model.VerdictPass, res.RegionOK)
	assert.True(t, res.OK)
	assert.Empty(t, res.Reasons)
}

func TestEvaluateSingleBidPerfShortfall(t *testing.T) {
	r := NewResolver(lhRules(), nil)

	res := r.EvaluateSingleBid(model.BidContext{
		Owner:      "LH",
		BaseAmount: 3_000_000_000,
		Company:    map[string]any{"5년실적": 1_000_000_000},
	})

	assert.Equal(t, model.VerdictFail, res.PerfOK)
	assert.False(t, res.OK)
	require.Len(t, res.Reasons, 1)
	assert.Contains(t, res.Reasons[0], "5년 실적 미달")
	assert.Contains(t, res.Reasons[0], "1,000,000,000 < 2,400,000,000")
}

func TestEvaluateSingleBidRegionMismatch(t *testing.T) {
	r := NewResolver(lhRules(), nil)

	res := r.EvaluateSingleBid(model.BidContext{
		Owner:       "LH",
		BaseAmount:  3_000_000_000,
		DutyRegions: []string{"전라남도"},
		Company:     map[string]any{"지역": "서울"},
	})

	assert.Equal(t, model.VerdictFail, res.RegionOK)
	assert.False(t, res.OK)
	require.Len(t, res.Reasons, 1)
	assert.Contains(t, res.Reasons[0], "의무지역 미해당")
}

func TestEvaluateSingleBidUnknownOwner(t *testing.T) {
	r := NewResolver(lhRules(), nil)

	for _, owner := range []string{"", "듣도보도못한공사", "조달청"} {
		res := r.EvaluateSingleBid(model.BidContext{Owner: owner})
		assert.False(t, res.OK, "owner %q", owner)
		require.Len(t, res.Reasons, 1)
		assert.Equal(t, ReasonNoAgencyRules, res.Reasons[0])
	}
}

func TestEvaluateSingleBidRangeHintSelectsTier(t *testing.T) {
	r := NewResolver(lhRules(), nil)

	// No explicit amounts: the parsed label (50억~100억 → 75억) must land in
	// the second tier, whose perfect-score ratio is 1.0. With no positive
	// basis the target stays 0 and the check is indeterminate.
	res := r.EvaluateSingleBid(model.BidContext{
		Owner:      "LH",
		RangeLabel: "50억~100억",
		Company:    map[string]any{},
	})

	assert.Equal(t, int64(5_000_000_000), res.TierAmount)
	assert.Equal(t, model.VerdictIndeterminate, res.PerfOK)
	assert.True(t, res.OK)
}

func TestEvaluateSingleBidIdempotent(t *testing.T) {
	r := NewResolver(lhRules(), nil)
	bc := model.BidContext{
		Owner:       "LH",
		BaseAmount:  3_000_000_000,
		EntryAmount: 2_000_000_000,
		DutyRegions: []string{"경기"},
		Company: map[string]any{
			"시평": 1_000_000_000,
			"지역": "서울",
		},
	}

	first := r.EvaluateSingleBid(bc)
	second := r.EvaluateSingleBid(bc)
	assert.Equal(t, first, second)
}

func TestVerdictMonotonicity(t *testing.T) {
	verdicts := []model.Verdict{model.VerdictPass, model.VerdictFail, model.VerdictIndeterminate}
	for _, a := range verdicts {
		for _, b := range verdicts {
			for _, c := range verdicts {
				want := a != model.VerdictFail && b != model.VerdictFail && c != model.VerdictFail
				assert.Equal(t, want, model.AllPass(a, b, c))
			}
		}
	}
}
