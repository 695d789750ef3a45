package consortium

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daeil-group/tender-cli/internal/model"
)

func boolPtr(v bool) *bool { return &v }

func TestEntryAllowed(t *testing.T) {
	baseCtx := Context{
		Owner:           "LH공사",
		EstimatedAmount: 8_000_000_000,
		DutyShareRate:   0.2,
	}

	tests := []struct {
		name   string
		preset model.CompanyPreset
		ctx    Context
		want   bool
	}{
		{"no constraints", model.CompanyPreset{Name: "가"}, baseCtx, true},
		{
			"owner in allowed list",
			model.CompanyPreset{AllowedOwners: []string{"LH"}},
			baseCtx, true,
		},
		{
			"owner missing from allowed list",
			model.CompanyPreset{AllowedOwners: []string{"조달청"}},
			baseCtx, false,
		},
		{
			"owner in disallowed list by alias",
			model.CompanyPreset{DisallowedOwners: []string{"한국토지주택공사"}},
			baseCtx, false,
		},
		{
			"estimate below minimum",
			model.CompanyPreset{MinEstimatedAmount: 10_000_000_000},
			baseCtx, false,
		},
		{
			"estimate above maximum",
			model.CompanyPreset{MaxEstimatedAmount: 5_000_000_000},
			baseCtx, false,
		},
		{
			"estimate inside window",
			model.CompanyPreset{MinEstimatedAmount: 5_000_000_000, MaxEstimatedAmount: 10_000_000_000},
			baseCtx, true,
		},
		{
			"duty share required but absent",
			model.CompanyPreset{RequireDutyShare: true},
			Context{Owner: "LH", EstimatedAmount: 8_000_000_000},
			false,
		},
		{
			"duty share required and present",
			model.CompanyPreset{RequireDutyShare: true},
			baseCtx, true,
		},
		{
			"share budget below minimum",
			model.CompanyPreset{MinShareAmount: 2_000_000_000},
			baseCtx, false, // 8B × 0.2 = 1.6B
		},
		{
			"share budget meets minimum",
			model.CompanyPreset{MinShareAmount: 1_500_000_000},
			baseCtx, true,
		},
		{
			"partnership-only excluded when scenario is single-bid eligible",
			model.CompanyPreset{AllowSolo: boolPtr(false)},
			Context{Owner: "LH", EstimatedAmount: 8_000_000_000, DutyShareRate: 0.2, SingleBidEligible: true},
			false,
		},
		{
			"partnership-only kept otherwise",
			model.CompanyPreset{AllowSolo: boolPtr(false)},
			baseCtx, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EntryAllowed(Entry{Preset: tt.preset}, tt.ctx)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntryAllowedSingleBidCandidate(t *testing.T) {
	ctx := Context{Owner: "LH", EstimatedAmount: 8_000_000_000}

	// A candidate that alone qualifies stays out of consortia by default.
	e := Entry{Preset: model.CompanyPreset{Name: "가"}, CandidateSingleBid: true}
	assert.False(t, EntryAllowed(e, ctx))

	// Unless the preset opts in explicitly.
	e.Preset.AllowSingleBid = true
	assert.True(t, EntryAllowed(e, ctx))
}

func TestFilterKeepsOrderAndDropsAll(t *testing.T) {
	ctx := Context{Owner: "LH", EstimatedAmount: 1_000_000_000}

	entries := []Entry{
		{Preset: model.CompanyPreset{Name: "가"}},
		{Preset: model.CompanyPreset{Name: "나", MinEstimatedAmount: 5_000_000_000}},
		{Preset: model.CompanyPreset{Name: "다"}},
	}
	allowed := Filter(entries, ctx)
	assert.Len(t, allowed, 2)
	assert.Equal(t, "가", allowed[0].Preset.Name)
	assert.Equal(t, "다", allowed[1].Preset.Name)

	// Filtering everything away yields an empty set, not an error.
	strict := Context{Owner: "조달청", EstimatedAmount: 0}
	entries = []Entry{{Preset: model.CompanyPreset{MinEstimatedAmount: 1}}}
	assert.Empty(t, Filter(entries, strict))
}

func TestNormalizeCompanyName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"주식회사 대일건설", "대일건설"},
		{"㈜대일건설", "대일건설"},
		{"(주)대일건설", "대일건설"},
		{"대일건설(주)", "대일건설"},
		{"대일 건설", "대일건설"},
		{"Daeil E&C Co.", "daeilecco"},
		{"대일건설(경기지사)", "대일건설"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCompanyName(tt.in), "input %q", tt.in)
	}
}

func TestSameCompany(t *testing.T) {
	assert.True(t, SameCompany("㈜대일건설", "주식회사 대일건설"))
	assert.True(t, SameCompany("(주) 대일건설", "대일건설"))
	assert.False(t, SameCompany("대일건설", "대일산업"))
	assert.False(t, SameCompany("", ""))
}
