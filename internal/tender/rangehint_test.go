package tender

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRangeHint(t *testing.T) {
	tests := []struct {
		name  string
		owner string
		label string
		want  int64
	}{
		{"range mean", OwnerPPS, "50억~100억", 7_500_000_000},
		{"range mean full-width tilde", OwnerPPS, "50억～100억", 7_500_000_000},
		{"under is 90 percent", OwnerPPS, "50억 미만", 4_500_000_000},
		{"under without space", OwnerPPS, "50억미만", 4_500_000_000},
		{"at-or-above scales 1.1", OwnerPPS, "100억 이상", 11_000_000_000},
		{"at-or-above scales 1.2 for LH", OwnerLH, "100억 이상", 12_000_000_000},
		{"plain amount", OwnerPPS, "30억", 3_000_000_000},
		{"compound jo-eok", OwnerPPS, "1조2000억 이상", 1_320_000_000_000},
		{"unparsable degrades to zero", OwnerPPS, "수의계약", 0},
		{"empty", OwnerPPS, "", 0},
		{"half-open range lower only", OwnerPPS, "50억~", 5_000_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRangeHint(tt.owner, tt.label))
		})
	}
}

func TestNormalizeOwner(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LH공사", OwnerLH},
		{"한국토지주택공사", OwnerLH},
		{"  lh  ", OwnerLH},
		{"한국도로공사", OwnerKEC},
		{"EX", OwnerKEC},
		{"국가철도공단", OwnerKR},
		{"조달청", OwnerPPS},
		{"k-water", OwnerKWater},
		{"kwater", OwnerKWater},
		{"pps", OwnerPPS},
		{"알수없는기관", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeOwner(tt.in), "input %q", tt.in)
	}
}
