package tender

import (
	"sort"

	"github.com/daeil-group/tender-cli/internal/model"
)

// SelectTier picks the amount tier that applies to the given amount.
//
// Tiers are sorted ascending by MinAmount first; the rule document is
// expected to hold disjoint tiers but unsorted input is tolerated. The
// effective amount defaults to the supplied amount, falling back to the first
// tier's MinAmount when non-positive. A tier matches when the effective
// amount lies in [MinAmount, MaxAmount), MaxAmount 0 meaning unbounded. If
// nothing matches the effective amount, the raw amount is retried; if that
// also misses, the last sorted tier wins. With at least one tier configured
// the result is therefore never nil.
func SelectTier(tiers []model.AmountTier, amount int64) *model.AmountTier {
	if len(tiers) == 0 {
		return nil
	}

	sorted := make([]model.AmountTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinAmount < sorted[j].MinAmount
	})

	effective := amount
	if effective <= 0 && sorted[0].MinAmount > 0 {
		effective = sorted[0].MinAmount
	}

	if t := matchTier(sorted, effective); t != nil {
		return t
	}
	if t := matchTier(sorted, amount); t != nil {
		return t
	}
	return &sorted[len(sorted)-1]
}

func matchTier(sorted []model.AmountTier, amount int64) *model.AmountTier {
	for i := range sorted {
		t := &sorted[i]
		if amount >= t.MinAmount && (t.MaxAmount == 0 || amount < t.MaxAmount) {
			return t
		}
	}
	return nil
}
