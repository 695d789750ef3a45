package consortium

import (
	"math"
	"strings"

	"github.com/daeil-group/tender-cli/internal/model"
	"github.com/daeil-group/tender-cli/internal/tender"
)

// Context is the bidding situation a roster slice is filtered against.
type Context struct {
	// Owner is the contracting agency, raw or canonical.
	Owner string
	// EstimatedAmount is the tender's estimated contract value.
	EstimatedAmount int64
	// DutyShareRate is the fraction of the estimate allocated to duty-region
	// members; zero means the tender carries no duty-share allocation.
	DutyShareRate float64
	// SingleBidEligible marks a scenario where some company alone could
	// satisfy the tender, which disqualifies partnership-only presets.
	SingleBidEligible bool
}

// ShareBudget is the duty-share slice of the estimate.
func (c Context) ShareBudget() int64 {
	return int64(math.Round(float64(c.EstimatedAmount) * c.DutyShareRate))
}

// Entry pairs a roster preset with what the caller resolved about it: the
// live candidate record (when one matched) and whether that candidate alone
// is single-bid eligible for this tender.
type Entry struct {
	Preset             model.CompanyPreset
	Candidate          map[string]any
	CandidateSingleBid bool
}

// EntryAllowed decides whether a roster entry may participate in the current
// bidding context. Every configured constraint must hold; absent constraints
// never exclude.
func EntryAllowed(e Entry, ctx Context) bool {
	p := e.Preset

	if len(p.AllowedOwners) > 0 && !ownerListed(p.AllowedOwners, ctx.Owner) {
		return false
	}
	if ownerListed(p.DisallowedOwners, ctx.Owner) {
		return false
	}

	if p.MinEstimatedAmount > 0 && ctx.EstimatedAmount < p.MinEstimatedAmount {
		return false
	}
	if p.MaxEstimatedAmount > 0 && ctx.EstimatedAmount > p.MaxEstimatedAmount {
		return false
	}

	if p.RequireDutyShare && ctx.DutyShareRate <= 0 {
		return false
	}
	if p.MinShareAmount > 0 && ctx.ShareBudget() < p.MinShareAmount {
		return false
	}

	// A partnership-only company has no slot when somebody can bid alone.
	if !p.SoloAllowed() && ctx.SingleBidEligible {
		return false
	}

	// A candidate that could bid alone stays out of consortia unless the
	// preset opts it in explicitly.
	if e.CandidateSingleBid && !p.AllowSingleBid {
		return false
	}

	return true
}

// Filter applies EntryAllowed to a roster slice, preserving order.
func Filter(entries []Entry, ctx Context) []Entry {
	var allowed []Entry
	for _, e := range entries {
		if EntryAllowed(e, ctx) {
			allowed = append(allowed, e)
		}
	}
	return allowed
}

// ownerListed checks an owner allow/deny list. List items may be canonical
// ids or free-text agency names; both sides normalize before comparing.
func ownerListed(list []string, owner string) bool {
	if len(list) == 0 {
		return false
	}
	canonical := tender.NormalizeOwner(owner)
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(owner)) {
			return true
		}
		if canonical != "" && tender.NormalizeOwner(item) == canonical {
			return true
		}
	}
	return false
}
