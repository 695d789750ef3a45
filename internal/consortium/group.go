package consortium

import (
	"github.com/daeil-group/tender-cli/internal/model"
)

// ResolveFunc matches a preset name to a live candidate record. It returns
// the record and whether a match was found; unmatched presets render
// name-only with no live metrics.
type ResolveFunc func(name string) (map[string]any, bool)

// BuildGroups partitions the filtered roster into teams of at most
// maxTeamSize, leaders first.
//
// Presets with an explicit leader role are queued ahead of the flexible rest;
// a separate pool, initialized to the flexible entries, supplies members in
// FIFO order. Each round pops the queue front as the next leader (a flexible
// entry that was already placed as a member is skipped), removes it from the
// pool, and shifts up to maxTeamSize-1 members off the pool front. When a
// borrowed flexible leader drains the queue while the pool still holds
// entries, the leftovers are re-enqueued so they can lead ad-hoc teams.
//
// Every filtered entry lands in exactly one team; an empty roster yields an
// empty team list.
func BuildGroups(entries []model.CompanyPreset, maxTeamSize int, resolve ResolveFunc) []model.Team {
	if len(entries) == 0 {
		return nil
	}
	if maxTeamSize < 1 {
		maxTeamSize = 1
	}

	var leaders, flexible []model.CompanyPreset
	for _, p := range entries {
		if p.RequiredRole == model.RoleLeader {
			leaders = append(leaders, p)
		} else {
			flexible = append(flexible, p)
		}
	}

	queue := append(append([]model.CompanyPreset{}, leaders...), flexible...)
	pool := append([]model.CompanyPreset{}, flexible...)

	var teams []model.Team
	for len(queue) > 0 {
		lead := queue[0]
		queue = queue[1:]

		if lead.RequiredRole != model.RoleLeader {
			// A flexible entry that is no longer in the pool was already
			// consumed as a member.
			idx := indexByName(pool, lead.Name)
			if idx < 0 {
				continue
			}
			pool = append(pool[:idx], pool[idx+1:]...)
		}

		var members []model.CompanyPreset
		for len(members) < maxTeamSize-1 && len(pool) > 0 {
			members = append(members, pool[0])
			pool = pool[1:]
		}

		teams = append(teams, makeTeam(lead, members, resolve))

		if lead.RequiredRole == model.RoleAny && len(queue) == 0 && len(pool) > 0 {
			queue = append(queue, pool...)
		}
	}

	return teams
}

func indexByName(presets []model.CompanyPreset, name string) int {
	for i := range presets {
		if presets[i].Name == name {
			return i
		}
	}
	return -1
}

func makeTeam(lead model.CompanyPreset, members []model.CompanyPreset, resolve ResolveFunc) model.Team {
	team := model.Team{
		Leader:  makeSlot(lead, resolve),
		Members: make([]model.TeamSlot, 0, len(members)),
	}
	for _, m := range members {
		team.Members = append(team.Members, makeSlot(m, resolve))
	}
	team.Shares = ComputeShares(lead, len(members))
	return team
}

func makeSlot(p model.CompanyPreset, resolve ResolveFunc) model.TeamSlot {
	slot := model.TeamSlot{Name: p.Name, Preset: p}
	if resolve != nil {
		if record, ok := resolve(p.Name); ok {
			slot.Candidate = record
			slot.Resolved = true
		}
	}
	return slot
}

// ComputeShares returns the ordered percentage breakdown for a team: the
// leader's share first, then one equal integer share per member. The leader
// takes its preset DefaultShare when set, else 51 on a multi-company team and
// 100 solo, clamped to [0,100]. The remainder splits by integer floor
// division, so the column sum never exceeds 100.
func ComputeShares(lead model.CompanyPreset, memberCount int) []int {
	leaderShare := lead.DefaultShare
	if leaderShare == 0 {
		if memberCount > 0 {
			leaderShare = 51
		} else {
			leaderShare = 100
		}
	}
	if leaderShare < 0 {
		leaderShare = 0
	}
	if leaderShare > 100 {
		leaderShare = 100
	}

	shares := []int{leaderShare}
	if memberCount > 0 {
		each := (100 - leaderShare) / memberCount
		for i := 0; i < memberCount; i++ {
			shares = append(shares, each)
		}
	}
	return shares
}
