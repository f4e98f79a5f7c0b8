package ranking

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrMalformedInput marks records that cannot participate in a derivation,
// e.g. a team row with no powerscore. Wrap with context, test with errors.Is.
var ErrMalformedInput = errors.New("malformed input")

// UnknownState is the bucket key for teams whose state is missing. They are
// ranked among themselves, never against a real state group.
const UnknownState = "??"

// StateRanks is the result of DeriveStateRanks.
type StateRanks struct {
	// ByTeam maps team_id to its derived within-state rank (1-based, dense).
	ByTeam map[string]int `json:"by_team"`
	// Groups holds, per state bucket, team IDs in derived rank order.
	Groups map[string][]string `json:"groups"`
}

// DeriveStateRanks recomputes within-state ranks from powerscore, ignoring
// any stored rank_state. Teams are grouped by state (missing state goes to
// the UnknownState bucket), each group is ordered by powerscore descending,
// and dense 1-based positions are assigned. Ties keep their original input
// order (stable sort), so the result is deterministic for a given input.
func DeriveStateRanks(records []Team) (StateRanks, error) {
	out := StateRanks{
		ByTeam: make(map[string]int, len(records)),
		Groups: make(map[string][]string),
	}

	type member struct {
		idx  int // original input position, the tie-break
		team Team
	}
	groups := make(map[string][]member)
	for i, rec := range records {
		if math.IsNaN(rec.PowerScore) {
			return StateRanks{}, fmt.Errorf("%w: team %q has no powerscore", ErrMalformedInput, rec.TeamID)
		}
		key := stateKey(rec.State)
		groups[key] = append(groups[key], member{idx: i, team: rec})
	}

	for state, ms := range groups {
		sort.SliceStable(ms, func(a, b int) bool {
			return ms[a].team.PowerScore > ms[b].team.PowerScore
		})
		ids := make([]string, len(ms))
		for pos, m := range ms {
			ids[pos] = m.team.TeamID
			out.ByTeam[m.team.TeamID] = pos + 1
		}
		out.Groups[state] = ids
	}
	return out, nil
}

// Discrepancy is one team whose stored rank_state disagrees with the rank
// derived from powerscore ordering.
type Discrepancy struct {
	TeamID       string `json:"team_id"`
	Team         string `json:"team,omitempty"`
	State        string `json:"state"`
	StoredRank   int    `json:"stored_rank_state"`
	DerivedRank  int    `json:"derived_rank_state"`
	RankNational int    `json:"rank_national"`
}

// DefectReport is the result of DetectStateRankDefect.
type DefectReport struct {
	Discrepancies []Discrepancy `json:"discrepancies"`
	// GloballyBroken is set when at least one state group of two or more
	// teams has rank_state == rank_national for every member: the signature
	// of the state-ranking stage silently falling back to national ranks.
	GloballyBroken bool `json:"globally_broken"`
	// BrokenStates lists the states exhibiting that signature.
	BrokenStates []string `json:"broken_states,omitempty"`
}

// DetectStateRankDefect re-derives state ranks and reports every team whose
// stored rank_state differs, plus the all-copied-from-national pattern.
// Detected defects are reported, never corrected: fixing ranking data is the
// upstream pipeline's call.
func DetectStateRankDefect(records []Team) (DefectReport, error) {
	var rep DefectReport
	if len(records) == 0 {
		return rep, nil
	}

	derived, err := DeriveStateRanks(records)
	if err != nil {
		return DefectReport{}, err
	}

	byID := make(map[string]Team, len(records))
	for _, rec := range records {
		byID[rec.TeamID] = rec
	}

	// Walk groups in sorted order so the report is stable.
	states := make([]string, 0, len(derived.Groups))
	for s := range derived.Groups {
		states = append(states, s)
	}
	sort.Strings(states)

	for _, state := range states {
		ids := derived.Groups[state]
		allNational := len(ids) >= 2 && state != UnknownState
		for _, id := range ids {
			rec := byID[id]
			if rec.RankState != rec.RankNational {
				allNational = false
			}
			if want := derived.ByTeam[id]; rec.RankState != want {
				rep.Discrepancies = append(rep.Discrepancies, Discrepancy{
					TeamID:       id,
					Team:         rec.Name,
					State:        state,
					StoredRank:   rec.RankState,
					DerivedRank:  want,
					RankNational: rec.RankNational,
				})
			}
		}
		if allNational {
			rep.GloballyBroken = true
			rep.BrokenStates = append(rep.BrokenStates, state)
		}
	}
	return rep, nil
}

func stateKey(state string) string {
	if state == "" {
		return UnknownState
	}
	return state
}
