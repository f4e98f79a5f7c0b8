package ranking

import (
	"sort"
)

// GameLog returns a team's games most-recent-first.
func GameLog(games []Game, teamID string) []Game {
	var out []Game
	for _, g := range games {
		if g.TeamID == teamID {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Date.After(out[b].Date)
	})
	return out
}

// OpponentLine aggregates one opponent across a team's schedule.
type OpponentLine struct {
	OpponentID string  `json:"opponent_id"`
	Opponent   string  `json:"opponent"`
	GamesVs    int     `json:"games_vs"`
	// Record fields cover the opponent's whole season, not just the games
	// against the subject team. That is what SOS actually weighs.
	OppGF float64 `json:"opp_gf"`
	OppGA float64 `json:"opp_ga"`
	OppGD float64 `json:"opp_gd"`
}

// OpponentBreakdown summarizes a team's schedule strength the way the SOS
// audits did: one line per distinct opponent, strongest (by season goal
// differential) first, plus the count of positive-GD opponents.
type OpponentBreakdown struct {
	Opponents       []OpponentLine `json:"opponents"`
	StrongOpponents int            `json:"strong_opponents"`
}

// BreakdownOpponents builds the per-opponent schedule summary for teamID.
// allGames must be the full cohort so opponents' season records resolve;
// opponents the cohort never saw play keep a zero record.
func BreakdownOpponents(allGames []Game, teamID string) OpponentBreakdown {
	seasonGF := map[string]float64{}
	seasonGA := map[string]float64{}
	for _, g := range allGames {
		seasonGF[g.TeamID] += g.GF
		seasonGA[g.TeamID] += g.GA
	}

	type agg struct {
		name  string
		games int
	}
	vs := map[string]*agg{}
	var order []string
	for _, g := range allGames {
		if g.TeamID != teamID || g.OpponentID == "" {
			continue
		}
		a, ok := vs[g.OpponentID]
		if !ok {
			a = &agg{name: g.Opponent}
			vs[g.OpponentID] = a
			order = append(order, g.OpponentID)
		}
		a.games++
	}

	var bd OpponentBreakdown
	for _, oppID := range order {
		a := vs[oppID]
		line := OpponentLine{
			OpponentID: oppID,
			Opponent:   a.name,
			GamesVs:    a.games,
			OppGF:      seasonGF[oppID],
			OppGA:      seasonGA[oppID],
		}
		line.OppGD = line.OppGF - line.OppGA
		if line.OppGD > 0 {
			bd.StrongOpponents++
		}
		bd.Opponents = append(bd.Opponents, line)
	}
	sort.SliceStable(bd.Opponents, func(a, b int) bool {
		return bd.Opponents[a].OppGD > bd.Opponents[b].OppGD
	})
	return bd
}

// Connectivity reports how much of the cohort a team can reach through at
// most two hops of the opponent graph. A low ratio means SOS for that team
// rests on a poorly connected island.
type Connectivity struct {
	Reachable2Hop int     `json:"reachable_2hop"`
	CohortTeams   int     `json:"cohort_teams"`
	Ratio         float64 `json:"ratio"`
}

// ConnectivityOf computes the 2-hop opponent-network reach for teamID.
func ConnectivityOf(allGames []Game, teamID string) Connectivity {
	adj := map[string][]string{}
	cohort := map[string]struct{}{}
	for _, g := range allGames {
		cohort[g.TeamID] = struct{}{}
		if g.OpponentID != "" {
			adj[g.TeamID] = append(adj[g.TeamID], g.OpponentID)
		}
	}

	reach := map[string]struct{}{teamID: {}}
	for _, opp := range adj[teamID] {
		reach[opp] = struct{}{}
		for _, oppOpp := range adj[opp] {
			reach[oppOpp] = struct{}{}
		}
	}

	c := Connectivity{Reachable2Hop: len(reach), CohortTeams: len(cohort)}
	if c.CohortTeams > 0 {
		c.Ratio = float64(c.Reachable2Hop) / float64(c.CohortTeams)
	}
	return c
}

// MissingOpponent is a scheduled opponent absent from the rankings table, so
// it contributes nothing to the subject's SOS.
type MissingOpponent struct {
	OpponentID string `json:"opponent_id"`
	Opponent   string `json:"opponent"`
	Games      int    `json:"games"`
}

// FindMissingOpponents lists opponents referenced by games that have no row
// in the ranked set. Unlinked opponents (empty opponent_id_master) are
// reported under the empty ID as one line.
func FindMissingOpponents(games []Game, ranked []Team) []MissingOpponent {
	known := make(map[string]struct{}, len(ranked))
	for _, t := range ranked {
		known[t.TeamID] = struct{}{}
	}

	counts := map[string]*MissingOpponent{}
	var order []string
	for _, g := range games {
		if _, ok := known[g.OpponentID]; ok && g.OpponentID != "" {
			continue
		}
		m, ok := counts[g.OpponentID]
		if !ok {
			m = &MissingOpponent{OpponentID: g.OpponentID, Opponent: g.Opponent}
			counts[g.OpponentID] = m
			order = append(order, g.OpponentID)
		}
		m.Games++
	}

	out := make([]MissingOpponent, 0, len(order))
	for _, id := range order {
		out = append(out, *counts[id])
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Games > out[b].Games
	})
	return out
}
