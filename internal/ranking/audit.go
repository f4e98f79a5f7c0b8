package ranking

import (
	"errors"
	"fmt"
	"sort"
)

// Sample-size bands used by the upstream realism controls.
const (
	FullSampleGames  = 20
	ProvisionalGames = 10

	// SOSFloor is the minimum SOS the pipeline lets a normalized schedule
	// strength fall to.
	SOSFloor = 0.40
)

var ErrTeamNotFound = errors.New("team not found")

// SampleStatus classifies a team's game count.
func SampleStatus(gpUsed int) string {
	switch {
	case gpUsed >= FullSampleGames:
		return "FULL SAMPLE"
	case gpUsed >= ProvisionalGames:
		return "PROVISIONAL"
	default:
		return "LOW SAMPLE"
	}
}

// ProvisionalWeight is the stepwise floor the pipeline applies to thin
// samples: 75% under 10 games, 90% under 20, otherwise none.
func ProvisionalWeight(gpUsed int) float64 {
	switch {
	case gpUsed < ProvisionalGames:
		return 0.75
	case gpUsed < FullSampleGames:
		return 0.90
	default:
		return 1.0
	}
}

// ComponentContribution is one component's share of the blended powerscore.
type ComponentContribution struct {
	Name         string  `json:"name"`
	Norm         float64 `json:"norm"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Audit is the full per-team report the old copper audit printed: position,
// sample size, component breakdown, and cohort context.
type Audit struct {
	Team Team `json:"team"`

	CohortSize   int     `json:"cohort_size"`
	RankNational int     `json:"rank_national"`
	RankState    int     `json:"rank_state"` // derived, not the stored value
	Percentile   float64 `json:"percentile"`

	SampleStatus      string  `json:"sample_status"`
	ProvisionalWeight float64 `json:"provisional_weight"`

	Components      []ComponentContribution `json:"components"`
	BlendedScore    float64                 `json:"blended_score"`
	SOSFloorApplied float64                 `json:"sos_floor_applied"`

	CohortMin   float64 `json:"cohort_min"`
	CohortMax   float64 `json:"cohort_max"`
	GapToNext   float64 `json:"gap_to_next"`   // powerscore gap to the next team below in-state
	StateLeader bool    `json:"state_leader"`  // derived state rank 1
	StateCohort int     `json:"state_cohort"`  // teams sharing the state bucket
}

// AuditTeam builds the audit for teamID against its full cohort (one
// snapshot's records). State rank is re-derived from powerscore so the audit
// stays truthful even when the stored column carries the copy-of-national
// defect.
func AuditTeam(teamID string, cohort []Team, w Weights) (Audit, error) {
	var subject *Team
	for i := range cohort {
		if cohort[i].TeamID == teamID {
			subject = &cohort[i]
			break
		}
	}
	if subject == nil {
		return Audit{}, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}

	derived, err := DeriveStateRanks(cohort)
	if err != nil {
		return Audit{}, err
	}

	a := Audit{
		Team:              *subject,
		CohortSize:        len(cohort),
		RankNational:      subject.RankNational,
		RankState:         derived.ByTeam[teamID],
		SampleStatus:      SampleStatus(subject.GPUsed),
		ProvisionalWeight: ProvisionalWeight(subject.GPUsed),
		BlendedScore:      w.Blend(subject.SAONorm, subject.SADNorm, subject.SOSNorm),
		SOSFloorApplied:   max(subject.SOSNorm, SOSFloor),
		Components: []ComponentContribution{
			{Name: "SAO", Norm: subject.SAONorm, Weight: w.SAO, Contribution: w.SAO * subject.SAONorm},
			{Name: "SAD", Norm: subject.SADNorm, Weight: w.SAD, Contribution: w.SAD * subject.SADNorm},
			{Name: "SOS", Norm: subject.SOSNorm, Weight: w.SOS, Contribution: w.SOS * subject.SOSNorm},
		},
	}
	if a.RankNational > 0 && len(cohort) > 0 {
		a.Percentile = (1 - float64(a.RankNational)/float64(len(cohort))) * 100
	}

	a.CohortMin, a.CohortMax = cohortRange(cohort)

	group := derived.Groups[stateKey(subject.State)]
	a.StateCohort = len(group)
	a.StateLeader = a.RankState == 1
	if pos := a.RankState; pos > 0 && pos < len(group) {
		for _, rec := range cohort {
			if rec.TeamID == group[pos] { // next team below in derived order
				a.GapToNext = subject.PowerScore - rec.PowerScore
				break
			}
		}
	}
	return a, nil
}

func cohortRange(cohort []Team) (lo, hi float64) {
	if len(cohort) == 0 {
		return 0, 0
	}
	lo, hi = cohort[0].PowerScore, cohort[0].PowerScore
	for _, rec := range cohort[1:] {
		if rec.PowerScore < lo {
			lo = rec.PowerScore
		}
		if rec.PowerScore > hi {
			hi = rec.PowerScore
		}
	}
	return lo, hi
}

// TopN returns the first n teams of a cohort by national rank.
func TopN(cohort []Team, n int) []Team {
	out := append([]Team(nil), cohort...)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].RankNational < out[b].RankNational
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}
