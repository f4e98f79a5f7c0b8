package ranking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleStatus(t *testing.T) {
	cases := []struct {
		gp   int
		want string
	}{
		{0, "LOW SAMPLE"},
		{9, "LOW SAMPLE"},
		{10, "PROVISIONAL"},
		{19, "PROVISIONAL"},
		{20, "FULL SAMPLE"},
		{36, "FULL SAMPLE"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, SampleStatus(c.gp), "gp=%d", c.gp)
	}
}

func TestProvisionalWeight(t *testing.T) {
	require.Equal(t, 0.75, ProvisionalWeight(5))
	require.Equal(t, 0.90, ProvisionalWeight(15))
	require.Equal(t, 1.0, ProvisionalWeight(20))
	require.Equal(t, 1.0, ProvisionalWeight(40))
}

func auditCohort() []Team {
	return []Team{
		{TeamID: "az1", Name: "State 48 FC Copper", State: "AZ", PowerScore: 0.91,
			RankNational: 2, GPUsed: 24, SAONorm: 0.85, SADNorm: 0.80, SOSNorm: 0.95},
		{TeamID: "az2", Name: "Phoenix Rising Academy", State: "AZ", PowerScore: 0.85,
			RankNational: 5, GPUsed: 15, SAONorm: 0.70, SADNorm: 0.75, SOSNorm: 0.92},
		{TeamID: "az3", Name: "Tucson United", State: "AZ", PowerScore: 0.80,
			RankNational: 9, GPUsed: 8, SAONorm: 0.60, SADNorm: 0.65, SOSNorm: 0.90},
		{TeamID: "tx1", Name: "Dallas Texans", State: "TX", PowerScore: 0.95,
			RankNational: 1, GPUsed: 30, SAONorm: 0.95, SADNorm: 0.90, SOSNorm: 0.97},
	}
}

func TestAuditTeam(t *testing.T) {
	w := DefaultWeights()
	a, err := AuditTeam("az1", auditCohort(), w)
	require.NoError(t, err)

	require.Equal(t, "State 48 FC Copper", a.Team.Name)
	require.Equal(t, 4, a.CohortSize)
	require.Equal(t, 2, a.RankNational)
	require.Equal(t, 1, a.RankState)
	require.True(t, a.StateLeader)
	require.Equal(t, 3, a.StateCohort)
	require.InDelta(t, 50.0, a.Percentile, 1e-9) // rank 2 of 4

	require.Equal(t, "FULL SAMPLE", a.SampleStatus)
	require.Equal(t, 1.0, a.ProvisionalWeight)

	require.Len(t, a.Components, 3)
	require.Equal(t, "SOS", a.Components[2].Name)
	require.InDelta(t, 0.60*0.95, a.Components[2].Contribution, 1e-9)
	require.InDelta(t, w.Blend(0.85, 0.80, 0.95), a.BlendedScore, 1e-9)
	require.InDelta(t, 0.95, a.SOSFloorApplied, 1e-9)

	require.InDelta(t, 0.80, a.CohortMin, 1e-9)
	require.InDelta(t, 0.95, a.CohortMax, 1e-9)
	// Gap to the next AZ team (az2).
	require.InDelta(t, 0.06, a.GapToNext, 1e-9)
}

func TestAuditTeam_SOSFloor(t *testing.T) {
	cohort := []Team{
		{TeamID: "soft", State: "NM", PowerScore: 0.3, RankNational: 1,
			GPUsed: 12, SOSNorm: 0.22},
	}
	a, err := AuditTeam("soft", cohort, DefaultWeights())
	require.NoError(t, err)
	require.InDelta(t, SOSFloor, a.SOSFloorApplied, 1e-9)
	require.Equal(t, "PROVISIONAL", a.SampleStatus)
	require.Equal(t, 0.90, a.ProvisionalWeight)
	// Bottom of a one-team state: no next team, no gap.
	require.Zero(t, a.GapToNext)
}

func TestAuditTeam_NotFound(t *testing.T) {
	_, err := AuditTeam("ghost", auditCohort(), DefaultWeights())
	require.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTopN(t *testing.T) {
	cohort := auditCohort()
	top := TopN(cohort, 2)
	require.Len(t, top, 2)
	require.Equal(t, "tx1", top[0].TeamID)
	require.Equal(t, "az1", top[1].TeamID)

	// Does not reorder the caller's slice.
	require.Equal(t, "az1", cohort[0].TeamID)

	require.Len(t, TopN(cohort, 10), 4)
}
