package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func azCohort() []Team {
	// Three-team state with national ranks that differ from the in-state
	// ordering positions, plus correct stored state ranks.
	return []Team{
		{TeamID: "az1", Name: "State 48 FC Copper", State: "AZ", PowerScore: 0.91, RankNational: 2, RankState: 1},
		{TeamID: "az2", Name: "Phoenix Rising Academy", State: "AZ", PowerScore: 0.85, RankNational: 5, RankState: 2},
		{TeamID: "az3", Name: "Tucson United", State: "AZ", PowerScore: 0.80, RankNational: 9, RankState: 3},
	}
}

func TestDeriveStateRanks_DensePerState(t *testing.T) {
	records := append(azCohort(),
		Team{TeamID: "tx1", Name: "Dallas Texans", State: "TX", PowerScore: 0.95, RankNational: 1, RankState: 1},
		Team{TeamID: "tx2", Name: "Houston Dynamo Youth", State: "TX", PowerScore: 0.70, RankNational: 20, RankState: 2},
	)

	got, err := DeriveStateRanks(records)
	require.NoError(t, err)

	// Every state group carries exactly the ranks 1..groupSize.
	for state, ids := range got.Groups {
		seen := map[int]bool{}
		for _, id := range ids {
			seen[got.ByTeam[id]] = true
		}
		for want := 1; want <= len(ids); want++ {
			require.Truef(t, seen[want], "state %s missing rank %d", state, want)
		}
		require.Len(t, seen, len(ids))
	}

	require.Equal(t, 1, got.ByTeam["az1"])
	require.Equal(t, 2, got.ByTeam["az2"])
	require.Equal(t, 3, got.ByTeam["az3"])
	require.Equal(t, 1, got.ByTeam["tx1"])
	require.Equal(t, 2, got.ByTeam["tx2"])
}

func TestDeriveStateRanks_Monotone(t *testing.T) {
	records := azCohort()
	got, err := DeriveStateRanks(records)
	require.NoError(t, err)

	for _, a := range records {
		for _, b := range records {
			if a.State != b.State || a.PowerScore <= b.PowerScore {
				continue
			}
			require.Lessf(t, got.ByTeam[a.TeamID], got.ByTeam[b.TeamID],
				"%s (%.2f) must outrank %s (%.2f)", a.TeamID, a.PowerScore, b.TeamID, b.PowerScore)
		}
	}
}

func TestDeriveStateRanks_Idempotent(t *testing.T) {
	records := azCohort()
	first, err := DeriveStateRanks(records)
	require.NoError(t, err)
	second, err := DeriveStateRanks(records)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDeriveStateRanks_TieKeepsInputOrder(t *testing.T) {
	records := []Team{
		{TeamID: "a", State: "CA", PowerScore: 0.5},
		{TeamID: "b", State: "CA", PowerScore: 0.5},
		{TeamID: "c", State: "CA", PowerScore: 0.5},
	}
	got, err := DeriveStateRanks(records)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, got.Groups["CA"])
	require.Equal(t, 1, got.ByTeam["a"])
	require.Equal(t, 2, got.ByTeam["b"])
	require.Equal(t, 3, got.ByTeam["c"])
}

func TestDeriveStateRanks_UnknownStateBucket(t *testing.T) {
	records := append(azCohort(),
		Team{TeamID: "x1", Name: "Wanderers", State: "", PowerScore: 0.99, RankNational: 1},
	)
	got, err := DeriveStateRanks(records)
	require.NoError(t, err)

	// The stateless team ranks first in its own bucket and never displaces
	// anyone in AZ.
	require.Equal(t, []string{"x1"}, got.Groups[UnknownState])
	require.Equal(t, 1, got.ByTeam["x1"])
	require.Equal(t, 1, got.ByTeam["az1"])
}

func TestDeriveStateRanks_Empty(t *testing.T) {
	got, err := DeriveStateRanks(nil)
	require.NoError(t, err)
	require.Empty(t, got.ByTeam)
	require.Empty(t, got.Groups)
}

func TestDeriveStateRanks_MissingPowerScore(t *testing.T) {
	records := []Team{{TeamID: "bad", State: "AZ", PowerScore: math.NaN()}}
	_, err := DeriveStateRanks(records)
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestDetectStateRankDefect_CopiedFromNational(t *testing.T) {
	// The observed production defect: stored state ranks are byte-for-byte
	// the national ranks.
	records := azCohort()
	for i := range records {
		records[i].RankState = records[i].RankNational
	}

	rep, err := DetectStateRankDefect(records)
	require.NoError(t, err)
	require.True(t, rep.GloballyBroken)
	require.Equal(t, []string{"AZ"}, rep.BrokenStates)
	require.Len(t, rep.Discrepancies, 3)

	wantDerived := map[string]int{"az1": 1, "az2": 2, "az3": 3}
	for _, d := range rep.Discrepancies {
		require.Equal(t, wantDerived[d.TeamID], d.DerivedRank)
		require.Equal(t, d.StoredRank, d.RankNational)
	}
}

func TestDetectStateRankDefect_CorrectRanks(t *testing.T) {
	rep, err := DetectStateRankDefect(azCohort())
	require.NoError(t, err)
	require.Empty(t, rep.Discrepancies)
	require.False(t, rep.GloballyBroken)
}

func TestDetectStateRankDefect_Empty(t *testing.T) {
	rep, err := DetectStateRankDefect(nil)
	require.NoError(t, err)
	require.Empty(t, rep.Discrepancies)
	require.False(t, rep.GloballyBroken)
}

func TestDetectStateRankDefect_SingleTeamStateNotBroken(t *testing.T) {
	// A one-team state where state rank happens to equal national rank is
	// not the defect signature.
	records := []Team{
		{TeamID: "nv1", State: "NV", PowerScore: 0.9, RankNational: 1, RankState: 1},
	}
	rep, err := DetectStateRankDefect(records)
	require.NoError(t, err)
	require.False(t, rep.GloballyBroken)
	require.Empty(t, rep.Discrepancies)
}

func TestDetectStateRankDefect_UnknownBucketExcludedFromSignature(t *testing.T) {
	records := []Team{
		{TeamID: "u1", State: "", PowerScore: 0.9, RankNational: 1, RankState: 1},
		{TeamID: "u2", State: "", PowerScore: 0.8, RankNational: 2, RankState: 2},
	}
	rep, err := DetectStateRankDefect(records)
	require.NoError(t, err)
	require.False(t, rep.GloballyBroken)
}
