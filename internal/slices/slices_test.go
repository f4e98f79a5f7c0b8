package slices

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dallasheidt14/rankwatch/internal/ranking"
)

func sampleMaster() []ranking.MasterTeam {
	return []ranking.MasterTeam{
		{TeamID: "az1", ProviderTeamID: "p-100", TeamName: "State 48 FC Copper",
			ClubName: "State 48 FC", State: "AZ", Gender: "M", AgeGroup: "U11", Provider: "gotsport"},
		{TeamID: "az2", ProviderTeamID: "p-101", TeamName: "Phoenix Rising Academy",
			State: "AZ", Gender: "M", AgeGroup: "U11", Provider: "gotsport"},
		{TeamID: "tx1", ProviderTeamID: "p-200", TeamName: "Dallas Texans",
			State: "TX", Gender: "M", AgeGroup: "U11", Provider: "gotsport"},
		{TeamID: "ca1", TeamName: "Surf Select", State: "CA", Gender: "F", AgeGroup: "U11"},  // wrong gender
		{TeamID: "nm1", TeamName: "Rio Rapids", State: "NM", Gender: "M", AgeGroup: "U12"},   // wrong age
		{TeamID: "xx1", TeamName: "Wanderers", State: "", Gender: "M", AgeGroup: "U11"},      // no state
	}
}

func TestWriteStateSlices(t *testing.T) {
	out := t.TempDir()
	res, err := WriteStateSlices(sampleMaster(), "M", "U11", out)
	require.NoError(t, err)

	require.Equal(t, map[string]int{"AZ": 2, "TX": 1}, res.Created)
	require.Len(t, res.Skipped, 1)
	require.Contains(t, res.Skipped[0], "??")
	require.Contains(t, res.Skipped[0], "1 teams without state")

	f, err := os.Open(filepath.Join(out, "AZ_M_U11_master.csv"))
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Equal(t, sliceHeader, recs[0])
	require.Len(t, recs, 3)
	require.Equal(t, "az1", recs[1][0])   // team_id_master
	require.Equal(t, "p-100", recs[1][1]) // team_id_source
	require.Equal(t, "State 48 FC Copper", recs[1][2])

	// Only matching states get files.
	_, err = os.Stat(filepath.Join(out, "CA_M_U11_master.csv"))
	require.True(t, os.IsNotExist(err))
}

func TestWriteStateSlices_EmptyMaster(t *testing.T) {
	_, err := WriteStateSlices(nil, "M", "U11", t.TempDir())
	require.Error(t, err)
}

func TestWriteStateSlices_NoCohortMatch(t *testing.T) {
	_, err := WriteStateSlices(sampleMaster(), "F", "U19", t.TempDir())
	require.Error(t, err)
}
