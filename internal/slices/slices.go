// Package slices writes per-state master index slices, the inputs the
// ranking pipeline consumes when it runs one state at a time.
package slices

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/dallasheidt14/rankwatch/internal/ranking"
)

// sliceHeader renames master columns to the pipeline's slice schema
// (team_id -> team_id_master, provider_team_id -> team_id_source).
var sliceHeader = []string{
	"team_id_master", "team_id_source", "team_name", "club_name",
	"state", "gender", "age_group", "provider",
}

// Result summarizes one slicing run.
type Result struct {
	Created map[string]int // state -> team count
	Skipped []string       // states with no matching teams
}

// WriteStateSlices filters the master index to one gender/age-group cohort
// and writes one CSV per state into outDir. Rows with an empty state are
// reported as skipped under "??" rather than silently dropped.
func WriteStateSlices(master []ranking.MasterTeam, gender, ageGroup, outDir string) (Result, error) {
	res := Result{Created: map[string]int{}}
	if len(master) == 0 {
		return Result{}, fmt.Errorf("master index is empty")
	}

	byState := map[string][]ranking.MasterTeam{}
	unknown := 0
	for _, m := range master {
		if m.Gender != gender || m.AgeGroup != ageGroup {
			continue
		}
		if m.State == "" {
			unknown++
			continue
		}
		byState[m.State] = append(byState[m.State], m)
	}
	if unknown > 0 {
		res.Skipped = append(res.Skipped, "??: "+strconv.Itoa(unknown)+" teams without state")
	}
	if len(byState) == 0 {
		return Result{}, fmt.Errorf("no %s %s teams in master index", gender, ageGroup)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create slices dir: %w", err)
	}

	states := make([]string, 0, len(byState))
	for s := range byState {
		states = append(states, s)
	}
	sort.Strings(states)

	for _, state := range states {
		teams := byState[state]
		name := fmt.Sprintf("%s_%s_%s_master.csv", state, gender, ageGroup)
		if err := writeSlice(filepath.Join(outDir, name), teams); err != nil {
			return Result{}, fmt.Errorf("slice %s: %w", state, err)
		}
		res.Created[state] = len(teams)
	}
	return res, nil
}

func writeSlice(path string, teams []ranking.MasterTeam) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(sliceHeader); err != nil {
		return err
	}
	for _, m := range teams {
		rec := []string{m.TeamID, m.ProviderTeamID, m.TeamName, m.ClubName,
			m.State, m.Gender, m.AgeGroup, m.Provider}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
