package snapshot

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dallasheidt14/rankwatch/internal/ranking"
)

// SchemaError reports required columns missing from an export header.
// It is fatal to the load; there is no partial recovery.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

type header map[string]int

func readHeader(r *csv.Reader, required []string) (header, error) {
	cols, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := make(header, len(cols))
	for i, c := range cols {
		h[strings.TrimSpace(c)] = i
	}
	var missing []string
	for _, c := range required {
		if _, ok := h[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &SchemaError{Missing: missing}
	}
	return h, nil
}

func (h header) str(rec []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (h header) float(rec []string, col string) (float64, bool, error) {
	s := h.str(rec, col)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("column %s: %w", col, err)
	}
	return v, true, nil
}

func (h header) int(rec []string, col string) (int, error) {
	s := h.str(rec, col)
	if s == "" {
		return 0, nil
	}
	// rank columns sometimes arrive as "36.0"
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, err)
	}
	return int(v), nil
}

// LoadRankings reads a rankings export. Required columns mirror the minimum
// schema the diagnostics need; everything else is optional and zero when
// absent. A row without a powerscore is malformed input, not a zero score.
func LoadRankings(r io.Reader) ([]ranking.Team, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	h, err := readHeader(cr, []string{"team_id", "team", "state", "powerscore", "rank_national", "rank_state"})
	if err != nil {
		return nil, err
	}

	var out []ranking.Team
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ranking.ErrMalformedInput, line, err)
		}

		t := ranking.Team{
			TeamID:   h.str(rec, "team_id"),
			Name:     h.str(rec, "team"),
			Club:     h.str(rec, "club"),
			State:    h.str(rec, "state"),
			Gender:   h.str(rec, "gender"),
			AgeGroup: h.str(rec, "age_group"),
		}

		ps, ok, err := h.float(rec, "powerscore")
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ranking.ErrMalformedInput, line, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: line %d: team %q has no powerscore", ranking.ErrMalformedInput, line, t.TeamID)
		}
		t.PowerScore = ps

		for col, dst := range map[string]*float64{
			"powerscore_adj": &t.PowerScoreAdj,
			"gp_mult":        &t.GPMult,
			"sao_raw":        &t.SAORaw,
			"sao_shrunk":     &t.SAOShrunk,
			"sao_norm":       &t.SAONorm,
			"sad_raw":        &t.SADRaw,
			"sad_shrunk":     &t.SADShrunk,
			"sad_norm":       &t.SADNorm,
			"sos_component":  &t.SOSComponent,
			"sos_norm":       &t.SOSNorm,
		} {
			v, _, err := h.float(rec, col)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ranking.ErrMalformedInput, line, err)
			}
			*dst = v
		}

		for col, dst := range map[string]*int{
			"rank_national": &t.RankNational,
			"rank_state":    &t.RankState,
			"gp_used":       &t.GPUsed,
		} {
			v, err := h.int(rec, col)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ranking.ErrMalformedInput, line, err)
			}
			*dst = v
		}
		out = append(out, t)
	}
	return out, nil
}

// gameDateFormats covers the export variants seen in the wild.
var gameDateFormats = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

// LoadGames reads a normalized games export.
func LoadGames(r io.Reader) ([]ranking.Game, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	h, err := readHeader(cr, []string{"team_id_master", "opponent", "gf", "ga"})
	if err != nil {
		return nil, err
	}

	var out []ranking.Game
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ranking.ErrMalformedInput, line, err)
		}

		g := ranking.Game{
			TeamID:     h.str(rec, "team_id_master"),
			Team:       h.str(rec, "team"),
			Club:       h.str(rec, "club"),
			Opponent:   h.str(rec, "opponent"),
			OpponentID: h.str(rec, "opponent_id_master"),
		}
		if g.TeamID == "" {
			return nil, fmt.Errorf("%w: line %d: game row has no team_id_master", ranking.ErrMalformedInput, line)
		}

		gf, _, err := h.float(rec, "gf")
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ranking.ErrMalformedInput, line, err)
		}
		ga, _, err := h.float(rec, "ga")
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ranking.ErrMalformedInput, line, err)
		}
		g.GF, g.GA = gf, ga

		if ds := h.str(rec, "date"); ds != "" {
			var parsed bool
			for _, layout := range gameDateFormats {
				if ts, err := time.Parse(layout, ds); err == nil {
					g.Date = ts.UTC()
					parsed = true
					break
				}
			}
			if !parsed {
				return nil, fmt.Errorf("%w: line %d: bad date %q", ranking.ErrMalformedInput, line, ds)
			}
		}
		out = append(out, g)
	}
	return out, nil
}

// LoadMaster reads a master team index export.
func LoadMaster(r io.Reader) ([]ranking.MasterTeam, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	h, err := readHeader(cr, []string{
		"gender", "age_group", "state", "team_id",
		"provider_team_id", "team_name", "club_name", "provider",
	})
	if err != nil {
		return nil, err
	}

	var out []ranking.MasterTeam
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ranking.ErrMalformedInput, line, err)
		}
		m := ranking.MasterTeam{
			TeamID:         h.str(rec, "team_id"),
			ProviderTeamID: h.str(rec, "provider_team_id"),
			TeamName:       h.str(rec, "team_name"),
			ClubName:       h.str(rec, "club_name"),
			State:          h.str(rec, "state"),
			Gender:         h.str(rec, "gender"),
			AgeGroup:       h.str(rec, "age_group"),
			Provider:       h.str(rec, "provider"),
		}
		if m.TeamID == "" {
			return nil, fmt.Errorf("%w: line %d: master row has no team_id", ranking.ErrMalformedInput, line)
		}
		out = append(out, m)
	}
	return out, nil
}

// LoadRankingsFile is LoadRankings plus file handling.
func LoadRankingsFile(path string) ([]ranking.Team, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadRankings(f)
}

// LoadGamesFile is LoadGames plus file handling.
func LoadGamesFile(path string) ([]ranking.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadGames(f)
}

// LoadMasterFile is LoadMaster plus file handling.
func LoadMasterFile(path string) ([]ranking.MasterTeam, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadMaster(f)
}
