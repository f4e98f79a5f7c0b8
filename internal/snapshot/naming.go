// Package snapshot locates and parses the upstream pipeline's export files.
// It is the I/O boundary: everything under internal/ranking works on already
// loaded records and never touches the filesystem.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dallasheidt14/rankwatch/internal/ranking"
)

var ErrNoSnapshot = errors.New("no snapshot found")

// Export names carry cohort and timestamp:
//
//	rankings_ALL_M_U10_20251017_1656.csv
//	rankings_AZ_M_U10_20251017_1741.csv        (state view)
//	games_normalized_AZ_M_U10_20251017_1134.csv
//	master_team_index_migrated_20251014_1717.csv
var (
	reCohort = regexp.MustCompile(`^(rankings|games_normalized)_([A-Z]{2,3})_([MF])_(U\d{1,2})_(\d{8}_\d{4})$`)
	reMaster = regexp.MustCompile(`^master_team_index\w*_(\d{8}_\d{4})$`)
)

// ParseName derives snapshot identity from an export filename. The extension
// is ignored; identity comes from the stem.
func ParseName(filename string) (ranking.Snapshot, error) {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if m := reCohort.FindStringSubmatch(stem); m != nil {
		kind := ranking.KindRankings
		if m[1] == "games_normalized" {
			kind = ranking.KindGames
		}
		return ranking.Snapshot{
			ID:         stem,
			Kind:       kind,
			Scope:      m[2],
			Gender:     m[3],
			AgeGroup:   m[4],
			Stamp:      m[5],
			SourceFile: base,
		}, nil
	}
	if m := reMaster.FindStringSubmatch(stem); m != nil {
		return ranking.Snapshot{
			ID:         stem,
			Kind:       ranking.KindMaster,
			Scope:      "ALL",
			Stamp:      m[1],
			SourceFile: base,
		}, nil
	}
	return ranking.Snapshot{}, fmt.Errorf("unrecognized snapshot filename %q", base)
}

// Latest returns the path of the newest export under dir whose parsed
// snapshot matches filter (nil filter matches everything). Newest means
// highest stamp; the stamp format sorts lexically.
func Latest(dir string, filter func(ranking.Snapshot) bool) (string, ranking.Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", ranking.Snapshot{}, err
	}

	var bestPath string
	var best ranking.Snapshot
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		snap, err := ParseName(e.Name())
		if err != nil {
			continue // not an export, skip
		}
		if filter != nil && !filter(snap) {
			continue
		}
		if bestPath == "" || snap.Stamp > best.Stamp {
			bestPath = filepath.Join(dir, e.Name())
			best = snap
		}
	}
	if bestPath == "" {
		return "", ranking.Snapshot{}, fmt.Errorf("%w in %s", ErrNoSnapshot, dir)
	}
	return bestPath, best, nil
}
