package main

import (
	"path/filepath"

	"github.com/dallasheidt14/rankwatch/internal/ranking"
	"github.com/dallasheidt14/rankwatch/internal/snapshot"
)

// Export subdirectories under the data root, matching the pipeline layout.
const (
	rankingsDir = "rankings"
	gamesDir    = "games/normalized"
	masterDir   = "master"
)

// resolveRankings loads the given rankings file, or the newest rankings
// export under the data root when the arg is empty.
func resolveRankings(arg string) (string, []ranking.Team, error) {
	path := arg
	if path == "" {
		var err error
		path, _, err = snapshot.Latest(filepath.Join(flagDataRoot, rankingsDir), func(s ranking.Snapshot) bool {
			return s.Kind == ranking.KindRankings
		})
		if err != nil {
			return "", nil, err
		}
	}
	rows, err := snapshot.LoadRankingsFile(path)
	return path, rows, err
}

func resolveGames(arg string) (string, []ranking.Game, error) {
	path := arg
	if path == "" {
		var err error
		path, _, err = snapshot.Latest(filepath.Join(flagDataRoot, gamesDir), func(s ranking.Snapshot) bool {
			return s.Kind == ranking.KindGames
		})
		if err != nil {
			return "", nil, err
		}
	}
	rows, err := snapshot.LoadGamesFile(path)
	return path, rows, err
}

func resolveMaster(arg string) (string, []ranking.MasterTeam, error) {
	path := arg
	if path == "" {
		var err error
		path, _, err = snapshot.Latest(filepath.Join(flagDataRoot, masterDir), func(s ranking.Snapshot) bool {
			return s.Kind == ranking.KindMaster
		})
		if err != nil {
			return "", nil, err
		}
	}
	rows, err := snapshot.LoadMasterFile(path)
	return path, rows, err
}

func loadWeights() (ranking.Weights, error) {
	return ranking.LoadWeights(flagWeights)
}
