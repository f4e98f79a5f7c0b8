package http

import (
	"net/http"

	"github.com/dallasheidt14/rankwatch/internal/ranking"
)

// GET /diagnostics/state-ranks?snapshot=...
//
// The state-rank defect report: every team whose stored rank_state disagrees
// with the powerscore-derived rank, plus the copied-from-national signature.
func StateRankDefectHandler(store ranking.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		snapID, err := resolveSnapshot(ctx, store, r.URL.Query().Get("snapshot"), ranking.KindRankings)
		if err != nil {
			http.Error(w, err.Error(), httpStatus(err))
			return
		}
		records, err := store.Rankings(ctx, snapID)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		rep, err := ranking.DetectStateRankDefect(records)
		if err != nil {
			http.Error(w, err.Error(), httpStatus(err))
			return
		}
		writeJSON(w, map[string]any{"snapshot": snapID, "report": rep})
	}
}

// GET /diagnostics/components?snapshot=...&tol=0.000001
func ComponentsHandler(store ranking.Store, weights ranking.Weights) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		snapID, err := resolveSnapshot(ctx, store, r.URL.Query().Get("snapshot"), ranking.KindRankings)
		if err != nil {
			http.Error(w, err.Error(), httpStatus(err))
			return
		}
		records, err := store.Rankings(ctx, snapID)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		tol := parseFloatDefault(r.URL.Query().Get("tol"), 1e-6)
		mismatches := ranking.VerifyComponents(records, weights, tol)
		if mismatches == nil {
			mismatches = []ranking.ComponentMismatch{}
		}
		writeJSON(w, map[string]any{
			"snapshot":   snapID,
			"weights":    weights,
			"tolerance":  tol,
			"mismatches": mismatches,
		})
	}
}

// GET /diagnostics/uniqueness?snapshot=...
func UniquenessHandler(store ranking.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		snapID, err := resolveSnapshot(ctx, store, r.URL.Query().Get("snapshot"), ranking.KindRankings)
		if err != nil {
			http.Error(w, err.Error(), httpStatus(err))
			return
		}
		records, err := store.Rankings(ctx, snapID)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{"snapshot": snapID, "report": ranking.Uniqueness(records)})
	}
}

// GET /diagnostics/names?snapshot=...
//
// Team-name pattern report over the master index.
func NamePatternsHandler(store ranking.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		snapID, err := resolveSnapshot(ctx, store, r.URL.Query().Get("snapshot"), ranking.KindMaster)
		if err != nil {
			http.Error(w, err.Error(), httpStatus(err))
			return
		}
		master, err := store.MasterTeams(ctx, snapID)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		names := make([]string, len(master))
		for i, m := range master {
			names[i] = m.TeamName
		}
		writeJSON(w, map[string]any{"snapshot": snapID, "report": ranking.AnalyzeNames(names)})
	}
}
