package http

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dallasheidt14/rankwatch/internal/ranking"
	"github.com/dallasheidt14/rankwatch/internal/snapshot"
)

// GET /snapshots?kind=rankings
func ListSnapshotsHandler(store ranking.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := strings.TrimSpace(r.URL.Query().Get("kind"))
		snaps, err := store.ListSnapshots(r.Context(), kind)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if snaps == nil {
			snaps = []ranking.Snapshot{}
		}
		writeJSON(w, snaps)
	}
}

// GET /snapshots/{snapshotID}
func GetSnapshotHandler(store ranking.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sn, err := store.GetSnapshot(r.Context(), chi.URLParam(r, "snapshotID"))
		if err != nil {
			http.Error(w, err.Error(), httpStatus(err))
			return
		}
		writeJSON(w, sn)
	}
}

// POST /snapshots/ingest  { "file": "rankings_ALL_M_U10_20251017_1741.csv" }
//
// The file is resolved against dataRoot; kind and cohort come from the
// filename convention. Re-ingesting the same snapshot replaces its rows.
func IngestHandler(store ranking.Store, dataRoot string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			File string `json:"file"`
		}
		if err := decodeJSON(r, &req); err != nil || req.File == "" {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		// Keep ingest inside the data root; the API never reads arbitrary paths.
		rel := filepath.Clean(req.File)
		if filepath.IsAbs(rel) || strings.HasPrefix(rel, "..") {
			http.Error(w, "file must be relative to the data root", http.StatusBadRequest)
			return
		}
		path := filepath.Join(dataRoot, rel)

		snap, err := snapshot.ParseName(path)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx := r.Context()
		switch snap.Kind {
		case ranking.KindRankings:
			rows, err := snapshot.LoadRankingsFile(path)
			if err != nil {
				http.Error(w, err.Error(), httpStatus(err))
				return
			}
			snap.RowCount = len(rows)
			err = store.IngestRankings(ctx, snap, rows)
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
		case ranking.KindGames:
			rows, err := snapshot.LoadGamesFile(path)
			if err != nil {
				http.Error(w, err.Error(), httpStatus(err))
				return
			}
			snap.RowCount = len(rows)
			err = store.IngestGames(ctx, snap, rows)
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
		case ranking.KindMaster:
			rows, err := snapshot.LoadMasterFile(path)
			if err != nil {
				http.Error(w, err.Error(), httpStatus(err))
				return
			}
			snap.RowCount = len(rows)
			err = store.IngestMaster(ctx, snap, rows)
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
		}
		writeJSON(w, snap)
	}
}
