package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dallasheidt14/rankwatch/internal/ranking"
)

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, ranking.ErrSnapshotNotFound), errors.Is(err, ranking.ErrTeamNotFound):
		return http.StatusNotFound
	case errors.Is(err, ranking.ErrMalformedInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}

func parseFloatDefault(s string, def float64) float64 {
	if s == "" {
		return def
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 {
		return v
	}
	return def
}

// resolveSnapshot picks the requested snapshot ID, or the newest ingested
// snapshot of the given kind when the request leaves it blank.
func resolveSnapshot(ctx context.Context, store ranking.Store, id, kind string) (string, error) {
	if id != "" {
		if _, err := store.GetSnapshot(ctx, id); err != nil {
			return "", err
		}
		return id, nil
	}
	snaps, err := store.ListSnapshots(ctx, kind)
	if err != nil {
		return "", err
	}
	if len(snaps) == 0 {
		return "", ranking.ErrSnapshotNotFound
	}
	return snaps[0].ID, nil
}
