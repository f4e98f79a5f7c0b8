package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dallasheidt14/rankwatch/internal/ranking"
)

// GET /rankings?snapshot=...&limit=100
//
// The rankings table itself, ordered by national rank.
func RankingsHandler(store ranking.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		snapID, err := resolveSnapshot(ctx, store, r.URL.Query().Get("snapshot"), ranking.KindRankings)
		if err != nil {
			http.Error(w, err.Error(), httpStatus(err))
			return
		}
		teams, err := store.SearchTeams(ctx, snapID, ranking.SearchOpts{
			Limit: parseIntDefault(r.URL.Query().Get("limit"), 100),
		})
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if teams == nil {
			teams = []ranking.Team{}
		}
		writeJSON(w, map[string]any{"snapshot": snapID, "teams": teams})
	}
}

// GET /teams?q=copper&state=AZ&limit=20&snapshot=...
//
// The substring search the old scripts did with str.contains.
func SearchTeamsHandler(store ranking.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		snapID, err := resolveSnapshot(ctx, store, r.URL.Query().Get("snapshot"), ranking.KindRankings)
		if err != nil {
			http.Error(w, err.Error(), httpStatus(err))
			return
		}
		teams, err := store.SearchTeams(ctx, snapID, ranking.SearchOpts{
			Q:     strings.TrimSpace(r.URL.Query().Get("q")),
			State: strings.TrimSpace(r.URL.Query().Get("state")),
			Limit: parseIntDefault(r.URL.Query().Get("limit"), 50),
		})
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if teams == nil {
			teams = []ranking.Team{}
		}
		writeJSON(w, map[string]any{"snapshot": snapID, "teams": teams})
	}
}

// GET /teams/{teamID}/audit?snapshot=...
func TeamAuditHandler(store ranking.Store, weights ranking.Weights) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		snapID, err := resolveSnapshot(ctx, store, r.URL.Query().Get("snapshot"), ranking.KindRankings)
		if err != nil {
			http.Error(w, err.Error(), httpStatus(err))
			return
		}
		cohort, err := store.Rankings(ctx, snapID)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		audit, err := ranking.AuditTeam(chi.URLParam(r, "teamID"), cohort, weights)
		if err != nil {
			http.Error(w, err.Error(), httpStatus(err))
			return
		}
		writeJSON(w, map[string]any{"snapshot": snapID, "audit": audit})
	}
}

// GET /teams/{teamID}/games?snapshot=...
func TeamGamesHandler(store ranking.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		snapID, err := resolveSnapshot(ctx, store, r.URL.Query().Get("snapshot"), ranking.KindGames)
		if err != nil {
			http.Error(w, err.Error(), httpStatus(err))
			return
		}
		games, err := store.GamesForTeam(ctx, snapID, chi.URLParam(r, "teamID"))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if games == nil {
			games = []ranking.Game{}
		}
		writeJSON(w, map[string]any{"snapshot": snapID, "games": games})
	}
}

// GET /teams/{teamID}/sos?snapshot=...&rankings=...
//
// Schedule-strength view: per-opponent breakdown, opponent-graph
// connectivity, and opponents missing from the ranked set.
func TeamSOSHandler(store ranking.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		teamID := chi.URLParam(r, "teamID")

		gamesSnap, err := resolveSnapshot(ctx, store, r.URL.Query().Get("snapshot"), ranking.KindGames)
		if err != nil {
			http.Error(w, err.Error(), httpStatus(err))
			return
		}
		allGames, err := store.Games(ctx, gamesSnap)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}

		resp := map[string]any{
			"snapshot":     gamesSnap,
			"breakdown":    ranking.BreakdownOpponents(allGames, teamID),
			"connectivity": ranking.ConnectivityOf(allGames, teamID),
		}

		// Missing-opponent detection needs a rankings snapshot too; skip it
		// quietly when none is ingested yet.
		if rankSnap, err := resolveSnapshot(ctx, store, r.URL.Query().Get("rankings"), ranking.KindRankings); err == nil {
			ranked, err := store.Rankings(ctx, rankSnap)
			if err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			var teamGames []ranking.Game
			for _, g := range allGames {
				if g.TeamID == teamID {
					teamGames = append(teamGames, g)
				}
			}
			resp["rankings_snapshot"] = rankSnap
			resp["missing_opponents"] = ranking.FindMissingOpponents(teamGames, ranked)
		}
		writeJSON(w, resp)
	}
}
