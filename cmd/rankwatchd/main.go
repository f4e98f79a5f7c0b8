package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/dallasheidt14/rankwatch/internal/api/http"
	auth "github.com/dallasheidt14/rankwatch/internal/auth/middleware"
	"github.com/dallasheidt14/rankwatch/internal/config"
	"github.com/dallasheidt14/rankwatch/internal/db"
	"github.com/dallasheidt14/rankwatch/internal/ranking"
	"github.com/dallasheidt14/rankwatch/internal/rbac"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := ranking.NewSQLStore(dbh, cfg.DBDriver)

	weights, err := ranking.LoadWeights(cfg.WeightsPath)
	if err != nil {
		log.Fatalf("weights config: %v", err)
	}

	// --- Auth ---
	accounts := map[string]auth.Account{
		cfg.AdminUser: {PassHash: cfg.AdminPassHash, Role: "admin"},
	}
	if cfg.ViewerPassHash != "" {
		accounts[cfg.ViewerUser] = auth.Account{PassHash: cfg.ViewerPassHash, Role: "viewer"}
	}
	authSvc := auth.NewAuthService(cfg.AuthSecret, accounts)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsLocal
	if cfg.Mode == config.ModeShared {
		origins = cfg.CORSOriginsShared
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc))

	// Protected API (JWT -> role in context -> RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("snapshot:list")).
			Get("/snapshots", api.ListSnapshotsHandler(store))
		pr.With(rbac.Require("snapshot:list")).
			Get("/snapshots/{snapshotID}", api.GetSnapshotHandler(store))
		pr.With(rbac.Require("snapshot:ingest")).
			Post("/snapshots/ingest", api.IngestHandler(store, cfg.DataRoot))

		pr.With(rbac.Require("report:rankings")).
			Get("/rankings", api.RankingsHandler(store))
		pr.With(rbac.Require("team:search")).
			Get("/teams", api.SearchTeamsHandler(store))
		pr.With(rbac.Require("team:audit")).
			Get("/teams/{teamID}/audit", api.TeamAuditHandler(store, weights))
		pr.With(rbac.Require("team:games")).
			Get("/teams/{teamID}/games", api.TeamGamesHandler(store))
		pr.With(rbac.Require("team:sos")).
			Get("/teams/{teamID}/sos", api.TeamSOSHandler(store))

		pr.With(rbac.Require("report:state-ranks")).
			Get("/diagnostics/state-ranks", api.StateRankDefectHandler(store))
		pr.With(rbac.Require("report:components")).
			Get("/diagnostics/components", api.ComponentsHandler(store, weights))
		pr.With(rbac.Require("report:uniqueness")).
			Get("/diagnostics/uniqueness", api.UniquenessHandler(store))
		pr.With(rbac.Require("report:names")).
			Get("/diagnostics/names", api.NamePatternsHandler(store))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s, data=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, cfg.DataRoot)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
