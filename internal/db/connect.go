package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:rankwatch.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/rankwatch?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS snapshots (
  id TEXT PRIMARY KEY,            -- e.g. rankings_ALL_M_U10_20251017_1741
  kind TEXT NOT NULL,             -- rankings|games|master
  scope TEXT NOT NULL,            -- ALL or a state code
  gender TEXT NOT NULL,
  age_group TEXT NOT NULL,
  stamp TEXT NOT NULL,            -- YYYYMMDD_HHMM from the export filename
  source_file TEXT NOT NULL DEFAULT '',
  row_count INTEGER NOT NULL DEFAULT 0,
  ingested_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS rankings (
  snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
  team_id TEXT NOT NULL,
  team TEXT NOT NULL,
  club TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  gender TEXT NOT NULL DEFAULT '',
  age_group TEXT NOT NULL DEFAULT '',
  powerscore REAL NOT NULL,
  powerscore_adj REAL NOT NULL DEFAULT 0,
  rank_national INTEGER NOT NULL,
  rank_state INTEGER NOT NULL,
  gp_used INTEGER NOT NULL DEFAULT 0,
  gp_mult REAL NOT NULL DEFAULT 0,
  sao_raw REAL NOT NULL DEFAULT 0,
  sao_shrunk REAL NOT NULL DEFAULT 0,
  sao_norm REAL NOT NULL DEFAULT 0,
  sad_raw REAL NOT NULL DEFAULT 0,
  sad_shrunk REAL NOT NULL DEFAULT 0,
  sad_norm REAL NOT NULL DEFAULT 0,
  sos_component REAL NOT NULL DEFAULT 0,
  sos_norm REAL NOT NULL DEFAULT 0,
  PRIMARY KEY (snapshot_id, team_id)
);
CREATE INDEX IF NOT EXISTS idx_rankings_state ON rankings(snapshot_id, state);

CREATE TABLE IF NOT EXISTS games (
  id INTEGER PRIMARY KEY AUTOINCREMENT,  -- BIGSERIAL in Postgres
  snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
  team_id_master TEXT NOT NULL,
  team TEXT NOT NULL DEFAULT '',
  club TEXT NOT NULL DEFAULT '',
  opponent TEXT NOT NULL DEFAULT '',
  opponent_id_master TEXT NOT NULL DEFAULT '',
  played_at INTEGER NOT NULL,
  gf REAL NOT NULL DEFAULT 0,
  ga REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_games_team ON games(snapshot_id, team_id_master);

CREATE TABLE IF NOT EXISTS master_teams (
  snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
  team_id TEXT NOT NULL,
  provider_team_id TEXT NOT NULL DEFAULT '',
  team_name TEXT NOT NULL,
  club_name TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  gender TEXT NOT NULL DEFAULT '',
  age_group TEXT NOT NULL DEFAULT '',
  provider TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (snapshot_id, team_id)
);

CREATE TABLE IF NOT EXISTS event_log (
  offset INTEGER PRIMARY KEY AUTOINCREMENT, -- BIGSERIAL in Postgres
  typ TEXT NOT NULL,                        -- e.g. SnapshotIngested
  key TEXT NOT NULL,                        -- natural key: snapshot id
  data TEXT NOT NULL,                       -- JSON payload
  created_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS snapshots (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  scope TEXT NOT NULL,
  gender TEXT NOT NULL,
  age_group TEXT NOT NULL,
  stamp TEXT NOT NULL,
  source_file TEXT NOT NULL DEFAULT '',
  row_count INTEGER NOT NULL DEFAULT 0,
  ingested_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS rankings (
  snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
  team_id TEXT NOT NULL,
  team TEXT NOT NULL,
  club TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  gender TEXT NOT NULL DEFAULT '',
  age_group TEXT NOT NULL DEFAULT '',
  powerscore DOUBLE PRECISION NOT NULL,
  powerscore_adj DOUBLE PRECISION NOT NULL DEFAULT 0,
  rank_national INTEGER NOT NULL,
  rank_state INTEGER NOT NULL,
  gp_used INTEGER NOT NULL DEFAULT 0,
  gp_mult DOUBLE PRECISION NOT NULL DEFAULT 0,
  sao_raw DOUBLE PRECISION NOT NULL DEFAULT 0,
  sao_shrunk DOUBLE PRECISION NOT NULL DEFAULT 0,
  sao_norm DOUBLE PRECISION NOT NULL DEFAULT 0,
  sad_raw DOUBLE PRECISION NOT NULL DEFAULT 0,
  sad_shrunk DOUBLE PRECISION NOT NULL DEFAULT 0,
  sad_norm DOUBLE PRECISION NOT NULL DEFAULT 0,
  sos_component DOUBLE PRECISION NOT NULL DEFAULT 0,
  sos_norm DOUBLE PRECISION NOT NULL DEFAULT 0,
  PRIMARY KEY (snapshot_id, team_id)
);
CREATE INDEX IF NOT EXISTS idx_rankings_state ON rankings(snapshot_id, state);

CREATE TABLE IF NOT EXISTS games (
  id BIGSERIAL PRIMARY KEY,
  snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
  team_id_master TEXT NOT NULL,
  team TEXT NOT NULL DEFAULT '',
  club TEXT NOT NULL DEFAULT '',
  opponent TEXT NOT NULL DEFAULT '',
  opponent_id_master TEXT NOT NULL DEFAULT '',
  played_at BIGINT NOT NULL,
  gf DOUBLE PRECISION NOT NULL DEFAULT 0,
  ga DOUBLE PRECISION NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_games_team ON games(snapshot_id, team_id_master);

CREATE TABLE IF NOT EXISTS master_teams (
  snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
  team_id TEXT NOT NULL,
  provider_team_id TEXT NOT NULL DEFAULT '',
  team_name TEXT NOT NULL,
  club_name TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  gender TEXT NOT NULL DEFAULT '',
  age_group TEXT NOT NULL DEFAULT '',
  provider TEXT NOT NULL DEFAULT '',
  PRIMARY KEY (snapshot_id, team_id)
);

CREATE TABLE IF NOT EXISTS event_log (
  "offset" BIGSERIAL PRIMARY KEY,
  typ TEXT NOT NULL,
  key TEXT NOT NULL,
  data TEXT NOT NULL,
  created_at BIGINT NOT NULL
);
`
