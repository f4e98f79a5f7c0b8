package ranking

import "context"

// Snapshot identifies one immutable export of the upstream pipeline. ID is
// derived from the timestamped filename, e.g. "rankings_ALL_M_U10_20251017_1741".
type Snapshot struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"` // rankings|games|master
	Scope      string `json:"scope"` // ALL or a state code
	Gender     string `json:"gender"`
	AgeGroup   string `json:"age_group"`
	Stamp      string `json:"stamp"` // YYYYMMDD_HHMM from the filename
	SourceFile string `json:"source_file,omitempty"`
	RowCount   int    `json:"row_count"`
	IngestedAt int64  `json:"ingested_at,omitempty"`
}

const (
	KindRankings = "rankings"
	KindGames    = "games"
	KindMaster   = "master"
)

// SearchOpts narrows a team search within one snapshot.
type SearchOpts struct {
	Q     string // case-insensitive substring on team name
	State string // optional state filter
	Limit int
}

// Store persists ingested snapshots and answers the lookups the diagnostics
// need. Ingest replaces any prior rows for the same snapshot ID, so re-running
// an ingest is idempotent.
type Store interface {
	IngestRankings(ctx context.Context, snap Snapshot, rows []Team) error
	IngestGames(ctx context.Context, snap Snapshot, rows []Game) error
	IngestMaster(ctx context.Context, snap Snapshot, rows []MasterTeam) error

	ListSnapshots(ctx context.Context, kind string) ([]Snapshot, error)
	GetSnapshot(ctx context.Context, id string) (Snapshot, error)

	Rankings(ctx context.Context, snapshotID string) ([]Team, error)
	SearchTeams(ctx context.Context, snapshotID string, opts SearchOpts) ([]Team, error)

	Games(ctx context.Context, snapshotID string) ([]Game, error)
	GamesForTeam(ctx context.Context, snapshotID, teamID string) ([]Game, error)

	MasterTeams(ctx context.Context, snapshotID string) ([]MasterTeam, error)
}
