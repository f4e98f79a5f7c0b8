package ranking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) IngestRankings(ctx context.Context, snap Snapshot, rows []Team) error {
	snap.Kind = KindRankings
	return s.ingest(ctx, snap, len(rows), func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM rankings WHERE snapshot_id=$1`, snap.ID); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO rankings
			(snapshot_id,team_id,team,club,state,gender,age_group,
			 powerscore,powerscore_adj,rank_national,rank_state,gp_used,gp_mult,
			 sao_raw,sao_shrunk,sao_norm,sad_raw,sad_shrunk,sad_norm,sos_component,sos_norm)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, t := range rows {
			if _, err := stmt.ExecContext(ctx, snap.ID, t.TeamID, t.Name, t.Club, t.State, t.Gender, t.AgeGroup,
				t.PowerScore, t.PowerScoreAdj, t.RankNational, t.RankState, t.GPUsed, t.GPMult,
				t.SAORaw, t.SAOShrunk, t.SAONorm, t.SADRaw, t.SADShrunk, t.SADNorm, t.SOSComponent, t.SOSNorm); err != nil {
				return fmt.Errorf("insert ranking row for %s: %w", t.TeamID, err)
			}
		}
		return nil
	})
}

func (s *SQLStore) IngestGames(ctx context.Context, snap Snapshot, rows []Game) error {
	snap.Kind = KindGames
	return s.ingest(ctx, snap, len(rows), func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE snapshot_id=$1`, snap.ID); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO games
			(snapshot_id,team_id_master,team,club,opponent,opponent_id_master,played_at,gf,ga)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, g := range rows {
			if _, err := stmt.ExecContext(ctx, snap.ID, g.TeamID, g.Team, g.Club, g.Opponent, g.OpponentID,
				g.Date.Unix(), g.GF, g.GA); err != nil {
				return fmt.Errorf("insert game row for %s: %w", g.TeamID, err)
			}
		}
		return nil
	})
}

func (s *SQLStore) IngestMaster(ctx context.Context, snap Snapshot, rows []MasterTeam) error {
	snap.Kind = KindMaster
	return s.ingest(ctx, snap, len(rows), func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM master_teams WHERE snapshot_id=$1`, snap.ID); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO master_teams
			(snapshot_id,team_id,provider_team_id,team_name,club_name,state,gender,age_group,provider)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, m := range rows {
			if _, err := stmt.ExecContext(ctx, snap.ID, m.TeamID, m.ProviderTeamID, m.TeamName, m.ClubName,
				m.State, m.Gender, m.AgeGroup, m.Provider); err != nil {
				return fmt.Errorf("insert master row for %s: %w", m.TeamID, err)
			}
		}
		return nil
	})
}

// ingest registers the snapshot, runs the row loader in the same transaction,
// and appends an event_log entry.
func (s *SQLStore) ingest(ctx context.Context, snap Snapshot, rowCount int, load func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	if _, err := tx.ExecContext(ctx, `INSERT INTO snapshots (id,kind,scope,gender,age_group,stamp,source_file,row_count,ingested_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET source_file=EXCLUDED.source_file, row_count=EXCLUDED.row_count, ingested_at=EXCLUDED.ingested_at`,
		snap.ID, snap.Kind, snap.Scope, snap.Gender, snap.AgeGroup, snap.Stamp, snap.SourceFile, rowCount, now); err != nil {
		return fmt.Errorf("register snapshot %s: %w", snap.ID, err)
	}

	if err := load(tx); err != nil {
		return err
	}

	data, _ := json.Marshal(map[string]any{"kind": snap.Kind, "rows": rowCount, "source": snap.SourceFile})
	if _, err := tx.ExecContext(ctx, `INSERT INTO event_log (typ,key,data,created_at) VALUES ($1,$2,$3,$4)`,
		"SnapshotIngested", snap.ID, string(data), now); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLStore) ListSnapshots(ctx context.Context, kind string) ([]Snapshot, error) {
	q := `SELECT id,kind,scope,gender,age_group,stamp,source_file,row_count,ingested_at FROM snapshots`
	args := []any{}
	if kind != "" {
		q += ` WHERE kind=$1`
		args = append(args, kind)
	}
	q += ` ORDER BY stamp DESC, id`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var sn Snapshot
		if err := rows.Scan(&sn.ID, &sn.Kind, &sn.Scope, &sn.Gender, &sn.AgeGroup, &sn.Stamp,
			&sn.SourceFile, &sn.RowCount, &sn.IngestedAt); err != nil {
			return nil, err
		}
		out = append(out, sn)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetSnapshot(ctx context.Context, id string) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,kind,scope,gender,age_group,stamp,source_file,row_count,ingested_at
		FROM snapshots WHERE id=$1`, id)
	var sn Snapshot
	if err := row.Scan(&sn.ID, &sn.Kind, &sn.Scope, &sn.Gender, &sn.AgeGroup, &sn.Stamp,
		&sn.SourceFile, &sn.RowCount, &sn.IngestedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
		}
		return Snapshot{}, err
	}
	return sn, nil
}

const teamColumns = `team_id,team,club,state,gender,age_group,
	powerscore,powerscore_adj,rank_national,rank_state,gp_used,gp_mult,
	sao_raw,sao_shrunk,sao_norm,sad_raw,sad_shrunk,sad_norm,sos_component,sos_norm`

func (s *SQLStore) Rankings(ctx context.Context, snapshotID string) ([]Team, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+teamColumns+` FROM rankings
		WHERE snapshot_id=$1 ORDER BY rank_national`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTeams(rows)
}

func (s *SQLStore) SearchTeams(ctx context.Context, snapshotID string, opts SearchOpts) ([]Team, error) {
	q := `SELECT ` + teamColumns + ` FROM rankings WHERE snapshot_id=$1`
	args := []any{snapshotID}
	if opts.Q != "" {
		args = append(args, "%"+opts.Q+"%")
		q += fmt.Sprintf(` AND LOWER(team) LIKE LOWER($%d)`, len(args))
	}
	if opts.State != "" {
		args = append(args, opts.State)
		q += fmt.Sprintf(` AND state=$%d`, len(args))
	}
	q += ` ORDER BY rank_national`
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		q += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTeams(rows)
}

func scanTeams(rows *sql.Rows) ([]Team, error) {
	var out []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.TeamID, &t.Name, &t.Club, &t.State, &t.Gender, &t.AgeGroup,
			&t.PowerScore, &t.PowerScoreAdj, &t.RankNational, &t.RankState, &t.GPUsed, &t.GPMult,
			&t.SAORaw, &t.SAOShrunk, &t.SAONorm, &t.SADRaw, &t.SADShrunk, &t.SADNorm,
			&t.SOSComponent, &t.SOSNorm); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLStore) Games(ctx context.Context, snapshotID string) ([]Game, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT team_id_master,team,club,opponent,opponent_id_master,played_at,gf,ga
		FROM games WHERE snapshot_id=$1`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGames(rows)
}

func (s *SQLStore) GamesForTeam(ctx context.Context, snapshotID, teamID string) ([]Game, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT team_id_master,team,club,opponent,opponent_id_master,played_at,gf,ga
		FROM games WHERE snapshot_id=$1 AND team_id_master=$2 ORDER BY played_at DESC`, snapshotID, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanGames(rows)
}

func scanGames(rows *sql.Rows) ([]Game, error) {
	var out []Game
	for rows.Next() {
		var g Game
		var playedAt int64
		if err := rows.Scan(&g.TeamID, &g.Team, &g.Club, &g.Opponent, &g.OpponentID, &playedAt, &g.GF, &g.GA); err != nil {
			return nil, err
		}
		g.Date = time.Unix(playedAt, 0).UTC()
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *SQLStore) MasterTeams(ctx context.Context, snapshotID string) ([]MasterTeam, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT team_id,provider_team_id,team_name,club_name,state,gender,age_group,provider
		FROM master_teams WHERE snapshot_id=$1 ORDER BY state, team_name`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MasterTeam
	for rows.Next() {
		var m MasterTeam
		if err := rows.Scan(&m.TeamID, &m.ProviderTeamID, &m.TeamName, &m.ClubName,
			&m.State, &m.Gender, &m.AgeGroup, &m.Provider); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
