package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dallasheidt14/rankwatch/internal/db"
	"github.com/dallasheidt14/rankwatch/internal/ranking"
	"github.com/dallasheidt14/rankwatch/internal/snapshot"
)

var (
	flagDBDriver string
	flagDSN      string
)

func addDBFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDBDriver, "db-driver", "sqlite", "sqlite or postgres")
	cmd.Flags().StringVar(&flagDSN, "dsn", "", "database DSN (driver default when empty)")
}

func openStore(ctx context.Context) (*sql.DB, *ranking.SQLStore, error) {
	dbh, err := db.Open(ctx, db.Driver(flagDBDriver), flagDSN)
	if err != nil {
		return nil, nil, err
	}
	return dbh, ranking.NewSQLStore(dbh, flagDBDriver), nil
}

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <export.csv>...",
		Short: "Ingest pipeline exports into the diagnostics store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			dbh, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer dbh.Close()

			for _, path := range args {
				snap, err := snapshot.ParseName(path)
				if err != nil {
					return err
				}
				switch snap.Kind {
				case ranking.KindRankings:
					rows, err := snapshot.LoadRankingsFile(path)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					snap.RowCount = len(rows)
					if err := store.IngestRankings(ctx, snap, rows); err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
				case ranking.KindGames:
					rows, err := snapshot.LoadGamesFile(path)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					snap.RowCount = len(rows)
					if err := store.IngestGames(ctx, snap, rows); err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
				case ranking.KindMaster:
					rows, err := snapshot.LoadMasterFile(path)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					snap.RowCount = len(rows)
					if err := store.IngestMaster(ctx, snap, rows); err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
				}
				fmt.Printf("ingested %s (%s, %d rows)\n", snap.ID, snap.Kind, snap.RowCount)
			}
			return nil
		},
	}
	addDBFlags(cmd)
	return cmd
}

func newSnapshotsCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List ingested snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			dbh, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer dbh.Close()

			snaps, err := store.ListSnapshots(ctx, kind)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Println("no snapshots ingested")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tSCOPE\tCOHORT\tROWS\tINGESTED")
			for _, s := range snaps {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%d\t%s\n",
					s.ID, s.Kind, s.Scope, s.Gender, s.AgeGroup, s.RowCount,
					time.Unix(s.IngestedAt, 0).Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "filter by kind (rankings|games|master)")
	addDBFlags(cmd)
	return cmd
}
