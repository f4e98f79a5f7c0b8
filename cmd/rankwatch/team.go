package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dallasheidt14/rankwatch/internal/ranking"
)

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Per-team lookups and audits",
	}
	cmd.AddCommand(newTeamFindCmd(), newTeamAuditCmd(), newTeamGamesCmd(), newTeamSOSCmd())
	return cmd
}

func newTeamFindCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "find <name-substring>",
		Short: "Find teams by case-insensitive name substring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, records, err := resolveRankings(file)
			if err != nil {
				return err
			}
			fmt.Printf("snapshot: %s\n\n", path)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NATIONAL\tSTATE RANK\tST\tTEAM\tPOWERSCORE\tID")
			n := 0
			for _, t := range records {
				if !strings.Contains(strings.ToLower(t.Name), strings.ToLower(args[0])) {
					continue
				}
				fmt.Fprintf(w, "#%d\t#%d\t%s\t%s\t%.6f\t%s\n",
					t.RankNational, t.RankState, t.State, t.Name, t.PowerScore, t.TeamID)
				n++
			}
			w.Flush()
			fmt.Printf("\n%d match(es)\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "rankings export (default: latest under the data root)")
	return cmd
}

func newTeamAuditCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "audit <team-id>",
		Short: "Full component and position audit for one team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, records, err := resolveRankings(file)
			if err != nil {
				return err
			}
			weights, err := loadWeights()
			if err != nil {
				return err
			}
			a, err := ranking.AuditTeam(args[0], records, weights)
			if err != nil {
				return err
			}

			fmt.Printf("snapshot: %s\n", path)
			fmt.Printf("team: %s (%s, %s)\n\n", a.Team.Name, a.Team.TeamID, a.Team.State)

			fmt.Printf("position:   national #%d of %d (%.1f pctile), state #%d of %d",
				a.RankNational, a.CohortSize, a.Percentile, a.RankState, a.StateCohort)
			if a.StateLeader {
				fmt.Print("  <- state leader")
			}
			fmt.Println()
			if a.GapToNext != 0 {
				fmt.Printf("gap:        %.6f powerscore to next in-state team\n", a.GapToNext)
			}
			fmt.Printf("sample:     %d games (%s, weighting %.0f%%)\n",
				a.Team.GPUsed, a.SampleStatus, a.ProvisionalWeight*100)

			fmt.Println("\ncomponents:")
			for _, c := range a.Components {
				fmt.Printf("  %s  %.6f * %.2f = %.6f\n", c.Name, c.Norm, c.Weight, c.Contribution)
			}
			fmt.Printf("  blended      %.6f (stored %.6f)\n", a.BlendedScore, a.Team.PowerScore)
			fmt.Printf("  sos floored  %.6f (floor %.2f)\n", a.SOSFloorApplied, ranking.SOSFloor)
			fmt.Printf("\ncohort powerscore range: %.6f - %.6f\n", a.CohortMin, a.CohortMax)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "rankings export (default: latest under the data root)")
	return cmd
}

func newTeamGamesCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "games <team-id>",
		Short: "Print a team's game log, most recent first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, games, err := resolveGames(file)
			if err != nil {
				return err
			}
			log := ranking.GameLog(games, args[0])
			fmt.Printf("snapshot: %s\n", path)
			if len(log) == 0 {
				fmt.Printf("no games for team %s\n", args[0])
				return nil
			}
			fmt.Printf("team: %s (%d games)\n\n", log[0].Team, len(log))

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for i, g := range log {
				date := "N/A"
				if !g.Date.IsZero() {
					date = g.Date.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%d.\t%s\t%.0f-%.0f\tvs %s\tGD %+.0f\t%s\n",
					i+1, date, g.GF, g.GA, g.Opponent, g.GD(), g.Result())
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "games export (default: latest under the data root)")
	return cmd
}

func newTeamSOSCmd() *cobra.Command {
	var gamesFile, rankFile string
	cmd := &cobra.Command{
		Use:   "sos <team-id>",
		Short: "Schedule-strength breakdown: opponents, connectivity, missing links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID := args[0]
			path, games, err := resolveGames(gamesFile)
			if err != nil {
				return err
			}
			fmt.Printf("snapshot: %s\n\n", path)

			bd := ranking.BreakdownOpponents(games, teamID)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "OPPONENT\tGAMES\tSEASON GF-GA\tGD")
			for _, o := range bd.Opponents {
				fmt.Fprintf(w, "%s\t%d\t%.0f-%.0f\t%+.0f\n", o.Opponent, o.GamesVs, o.OppGF, o.OppGA, o.OppGD)
			}
			w.Flush()
			fmt.Printf("\nstrong opponents (positive GD): %d/%d\n", bd.StrongOpponents, len(bd.Opponents))

			conn := ranking.ConnectivityOf(games, teamID)
			fmt.Printf("2-hop network: %d of %d teams (ratio %.3f)\n",
				conn.Reachable2Hop, conn.CohortTeams, conn.Ratio)

			// Missing opponents need the ranked set; optional.
			if _, ranked, err := resolveRankings(rankFile); err == nil {
				missing := ranking.FindMissingOpponents(ranking.GameLog(games, teamID), ranked)
				if len(missing) > 0 {
					fmt.Println("\nopponents absent from the ranked set:")
					for _, m := range missing {
						name := m.Opponent
						if m.OpponentID == "" {
							name += " (never linked)"
						}
						fmt.Printf("  %s: %d game(s)\n", name, m.Games)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&gamesFile, "file", "", "games export (default: latest under the data root)")
	cmd.Flags().StringVar(&rankFile, "rankings", "", "rankings export for missing-opponent detection")
	return cmd
}
