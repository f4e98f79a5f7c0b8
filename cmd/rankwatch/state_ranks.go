package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dallasheidt14/rankwatch/internal/ranking"
)

func newStateRanksCmd() *cobra.Command {
	var state string
	cmd := &cobra.Command{
		Use:   "state-ranks [rankings.csv]",
		Short: "Detect stored state ranks that disagree with the powerscore ordering",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			path, records, err := resolveRankings(arg)
			if err != nil {
				return err
			}
			fmt.Printf("snapshot: %s (%d teams)\n\n", path, len(records))

			rep, err := ranking.DetectStateRankDefect(records)
			if err != nil {
				return err
			}

			if len(rep.Discrepancies) == 0 {
				fmt.Println("stored state ranks match the derived ordering")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STATE\tTEAM\tSTORED\tDERIVED\tNATIONAL")
			shown := 0
			for _, d := range rep.Discrepancies {
				if state != "" && d.State != state {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t#%d\t#%d\t#%d\n", d.State, d.Team, d.StoredRank, d.DerivedRank, d.RankNational)
				shown++
			}
			w.Flush()

			fmt.Printf("\n%d discrepancies", len(rep.Discrepancies))
			if state != "" {
				fmt.Printf(" (%d in %s)", shown, state)
			}
			fmt.Println()
			if rep.GloballyBroken {
				fmt.Printf("DEFECT: rank_state copied from rank_national in: %v\n", rep.BrokenStates)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "only print discrepancies for this state")
	return cmd
}
