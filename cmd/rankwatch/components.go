package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dallasheidt14/rankwatch/internal/ranking"
)

func newComponentsCmd() *cobra.Command {
	var tol float64
	var top int
	cmd := &cobra.Command{
		Use:   "components [rankings.csv]",
		Short: "Verify the powerscore blend and component uniqueness",
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
			weights, err := loadWeights()
			if err != nil {
				return err
			}
			fmt.Printf("snapshot: %s (%d teams)\n", path, len(records))
			fmt.Printf("blend: powerscore = %.2f*sao + %.2f*sad + %.2f*sos\n\n",
				weights.SAO, weights.SAD, weights.SOS)

			if top > 0 {
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "RANK\tTEAM\tSAO\tSAD\tSOS\tPOWERSCORE")
				for _, t := range ranking.TopN(records, top) {
					fmt.Fprintf(w, "#%d\t%s\t%.6f\t%.6f\t%.6f\t%.6f\n",
						t.RankNational, t.Name, t.SAONorm, t.SADNorm, t.SOSNorm, t.PowerScore)
				}
				w.Flush()
				fmt.Println()
			}

			mismatches := ranking.VerifyComponents(records, weights, tol)
			if len(mismatches) == 0 {
				fmt.Printf("blend check: all stored powerscores within %.1e of the recomputed value\n", tol)
			} else {
				fmt.Printf("blend check: %d mismatch(es) beyond %.1e\n", len(mismatches), tol)
				for _, m := range mismatches {
					fmt.Printf("  %s stored=%.6f recomputed=%.6f delta=%.2e\n",
						m.Team, m.Stored, m.Recomputed, m.Delta)
				}
			}

			rep := ranking.Uniqueness(records)
			fmt.Println("\nuniqueness (distinct at 6 decimals):")
			printStats := func(name string, st ranking.FieldStats) {
				ratio := 0.0
				if st.Total > 0 {
					ratio = float64(st.Unique) / float64(st.Total)
				}
				fmt.Printf("  %-11s %d/%d (%.1f%%)  min=%.6f max=%.6f mean=%.6f std=%.6f\n",
					name, st.Unique, st.Total, ratio*100, st.Min, st.Max, st.Mean, st.Stddev)
			}
			printStats("powerscore", rep.PowerScore)
			printStats("sao_norm", rep.SAONorm)
			printStats("sad_norm", rep.SADNorm)
			printStats("sos_norm", rep.SOSNorm)
			fmt.Printf("\npowerscore thresholds: top 10%% %.6f, top 5%% %.6f, top 1%% %.6f\n",
				rep.PowerScore.P90, rep.PowerScore.P95, rep.PowerScore.P99)
			return nil
		},
	}
	cmd.Flags().Float64Var(&tol, "tol", 1e-6, "blend mismatch tolerance")
	cmd.Flags().IntVar(&top, "top", 10, "print the top N teams' components (0 disables)")
	return cmd
}
