package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dallasheidt14/rankwatch/internal/slices"
)

func newSlicesCmd() *cobra.Command {
	var gender, ageGroup, outDir string
	cmd := &cobra.Command{
		Use:   "slices [master.csv]",
		Short: "Write per-state master index slices for one cohort",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			path, master, err := resolveMaster(arg)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = filepath.Join(flagDataRoot, "master", "slices")
			}

			res, err := slices.WriteStateSlices(master, gender, ageGroup, outDir)
			if err != nil {
				return err
			}

			fmt.Printf("master: %s\n", path)
			states := make([]string, 0, len(res.Created))
			for s := range res.Created {
				states = append(states, s)
			}
			sort.Strings(states)
			for _, s := range states {
				fmt.Printf("  %s_%s_%s_master.csv: %d teams\n", s, gender, ageGroup, res.Created[s])
			}
			fmt.Printf("created %d slice file(s) in %s\n", len(res.Created), outDir)
			for _, skipped := range res.Skipped {
				fmt.Printf("skipped %s\n", skipped)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&gender, "gender", "M", "cohort gender (M|F)")
	cmd.Flags().StringVar(&ageGroup, "age", "U11", "cohort age group, e.g. U11")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default: <data-root>/master/slices)")
	return cmd
}
