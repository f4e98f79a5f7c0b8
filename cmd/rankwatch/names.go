package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dallasheidt14/rankwatch/internal/ranking"
)

func newNamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "names [master.csv]",
		Short: "Club-indicator patterns across master index team names",
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
			names := make([]string, len(master))
			for i, m := range master {
				names[i] = m.TeamName
			}
			rep := ranking.AnalyzeNames(names)

			fmt.Printf("snapshot: %s\n", path)
			fmt.Printf("teams: %d total, %d distinct names\n\n", rep.Total, rep.Distinct)
			for _, p := range rep.Patterns {
				fmt.Printf("%-9s %d\n", p.Pattern, p.Count)
				for _, s := range p.Samples {
					fmt.Printf("          - %s\n", s)
				}
			}
			return nil
		},
	}
	return cmd
}
