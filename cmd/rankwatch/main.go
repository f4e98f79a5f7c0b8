// Command rankwatch is the console side of the diagnostics: what used to be
// a pile of one-off analysis scripts, as subcommands over the same core.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagDataRoot string
	flagWeights  string
)

func main() {
	root := &cobra.Command{
		Use:           "rankwatch",
		Short:         "Diagnostics for ranking pipeline snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagDataRoot, "data-root", "./data", "pipeline export directory")
	root.PersistentFlags().StringVar(&flagWeights, "weights", "", "ranking config YAML with blend weights")

	root.AddCommand(
		newStateRanksCmd(),
		newTeamCmd(),
		newComponentsCmd(),
		newNamesCmd(),
		newSlicesCmd(),
		newIngestCmd(),
		newSnapshotsCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
