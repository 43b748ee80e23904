// Command matcher scores candidate and job JSON files offline. Its seed
// subcommand loads the same files into the store.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "matcher",
		Short:         "Score and rank candidates against job requirements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("out", "o", "", "Write JSON output to this file instead of stdout")
	root.PersistentFlags().Int("workers", 4, "Scoring workers for large batches")

	root.AddCommand(newMatchCmd(), newRankJobsCmd(), newRankCandidatesCmd(), newSeedCmd())
	return root
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
