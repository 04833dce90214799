package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for protravel.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "protravel",
		Short: "Recursive file exfiltration through path traversal",
		Long: `protravel mirrors files from a host with a path traversal vulnerability.

Each fetched file is stored under the output directory and scanned for
references to further paths, which are queued and fetched in turn. Progress
is saved in the output directory so an interrupted crawl resumes where it
stopped.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
