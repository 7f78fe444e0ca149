// Package cli wires the cobra command tree around the documentation runner.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "javadoc-ai",
		Short: "Generate missing javadoc comments with an LLM",
		Long: `javadoc-ai scans the Java files of a git repository for classes,
interfaces, enums, records, methods and constructors that carry no javadoc,
asks an LLM to write the missing comments, and inserts them above each
declaration without disturbing the surrounding lines.

Runs are incremental: after the first full pass only files changed since the
last recorded revision are considered. State lives under .javadoc-ai/ in the
target repository.`,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "config.yaml", "Path to the configuration file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Document undocumented Java elements in the configured repository",
		RunE:  RunRun,
	}
	runCmd.Flags().Bool("dry-run", false, "Generate and report without writing files or advancing state")
	runCmd.Flags().Bool("first-run", false, "Force a full scan regardless of recorded state")
	runCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show recorded state: checkpoint revision, runs, cumulative counters",
		RunE:  RunStatus,
	}
	statusCmd.Flags().Bool("json", false, "Print machine-readable status output")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear recorded state so the next run scans everything",
		RunE:  RunReset,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("javadoc-ai %s\n", version)
		},
	}

	rootCmd.AddCommand(
		runCmd,
		statusCmd,
		resetCmd,
		versionCmd,
	)

	return rootCmd
}
