package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cyberbobjr/javadoc-ai/internal/config"
	"github.com/cyberbobjr/javadoc-ai/internal/gitrepo"
	"github.com/cyberbobjr/javadoc-ai/internal/ledger"
)

type statusOutput struct {
	FirstRunPending   bool   `json:"first_run_pending"`
	LastRevision      string `json:"last_revision,omitempty"`
	LastRun           string `json:"last_run,omitempty"`
	RunsCompleted     int    `json:"runs_completed"`
	FilesProcessed    int    `json:"files_processed"`
	TypesDocumented   int    `json:"types_documented"`
	MembersDocumented int    `json:"members_documented"`
	PendingResume     int    `json:"pending_resume_files"`
}

func RunStatus(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to read --config flag: %w", err)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	repo, err := gitrepo.Open(cfg.Git.RepoPath, cfg.Git.Token)
	if err != nil {
		return fmt.Errorf("open repository %s: %w", cfg.Git.RepoPath, err)
	}
	workdir := repo.Workdir()
	repo.Free()

	ledgerPath, progressPath, err := statePaths(cfg, workdir)
	if err != nil {
		return err
	}
	ldg, err := ledger.Load(ledgerPath)
	if err != nil {
		return err
	}
	progress := ledger.LoadProgress(progressPath)

	stats := ldg.Statistics()
	out := statusOutput{
		FirstRunPending:   ldg.IsFirstRun(),
		LastRevision:      ldg.LastRevision(),
		RunsCompleted:     ldg.RunsCompleted(),
		FilesProcessed:    stats.FilesProcessed,
		TypesDocumented:   stats.TypesDocumented,
		MembersDocumented: stats.MembersDocumented,
		PendingResume:     progress.Len(),
	}
	if !ldg.LastRun().IsZero() {
		out.LastRun = ldg.LastRun().Format(time.RFC3339)
	}

	if asJSON {
		return printJSON(out)
	}

	if out.FirstRunPending {
		fmt.Println("First run pending: the next run scans every tracked Java file.")
	} else {
		fmt.Printf("Last revision: %s\n", out.LastRevision)
		fmt.Printf("Last run:      %s\n", out.LastRun)
		fmt.Printf("Runs completed: %d\n", out.RunsCompleted)
	}
	fmt.Printf("Cumulative: %d files, %d types, %d members documented\n",
		out.FilesProcessed, out.TypesDocumented, out.MembersDocumented)
	if out.PendingResume > 0 {
		fmt.Printf("Interrupted run in progress: %d files already completed\n", out.PendingResume)
	}
	return nil
}
