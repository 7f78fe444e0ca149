package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cyberbobjr/javadoc-ai/internal/config"
	"github.com/cyberbobjr/javadoc-ai/internal/gitrepo"
	"github.com/cyberbobjr/javadoc-ai/internal/ledger"
)

func RunReset(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to read --config flag: %w", err)
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
	if err := ldg.Reset(); err != nil {
		return fmt.Errorf("reset ledger: %w", err)
	}
	if err := ledger.LoadProgress(progressPath).Clear(); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}

	fmt.Println("State cleared. The next run scans every tracked Java file.")
	return nil
}
