package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cyberbobjr/javadoc-ai/internal/changeset"
	"github.com/cyberbobjr/javadoc-ai/internal/config"
	"github.com/cyberbobjr/javadoc-ai/internal/exclude"
	"github.com/cyberbobjr/javadoc-ai/internal/gaps"
	"github.com/cyberbobjr/javadoc-ai/internal/generate"
	"github.com/cyberbobjr/javadoc-ai/internal/gitrepo"
	"github.com/cyberbobjr/javadoc-ai/internal/javaparse"
	"github.com/cyberbobjr/javadoc-ai/internal/ledger"
	"github.com/cyberbobjr/javadoc-ai/internal/report"
	"github.com/cyberbobjr/javadoc-ai/internal/runner"
)

const javaExtension = ".java"

func RunRun(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to read --config flag: %w", err)
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to read --dry-run flag: %w", err)
	}
	firstRun, err := cmd.Flags().GetBool("first-run")
	if err != nil {
		return fmt.Errorf("failed to read --first-run flag: %w", err)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to read --json flag: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Logging.Level)

	repo, err := gitrepo.Open(cfg.Git.RepoPath, cfg.Git.Token)
	if err != nil {
		return fmt.Errorf("open repository %s: %w", cfg.Git.RepoPath, err)
	}
	defer repo.Free()

	date := time.Now().Format("2006-01-02")
	branch := ""
	if !dryRun {
		branch, err = repo.CheckoutRunBranch(cfg.Git.BaseBranch, date)
		if err != nil {
			return fmt.Errorf("prepare documentation branch: %w", err)
		}
		logger.Info("checked out documentation branch", "branch", branch)
	}

	ledgerPath, progressPath, err := statePaths(cfg, repo.Workdir())
	if err != nil {
		return err
	}
	ldg, err := ledger.Load(ledgerPath)
	if err != nil {
		return err
	}
	progress := ledger.LoadProgress(progressPath)
	if progress.Len() > 0 {
		logger.Info("resuming interrupted run", "completed_files", progress.Len())
	}

	gen, err := generate.NewOpenAI(generate.OpenAIOptions{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	}, logger)
	if err != nil {
		return err
	}

	matcher := exclude.NewMatcher(cfg.Processing.ExcludePatterns)
	extractor := javaparse.NewExtractor(logger)
	filter := gaps.NewFilter(extractor, matcher, cfg.Processing.MaxElementsPerFile)
	resolver := changeset.NewResolver(repo, matcher, javaExtension, logger)

	r := runner.New(repo, resolver, filter, gen, ldg, progress, logger, runner.Options{
		FirstRun: firstRun,
		DryRun:   dryRun,
		MaxFiles: cfg.Processing.MaxFiles,
		Workers:  cfg.LLM.Workers,
	})

	summary, runErr := r.Run(cmd.Context())
	summary.Date = date
	summary.Branch = branch
	if runErr != nil {
		return runErr
	}

	if !dryRun && summary.ElementsDocumented > 0 {
		message := fmt.Sprintf("Add generated javadoc comments - %s", date)
		committed, err := repo.CommitAll(message, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
		if err != nil {
			return fmt.Errorf("commit documentation changes: %w", err)
		}
		if committed && cfg.Git.Push {
			if err := repo.Push(branch); err != nil {
				return fmt.Errorf("push %s: %w", branch, err)
			}
			logger.Info("pushed documentation branch", "branch", branch)
		}
	}

	sendReports(cmd, cfg, summary, logger)

	if asJSON {
		return printJSON(summary)
	}
	fmt.Print(report.RenderText(summary))
	return nil
}

// sendReports delivers the summary to every enabled sink. Sink failures are
// logged, never fatal: the documentation work already happened.
func sendReports(cmd *cobra.Command, cfg *config.Config, summary report.Summary, logger *slog.Logger) {
	var sinks []report.Sink
	if cfg.Email.Enabled {
		sinks = append(sinks, &report.EmailSink{
			Host:       cfg.Email.Host,
			Port:       cfg.Email.Port,
			From:       cfg.Email.From,
			Password:   cfg.Email.Password,
			Recipients: cfg.Email.Recipients,
			Subject:    cfg.Email.Subject,
		})
	}
	if cfg.Teams.Enabled {
		sinks = append(sinks, &report.TeamsSink{WebhookURL: cfg.Teams.WebhookURL})
	}

	for _, sink := range sinks {
		if err := sink.Send(cmd.Context(), summary); err != nil {
			logger.Warn("report delivery failed", "sink", sink.Name(), "error", err)
			fmt.Fprintf(os.Stderr, "warning: %s report failed: %v\n", sink.Name(), err)
		}
	}
}
