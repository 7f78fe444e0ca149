// Package runner drives one documentation run: change-set resolution,
// per-file gap extraction, comment generation, insertion, write-back, and
// ledger bookkeeping.
package runner

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/cyberbobjr/javadoc-ai/internal/changeset"
	"github.com/cyberbobjr/javadoc-ai/internal/gaps"
	"github.com/cyberbobjr/javadoc-ai/internal/generate"
	"github.com/cyberbobjr/javadoc-ai/internal/javadoc"
	"github.com/cyberbobjr/javadoc-ai/internal/javaparse"
	"github.com/cyberbobjr/javadoc-ai/internal/ledger"
	"github.com/cyberbobjr/javadoc-ai/internal/report"
)

// contextLines is the window of source passed to the generator around each
// element.
const contextLines = 10

// Provider is the full version-control contract the runner consumes: the
// resolver's view plus worktree file access.
type Provider interface {
	changeset.Provider
	CurrentRevision() (string, error)
	ReadFile(rel string) (string, error)
	WriteFile(rel, content string) error
}

// Options tunes one run.
type Options struct {
	FirstRun bool // force full enumeration regardless of the ledger
	DryRun   bool // generate and report, but never write back or advance state
	MaxFiles int  // cap on files per run, 0 = unlimited
	Workers  int  // bounded fan-out for generation calls
}

// Runner executes the pipeline against one working copy. All working-copy
// mutation happens on the calling goroutine; only generation fans out.
type Runner struct {
	provider  Provider
	resolver  *changeset.Resolver
	filter    *gaps.Filter
	generator generate.Generator
	ldg       *ledger.Ledger
	progress  *ledger.ProgressSet
	logger    *slog.Logger
	opts      Options
}

// New wires a runner from its collaborators.
func New(
	provider Provider,
	resolver *changeset.Resolver,
	filter *gaps.Filter,
	generator generate.Generator,
	ldg *ledger.Ledger,
	progress *ledger.ProgressSet,
	logger *slog.Logger,
	opts Options,
) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Runner{
		provider:  provider,
		resolver:  resolver,
		filter:    filter,
		generator: generator,
		ldg:       ldg,
		progress:  progress,
		logger:    logger,
		opts:      opts,
	}
}

// Run executes one full pass. Only per-run failures return an error; file
// and element failures are absorbed into the summary. The ledger checkpoint
// advances only after every selected file has been attempted, so an aborted
// run leaves the next change set the same or a superset.
func (r *Runner) Run(ctx context.Context) (report.Summary, error) {
	revision, err := r.provider.CurrentRevision()
	if err != nil {
		return report.Summary{}, fmt.Errorf("determine current revision: %w", err)
	}

	firstRun := r.opts.FirstRun || r.ldg.IsFirstRun()
	files, err := r.resolver.Resolve(firstRun, r.ldg.LastRevision())
	if err != nil {
		return report.Summary{}, fmt.Errorf("resolve change set: %w", err)
	}
	if r.opts.MaxFiles > 0 && len(files) > r.opts.MaxFiles {
		files = files[:r.opts.MaxFiles]
	}
	r.logger.Info("change set resolved", "files", len(files), "first_run", firstRun, "revision", revision)

	summary := report.Summary{Revision: revision, FilesConsidered: len(files)}

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			// Cancellation leaves the checkpoint untouched and the progress
			// set reflecting exactly the files completed so far.
			return summary, fmt.Errorf("run cancelled: %w", err)
		}
		if r.progress.IsDone(path) {
			r.logger.Info("skipping file completed in interrupted run", "file", path)
			continue
		}
		r.logger.Info("processing file", "file", path, "index", i+1, "total", len(files))

		detail, err := r.processFile(ctx, path)
		if err != nil {
			r.logger.Error("file failed", "file", path, "error", err)
			summary.FailedFiles = append(summary.FailedFiles, path)
			continue
		}

		if detail.Types+detail.Members > 0 {
			summary.FilesProcessed++
			summary.TypesDocumented += detail.Types
			summary.MembersDocumented += detail.Members
			summary.ElementsDocumented += detail.Types + detail.Members
			summary.PerFile = append(summary.PerFile, detail)
		}
		if !r.opts.DryRun {
			if err := r.progress.MarkDone(path); err != nil {
				r.logger.Warn("failed to persist progress", "file", path, "error", err)
			}
		}
	}

	if r.opts.DryRun {
		return summary, nil
	}

	if err := r.ldg.RecordRun(revision, summary.FilesProcessed, summary.TypesDocumented, summary.MembersDocumented); err != nil {
		return summary, fmt.Errorf("record run checkpoint: %w", err)
	}
	if err := r.progress.Clear(); err != nil {
		r.logger.Warn("failed to clear progress set", "error", err)
	}
	return summary, nil
}

// processFile annotates a single file. Element-level failures are skipped;
// any returned error means the whole file failed and nothing was persisted
// for it.
func (r *Runner) processFile(ctx context.Context, path string) (report.FileDetail, error) {
	detail := report.FileDetail{Path: path}

	content, err := r.provider.ReadFile(path)
	if err != nil {
		return detail, fmt.Errorf("read: %w", err)
	}

	elements, outcome := r.filter.Gaps(path, []byte(content))
	detail.Fallback = outcome == javaparse.OutcomeFallback
	if len(elements) == 0 {
		return detail, nil
	}
	r.logger.Info("elements needing documentation", "file", path, "count", len(elements), "extraction", outcome.String())

	insertions := r.generateAll(ctx, path, content, elements)
	if len(insertions) == 0 {
		return detail, nil
	}

	// All planned insertions were computed against original line numbers;
	// Apply replays them bottom-to-top so the recorded lines stay valid.
	updated, applied, errs := javadoc.Apply(content, insertions)
	for _, applyErr := range errs {
		r.logger.Warn("skipping element", "file", path, "error", applyErr)
	}
	if len(applied) == 0 {
		return detail, nil
	}

	if !r.opts.DryRun {
		if err := r.provider.WriteFile(path, updated); err != nil {
			return detail, fmt.Errorf("write back: %w", err)
		}
	}

	for _, ins := range applied {
		if ins.Element.Kind == javaparse.KindType {
			detail.Types++
		} else {
			detail.Members++
		}
		detail.Elements = append(detail.Elements, fmt.Sprintf("%s: %s (line %d)", ins.Element.Kind, ins.Element.Name, ins.Element.Line))
	}
	return detail, nil
}

// generateAll fans generation out across a bounded worker pool. A failed or
// empty generation skips that element only.
func (r *Runner) generateAll(ctx context.Context, path, content string, elements []javaparse.Element) []javadoc.Insertion {
	bodies := make([]string, len(elements))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, el := range elements {
		g.Go(func() error {
			codeContext := javaparse.CodeContext(content, el, contextLines)
			body, err := r.generator.Generate(gctx, el, path, codeContext)
			if err != nil {
				r.logger.Warn("generation failed, skipping element", "file", path, "element", el.Name, "error", err)
				return nil
			}
			bodies[i] = body
			return nil
		})
	}
	// Workers never return errors; Wait only observes context cancellation.
	_ = g.Wait()

	insertions := make([]javadoc.Insertion, 0, len(elements))
	for i, el := range elements {
		if bodies[i] == "" {
			continue
		}
		insertions = append(insertions, javadoc.Insertion{Element: el, Body: bodies[i]})
	}
	return insertions
}
