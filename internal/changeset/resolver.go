// Package changeset decides which files a run must process: the full
// tracked set on a first run, or the files touched since the last
// checkpoint on incremental runs.
package changeset

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/cyberbobjr/javadoc-ai/internal/exclude"
)

// ErrRevisionUnavailable signals that the checkpoint revision cannot be
// compared against head, e.g. it no longer exists locally. The resolver
// degrades to full enumeration instead of failing the run.
var ErrRevisionUnavailable = errors.New("revision unavailable for comparison")

// Provider is the narrow version-control contract the resolver consumes.
type Provider interface {
	// ListTrackedFiles returns every tracked file with the given extension.
	ListTrackedFiles(ext string) ([]string, error)
	// ChangedFilesSince returns files added or modified between revision
	// and head, dropping deletions. Errors wrapping ErrRevisionUnavailable
	// mean the comparison could not be computed.
	ChangedFilesSince(revision string) ([]string, error)
}

// Resolver computes the file set for one run.
type Resolver struct {
	provider  Provider
	matcher   *exclude.Matcher
	extension string
	logger    *slog.Logger
}

// NewResolver builds a resolver for files of the given extension.
func NewResolver(provider Provider, matcher *exclude.Matcher, extension string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{provider: provider, matcher: matcher, extension: extension, logger: logger}
}

// Resolve returns the change set. firstRun forces full enumeration; so does
// an empty lastRevision or an unusable one. An empty result is a valid
// "nothing to do" outcome, not an error.
func (r *Resolver) Resolve(firstRun bool, lastRevision string) ([]string, error) {
	if firstRun || lastRevision == "" {
		return r.fullEnumeration()
	}

	changed, err := r.provider.ChangedFilesSince(lastRevision)
	if err != nil {
		if !errors.Is(err, ErrRevisionUnavailable) {
			r.logger.Warn("history comparison failed, treating revision as unavailable", "revision", lastRevision, "error", err)
		} else {
			r.logger.Warn("checkpoint revision unavailable, processing all tracked files", "revision", lastRevision)
		}
		return r.fullEnumeration()
	}
	return r.filter(changed), nil
}

func (r *Resolver) fullEnumeration() ([]string, error) {
	files, err := r.provider.ListTrackedFiles(r.extension)
	if err != nil {
		return nil, fmt.Errorf("enumerate tracked files: %w", err)
	}
	return r.filter(files), nil
}

func (r *Resolver) filter(files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		if r.extension != "" && !strings.HasSuffix(f, r.extension) {
			continue
		}
		if r.matcher != nil && r.matcher.Match(f) {
			continue
		}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
