// Package ledger persists the durable run state: the checkpoint revision of
// the last fully completed run, cumulative counters, and the per-run
// progress set that makes an interrupted run resumable.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cyberbobjr/javadoc-ai/internal/fileutil"
)

const currentVersion = "1"

// Counters accumulates totals across all completed runs.
type Counters struct {
	FilesProcessed    int `json:"files_processed"`
	TypesDocumented   int `json:"types_documented"`
	MembersDocumented int `json:"members_documented"`
}

type ledgerState struct {
	Version       string    `json:"version"`
	FirstRunDone  bool      `json:"first_run_done"`
	LastRevision  string    `json:"last_revision,omitempty"`
	LastRun       time.Time `json:"last_run,omitzero"`
	RunsCompleted int       `json:"runs_completed"`
	Statistics    Counters  `json:"statistics"`
}

// Ledger is a single-owner object: load at construction, save at each
// mutating call. It is never a process-wide singleton, so multiple working
// copies can run in one process.
type Ledger struct {
	path  string
	state ledgerState
}

// Load reads the ledger file, returning an empty ledger when none exists.
func Load(path string) (*Ledger, error) {
	l := &Ledger{path: path, state: ledgerState{Version: currentVersion}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("read ledger %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &l.state); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", path, err)
	}
	if l.state.Version == "" {
		l.state.Version = currentVersion
	}
	return l, nil
}

// IsFirstRun reports whether a run has ever completed.
func (l *Ledger) IsFirstRun() bool {
	return !l.state.FirstRunDone
}

// LastRevision returns the checkpoint revision, empty before the first
// completed run.
func (l *Ledger) LastRevision() string {
	return l.state.LastRevision
}

// Statistics returns the cumulative counters.
func (l *Ledger) Statistics() Counters {
	return l.state.Statistics
}

// RunsCompleted returns how many runs have fully completed.
func (l *Ledger) RunsCompleted() int {
	return l.state.RunsCompleted
}

// LastRun returns when the checkpoint was last advanced.
func (l *Ledger) LastRun() time.Time {
	return l.state.LastRun
}

// RecordRun advances the checkpoint after a fully completed run and adds to
// the cumulative counters. Callers must only invoke this once every file of
// the change set has been attempted and intended write-backs persisted; an
// aborted run leaves the checkpoint untouched.
func (l *Ledger) RecordRun(revision string, filesProcessed, types, members int) error {
	l.state.FirstRunDone = true
	l.state.LastRevision = revision
	l.state.LastRun = time.Now().UTC()
	l.state.RunsCompleted++
	l.state.Statistics.FilesProcessed += filesProcessed
	l.state.Statistics.TypesDocumented += types
	l.state.Statistics.MembersDocumented += members
	return l.save()
}

// Reset returns the ledger to its empty state, for operator recovery.
func (l *Ledger) Reset() error {
	l.state = ledgerState{Version: currentVersion}
	return l.save()
}

func (l *Ledger) save() error {
	data, err := json.MarshalIndent(l.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	return fileutil.WriteAtomic(l.path, data, 0644)
}
