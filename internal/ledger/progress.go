package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/cyberbobjr/javadoc-ai/internal/fileutil"
)

// ProgressSet records which files of the current in-progress run have
// already been annotated, scoped to one working copy. Every mutation is
// persisted immediately so a restarted process skips completed files.
type ProgressSet struct {
	path string
	done map[string]bool
}

type progressState struct {
	DoneFiles []string `json:"done_files"`
}

// LoadProgress reads the progress file, returning an empty set when none
// exists or the file is unreadable; resume is best-effort by design.
func LoadProgress(path string) *ProgressSet {
	p := &ProgressSet{path: path, done: make(map[string]bool)}

	data, err := os.ReadFile(path)
	if err != nil {
		return p
	}
	var state progressState
	if err := json.Unmarshal(data, &state); err != nil {
		return p
	}
	for _, f := range state.DoneFiles {
		p.done[f] = true
	}
	return p
}

// IsDone reports whether a file was already annotated in this run.
func (p *ProgressSet) IsDone(path string) bool {
	return p.done[path]
}

// MarkDone records a completed file and persists the set at once.
func (p *ProgressSet) MarkDone(path string) error {
	p.done[path] = true
	return p.save()
}

// Len returns the number of completed files.
func (p *ProgressSet) Len() int {
	return len(p.done)
}

// Clear removes the progress file once the run finishes successfully.
func (p *ProgressSet) Clear() error {
	p.done = make(map[string]bool)
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove progress file %s: %w", p.path, err)
	}
	return nil
}

func (p *ProgressSet) save() error {
	files := make([]string, 0, len(p.done))
	for f := range p.done {
		files = append(files, f)
	}
	sort.Strings(files)

	data, err := json.MarshalIndent(progressState{DoneFiles: files}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	return fileutil.WriteAtomic(p.path, data, 0644)
}
