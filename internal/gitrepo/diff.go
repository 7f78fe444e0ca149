package gitrepo

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/cyberbobjr/javadoc-ai/internal/changeset"
)

// ChangedFilesSince returns files added or modified between revision and
// HEAD. Deleted files are dropped: there is nothing left to annotate. An
// unresolvable revision is reported as changeset.ErrRevisionUnavailable so
// the resolver can degrade to full enumeration.
func (r *Repository) ChangedFilesSince(revision string) ([]string, error) {
	obj, err := r.repo.RevparseSingle(revision)
	if err != nil {
		return nil, fmt.Errorf("revision %q: %w", revision, changeset.ErrRevisionUnavailable)
	}
	defer obj.Free()

	oldCommit, err := obj.AsCommit()
	if err != nil {
		return nil, fmt.Errorf("revision %q is not a commit: %w", revision, changeset.ErrRevisionUnavailable)
	}

	oldTree, err := oldCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("tree of %q: %w", revision, err)
	}
	defer oldTree.Free()

	newTree, cleanup, err := r.headTree()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return nil, fmt.Errorf("diff options: %w", err)
	}

	diff, err := r.repo.DiffTreeToTree(oldTree, newTree, &opts)
	if err != nil {
		return nil, fmt.Errorf("diff %q..HEAD: %w", revision, err)
	}
	defer diff.Free()

	numDeltas, err := diff.NumDeltas()
	if err != nil {
		return nil, fmt.Errorf("count deltas: %w", err)
	}

	files := make([]string, 0, numDeltas)
	for i := 0; i < numDeltas; i++ {
		delta, err := diff.Delta(i)
		if err != nil {
			continue
		}
		switch delta.Status {
		case git2go.DeltaAdded, git2go.DeltaModified, git2go.DeltaRenamed, git2go.DeltaCopied:
			files = append(files, delta.NewFile.Path)
		}
	}
	return files, nil
}
