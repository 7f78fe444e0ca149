// Package gitrepo implements the version-control provider on libgit2.
// It exposes the narrow contract the pipeline consumes: tracked-file
// enumeration, revision comparison, and worktree file access.
package gitrepo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
)

// Repository wraps a libgit2 repository opened on a working copy.
type Repository struct {
	repo  *git2go.Repository
	token string
}

// Open opens the working copy at path. token is used for authenticated
// pushes and may be empty for local-only use.
func Open(path, token string) (*Repository, error) {
	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}
	return &Repository{repo: repo, token: token}, nil
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// Workdir returns the working copy root.
func (r *Repository) Workdir() string {
	return r.repo.Workdir()
}

// CurrentRevision returns the hex id of the HEAD commit.
func (r *Repository) CurrentRevision() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	defer ref.Free()
	return ref.Target().String(), nil
}

// ListTrackedFiles walks the HEAD tree and returns every blob path with the
// given extension, repository-relative with forward slashes.
func (r *Repository) ListTrackedFiles(ext string) ([]string, error) {
	tree, cleanup, err := r.headTree()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var files []string
	err = r.walkTree(tree, "", func(path string) {
		if ext == "" || strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("walk HEAD tree: %w", err)
	}
	return files, nil
}

// ReadFile reads a repository-relative file from the worktree.
func (r *Repository) ReadFile(rel string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.Workdir(), filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rel, err)
	}
	return string(data), nil
}

// WriteFile writes a repository-relative file in the worktree.
func (r *Repository) WriteFile(rel, content string) error {
	path := filepath.Join(r.Workdir(), filepath.FromSlash(rel))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

func (r *Repository) headTree() (*git2go.Tree, func(), error) {
	ref, err := r.repo.Head()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	defer ref.Free()

	commit, err := r.repo.LookupCommit(ref.Target())
	if err != nil {
		return nil, nil, fmt.Errorf("lookup HEAD commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		commit.Free()
		return nil, nil, fmt.Errorf("lookup HEAD tree: %w", err)
	}

	cleanup := func() {
		tree.Free()
		commit.Free()
	}
	return tree, cleanup, nil
}

func (r *Repository) walkTree(tree *git2go.Tree, prefix string, visit func(path string)) error {
	for i := uint64(0); i < tree.EntryCount(); i++ {
		entry := tree.EntryByIndex(i)
		if entry == nil {
			continue
		}

		path := entry.Name
		if prefix != "" {
			path = prefix + "/" + path
		}

		switch entry.Type {
		case git2go.ObjectBlob:
			visit(path)
		case git2go.ObjectTree:
			sub, err := r.repo.LookupTree(entry.Id)
			if err != nil {
				return fmt.Errorf("lookup subtree %s: %w", path, err)
			}
			err = r.walkTree(sub, path, visit)
			sub.Free()
			if err != nil {
				return err
			}
		default:
			// Submodules and symlinks are not documentable sources.
		}
	}
	return nil
}
