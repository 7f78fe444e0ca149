package gitrepo

import (
	"fmt"
	"time"

	git2go "github.com/libgit2/git2go/v34"
)

// DocumentationBranchName renders the branch a run commits to.
func DocumentationBranchName(base, date string) string {
	return fmt.Sprintf("%s_documented_%s", base, date)
}

// CheckoutRunBranch creates (or reuses) the documentation branch off the
// current HEAD and checks it out. Returns the branch name.
func (r *Repository) CheckoutRunBranch(base, date string) (string, error) {
	name := DocumentationBranchName(base, date)

	branch, err := r.repo.LookupBranch(name, git2go.BranchLocal)
	if err != nil {
		ref, headErr := r.repo.Head()
		if headErr != nil {
			return "", fmt.Errorf("resolve HEAD: %w", headErr)
		}
		commit, lookupErr := r.repo.LookupCommit(ref.Target())
		ref.Free()
		if lookupErr != nil {
			return "", fmt.Errorf("lookup HEAD commit: %w", lookupErr)
		}
		branch, err = r.repo.CreateBranch(name, commit, false)
		commit.Free()
		if err != nil {
			return "", fmt.Errorf("create branch %s: %w", name, err)
		}
	}
	branch.Free()

	if err := r.repo.SetHead("refs/heads/" + name); err != nil {
		return "", fmt.Errorf("set HEAD to %s: %w", name, err)
	}
	err = r.repo.CheckoutHead(&git2go.CheckoutOptions{Strategy: git2go.CheckoutSafe})
	if err != nil {
		return "", fmt.Errorf("checkout %s: %w", name, err)
	}
	return name, nil
}

// CommitAll stages every modified tracked file and commits. Returns false
// without committing when the worktree holds no changes.
func (r *Repository) CommitAll(message, authorName, authorEmail string) (bool, error) {
	idx, err := r.repo.Index()
	if err != nil {
		return false, fmt.Errorf("open index: %w", err)
	}
	defer idx.Free()

	if err := idx.UpdateAll([]string{"."}, nil); err != nil {
		return false, fmt.Errorf("stage modified files: %w", err)
	}
	if err := idx.Write(); err != nil {
		return false, fmt.Errorf("write index: %w", err)
	}

	treeOid, err := idx.WriteTree()
	if err != nil {
		return false, fmt.Errorf("write tree: %w", err)
	}

	ref, err := r.repo.Head()
	if err != nil {
		return false, fmt.Errorf("resolve HEAD: %w", err)
	}
	defer ref.Free()

	parent, err := r.repo.LookupCommit(ref.Target())
	if err != nil {
		return false, fmt.Errorf("lookup HEAD commit: %w", err)
	}
	defer parent.Free()

	parentTree, err := parent.Tree()
	if err != nil {
		return false, fmt.Errorf("lookup HEAD tree: %w", err)
	}
	sameTree := treeOid.Equal(parentTree.Id())
	parentTree.Free()
	if sameTree {
		return false, nil
	}

	tree, err := r.repo.LookupTree(treeOid)
	if err != nil {
		return false, fmt.Errorf("lookup new tree: %w", err)
	}
	defer tree.Free()

	sig := &git2go.Signature{Name: authorName, Email: authorEmail, When: time.Now()}
	if _, err := r.repo.CreateCommit("HEAD", sig, sig, message, tree, parent); err != nil {
		return false, fmt.Errorf("create commit: %w", err)
	}
	return true, nil
}

// Push pushes the branch to origin, authenticating with the configured
// token when one is present.
func (r *Repository) Push(branch string) error {
	remote, err := r.repo.Remotes.Lookup("origin")
	if err != nil {
		return fmt.Errorf("lookup remote origin: %w", err)
	}
	defer remote.Free()

	opts := &git2go.PushOptions{}
	if r.token != "" {
		opts.RemoteCallbacks = git2go.RemoteCallbacks{
			CredentialsCallback: func(url, usernameFromURL string, allowedTypes git2go.CredentialType) (*git2go.Credential, error) {
				return git2go.NewCredentialUserpassPlaintext("oauth2", r.token)
			},
		}
	}

	refspec := fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch)
	if err := remote.Push([]string{refspec}, opts); err != nil {
		return fmt.Errorf("push %s: %w", branch, err)
	}
	return nil
}
