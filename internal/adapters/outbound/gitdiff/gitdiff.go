package gitdiff

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/abdidvp/reviewkit/internal/domain"
)

// Source implements domain.ChangeSource using go-git.
type Source struct{}

func New() *Source {
	return &Source{}
}

// ChangedFiles lists the files changed in rangeSpec. "A..B" compares two
// revisions; a single revision R compares R with HEAD and adds uncommitted
// changes to tracked files. Deleted and untracked files are left out. Paths
// are absolute and sorted; Root is the top of the working tree.
func (s *Source) ChangedFiles(repoPath, rangeSpec string) (domain.ChangeSet, error) {
	rangeSpec = strings.TrimSpace(rangeSpec)
	if rangeSpec == "" {
		return domain.ChangeSet{}, fmt.Errorf("empty diff range")
	}

	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return domain.ChangeSet{}, fmt.Errorf("opening git repo: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return domain.ChangeSet{}, fmt.Errorf("opening worktree: %w", err)
	}

	from, to, isRange := strings.Cut(rangeSpec, "..")
	to = strings.TrimPrefix(to, ".")
	if !isRange || to == "" {
		to = "HEAD"
	}
	if from == "" {
		return domain.ChangeSet{}, fmt.Errorf("diff range %q has no base revision", rangeSpec)
	}

	fromTree, err := treeAt(repo, from)
	if err != nil {
		return domain.ChangeSet{}, err
	}
	toTree, err := treeAt(repo, to)
	if err != nil {
		return domain.ChangeSet{}, err
	}
	changes, err := object.DiffTree(fromTree, toTree)
	if err != nil {
		return domain.ChangeSet{}, fmt.Errorf("diffing %s: %w", rangeSpec, err)
	}

	changed := make(map[string]bool)
	for _, ch := range changes {
		if ch.To.Name == "" {
			continue
		}
		changed[ch.To.Name] = true
	}

	if !isRange {
		status, err := wt.Status()
		if err != nil {
			return domain.ChangeSet{}, fmt.Errorf("reading worktree status: %w", err)
		}
		for name, st := range status {
			switch {
			case st.Worktree == git.Untracked || st.Staging == git.Untracked:
				continue
			case st.Worktree == git.Deleted || st.Staging == git.Deleted:
				delete(changed, name)
			case st.Worktree != git.Unmodified || st.Staging != git.Unmodified:
				changed[name] = true
			}
		}
	}

	root := wt.Filesystem.Root()
	files := make([]string, 0, len(changed))
	for name := range changed {
		files = append(files, filepath.Join(root, filepath.FromSlash(name)))
	}
	sort.Strings(files)
	return domain.ChangeSet{Root: root, Files: files}, nil
}

func treeAt(repo *git.Repository, rev string) (*object.Tree, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", rev, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("loading tree of %s: %w", rev, err)
	}
	return tree, nil
}
