// Package gitrepo computes changed files natively with go-git, without
// requiring a git binary on the runner.
package gitrepo

import (
	"context"
	"domainimpact/pkg/changes"
	"domainimpact/pkg/logger"
	"domainimpact/pkg/serrors"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.uber.org/zap"
)

// Options select the two revisions to compare.
type Options struct {
	// Base is the revision the change set starts from, e.g. "origin/main".
	Base string
	// Head is the revision the change set ends at. Defaults to "HEAD".
	Head string
	// MergeBase compares Head against the merge base of Base and Head
	// instead of Base itself, like "git diff base...head".
	MergeBase bool
}

// Source reports the files that differ between two revisions of a repository.
type Source struct {
	repo func() (*git.Repository, error)
	opts Options
}

var _ changes.Source = (*Source)(nil)

// Open returns a Source over the repository containing path (parent
// directories are searched for .git). The repository is opened on the first
// ChangedFiles call, so runs that never need changed files never touch git.
func Open(path string, opts Options) *Source {
	return newSource(sync.OnceValues(func() (*git.Repository, error) {
		repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrChangeSource, err, "could not open git repository at %q", path)
		}

		return repo, nil
	}), opts)
}

// New returns a Source over an already opened repository.
func New(repo *git.Repository, opts Options) *Source {
	return newSource(func() (*git.Repository, error) { return repo, nil }, opts)
}

func newSource(repo func() (*git.Repository, error), opts Options) *Source {
	if opts.Head == "" {
		opts.Head = "HEAD"
	}

	return &Source{repo: repo, opts: opts}
}

// ChangedFiles diffs the trees of the two revisions. Renamed files are
// reported under both their old and new path.
func (s *Source) ChangedFiles(ctx context.Context) ([]string, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}

	files, err := s.changedFiles(ctx, repo)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrChangeSource, err, "could not diff %s against %s", s.opts.Head, s.opts.Base)
	}

	return files, nil
}

func (s *Source) changedFiles(ctx context.Context, repo *git.Repository) ([]string, error) {
	if s.opts.Base == "" {
		return nil, errors.New("base revision is empty")
	}

	base, err := commit(repo, s.opts.Base)
	if err != nil {
		return nil, err
	}
	head, err := commit(repo, s.opts.Head)
	if err != nil {
		return nil, err
	}

	if s.opts.MergeBase {
		bases, err := head.MergeBase(base)
		if err != nil {
			return nil, errors.Wrap(err, "merge base")
		}
		if len(bases) == 0 {
			return nil, errors.Errorf("%s and %s have no common ancestor", s.opts.Base, s.opts.Head)
		}
		base = bases[0]
		logger.Debug(ctx, "using merge base", zap.String("commit", base.Hash.String()))
	}

	baseTree, err := base.Tree()
	if err != nil {
		return nil, errors.Wrap(err, "base tree")
	}
	headTree, err := head.Tree()
	if err != nil {
		return nil, errors.Wrap(err, "head tree")
	}

	diff, err := object.DiffTreeWithOptions(ctx, baseTree, headTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, errors.Wrap(err, "diff trees")
	}

	files := make([]string, 0, len(diff)*2)
	for _, change := range diff {
		files = append(files, change.From.Name, change.To.Name)
	}

	return changes.Normalize(files), nil
}

func commit(repo *git.Repository, rev string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %q", rev)
	}

	c, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, errors.Wrapf(err, "commit %q", rev)
	}

	return c, nil
}
