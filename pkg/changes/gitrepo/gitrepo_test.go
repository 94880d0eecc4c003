package gitrepo_test

import (
	"context"
	"domainimpact/pkg/changes/gitrepo"
	"domainimpact/pkg/serrors"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	t    *testing.T
	repo *git.Repository
	fs   billy.Filesystem
	wt   *git.Worktree
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &testRepo{t: t, repo: repo, fs: fs, wt: wt}
}

func (r *testRepo) write(path, content string) {
	r.t.Helper()
	require.NoError(r.t, util.WriteFile(r.fs, path, []byte(content), 0o644))
	_, err := r.wt.Add(path)
	require.NoError(r.t, err)
}

func (r *testRepo) remove(path string) {
	r.t.Helper()
	_, err := r.wt.Remove(path)
	require.NoError(r.t, err)
}

func (r *testRepo) commit(msg string) string {
	r.t.Helper()
	hash, err := r.wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "ci", Email: "ci@example.com", When: time.Now()},
	})
	require.NoError(r.t, err)

	return hash.String()
}

func (r *testRepo) checkout(branch string, create bool) {
	r.t.Helper()
	require.NoError(r.t, r.wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	}))
}

func TestChangedFiles(t *testing.T) {
	r := newTestRepo(t)
	r.write("pkg-a/src/x.ts", "x")
	r.write("pkg-b/readme.md", "b")
	r.write("docs/old.md", "old")
	base := r.commit("initial")

	r.write("pkg-a/src/x.ts", "x2")
	r.write("pkg-a/src/new.ts", "new")
	r.remove("docs/old.md")
	r.commit("change")

	src := gitrepo.New(r.repo, gitrepo.Options{Base: base})
	files, err := src.ChangedFiles(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"pkg-a/src/x.ts", "pkg-a/src/new.ts", "docs/old.md"}, files)
}

func TestChangedFilesNoChanges(t *testing.T) {
	r := newTestRepo(t)
	r.write("pkg-a/x", "x")
	head := r.commit("initial")

	files, err := gitrepo.New(r.repo, gitrepo.Options{Base: head, Head: head}).ChangedFiles(context.Background())
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestChangedFilesMergeBase(t *testing.T) {
	r := newTestRepo(t)
	r.write("shared/a.txt", "a")
	r.commit("initial")

	r.checkout("feature", true)
	r.write("pkg-a/feature.ts", "f")
	r.commit("feature work")

	r.checkout("master", false)
	r.write("pkg-b/mainline.ts", "m")
	r.commit("mainline work")

	withMergeBase := gitrepo.New(r.repo, gitrepo.Options{Base: "master", Head: "feature", MergeBase: true})
	files, err := withMergeBase.ChangedFiles(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"pkg-a/feature.ts"}, files)

	direct := gitrepo.New(r.repo, gitrepo.Options{Base: "master", Head: "feature"})
	files, err = direct.ChangedFiles(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"pkg-a/feature.ts", "pkg-b/mainline.ts"}, files)
}

func TestChangedFilesUnknownRevision(t *testing.T) {
	r := newTestRepo(t)
	r.write("a", "a")
	r.commit("initial")

	_, err := gitrepo.New(r.repo, gitrepo.Options{Base: "does-not-exist"}).ChangedFiles(context.Background())
	require.ErrorIs(t, err, serrors.ErrChangeSource)

	_, err = gitrepo.New(r.repo, gitrepo.Options{}).ChangedFiles(context.Background())
	require.ErrorIs(t, err, serrors.ErrChangeSource)
}

func TestOpenNotARepository(t *testing.T) {
	src := gitrepo.Open(t.TempDir(), gitrepo.Options{Base: "main"})

	_, err := src.ChangedFiles(context.Background())
	require.ErrorIs(t, err, serrors.ErrChangeSource)
	require.Contains(t, err.Error(), "could not open git repository")
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	r := &testRepo{t: t, repo: repo, fs: wt.Filesystem, wt: wt}
	r.write("pkg-a/x.ts", "1")
	base := r.commit("base")
	r.write("pkg-b/y.ts", "1")
	r.commit("head")

	files, err := gitrepo.Open(dir, gitrepo.Options{Base: base}).ChangedFiles(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"pkg-b/y.ts"}, files)
}
