package gitexec_test

import (
	"context"
	"domainimpact/pkg/changes/gitexec"
	"domainimpact/pkg/serrors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeGit writes an executable script that prints output and exits with code.
func fakeGit(t *testing.T, output string, code int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}

	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(out, []byte(output), 0o600))

	script := filepath.Join(dir, "git")
	content := "#!/bin/sh\ncat '" + out + "'\necho 'fatal: boom' >&2\nexit " + strconv.Itoa(code) + "\n"
	require.NoError(t, os.WriteFile(script, []byte(content), 0o700)) //nolint: gosec

	return script
}

func TestArgs(t *testing.T) {
	s := gitexec.New(gitexec.Options{Base: "origin/main", MergeBase: true})
	require.Equal(t, []string{"diff", "--name-only", "--no-renames", "-z", "origin/main...HEAD", "--"}, s.Args())

	s = gitexec.New(gitexec.Options{Base: "v1.0.0", Head: "v1.1.0"})
	require.Equal(t, []string{"diff", "--name-only", "--no-renames", "-z", "v1.0.0..v1.1.0", "--"}, s.Args())
}

func TestChangedFiles(t *testing.T) {
	bin := fakeGit(t, "pkg-a/x.ts\x00pkg b/with space.md\x00pkg-a/x.ts\x00", 0)

	files, err := gitexec.New(gitexec.Options{Binary: bin, Base: "main"}).ChangedFiles(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"pkg-a/x.ts", "pkg b/with space.md"}, files)
}

func TestChangedFilesEmpty(t *testing.T) {
	bin := fakeGit(t, "", 0)

	files, err := gitexec.New(gitexec.Options{Binary: bin, Base: "main"}).ChangedFiles(context.Background())
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestChangedFilesGitFails(t *testing.T) {
	bin := fakeGit(t, "", 2)

	_, err := gitexec.New(gitexec.Options{Binary: bin, Base: "main"}).ChangedFiles(context.Background())
	require.ErrorIs(t, err, serrors.ErrChangeSource)
	require.Contains(t, err.Error(), "fatal: boom")
}

func TestChangedFilesMissingBase(t *testing.T) {
	_, err := gitexec.New(gitexec.Options{}).ChangedFiles(context.Background())
	require.ErrorIs(t, err, serrors.ErrChangeSource)
}
