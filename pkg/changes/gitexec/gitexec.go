// Package gitexec collects changed files by running "git diff --name-only"
// as a subprocess. It honours every git setting of the runner (shallow
// clones, grafts, worktrees) that the native implementation may not.
package gitexec

import (
	"bufio"
	"bytes"
	"context"
	"domainimpact/pkg/changes"
	"domainimpact/pkg/logger"
	"domainimpact/pkg/serrors"
	"os/exec"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// Options configure the git invocation.
type Options struct {
	// Binary is the git executable. Defaults to "git".
	Binary string
	// Dir is the working directory of the subprocess.
	Dir string
	// Base is the revision the change set starts from.
	Base string
	// Head is the revision the change set ends at. Defaults to "HEAD".
	Head string
	// MergeBase uses the three-dot form "base...head".
	MergeBase bool
}

// Source runs git to list changed files.
type Source struct {
	opts Options
}

var _ changes.Source = (*Source)(nil)

// New returns a Source with defaults applied.
func New(opts Options) *Source {
	if opts.Binary == "" {
		opts.Binary = "git"
	}
	if opts.Head == "" {
		opts.Head = "HEAD"
	}

	return &Source{opts: opts}
}

// Args returns the arguments passed to git.
func (s *Source) Args() []string {
	sep := ".."
	if s.opts.MergeBase {
		sep = "..."
	}

	return []string{"diff", "--name-only", "--no-renames", "-z", s.opts.Base + sep + s.opts.Head, "--"}
}

// ChangedFiles runs git and parses its NUL-separated output.
func (s *Source) ChangedFiles(ctx context.Context) ([]string, error) {
	if s.opts.Base == "" {
		return nil, serrors.With(serrors.ErrChangeSource, "base revision is empty")
	}

	args := s.Args()
	logger.Debug(ctx, "running git", zap.String("binary", s.opts.Binary), zap.Strings("args", args))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.opts.Binary, args...) //nolint: gosec
	cmd.Dir = s.opts.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "git"
		}

		return nil, serrors.Wrap(serrors.ErrChangeSource, errors.Wrap(err, msg), "git diff failed")
	}

	files, err := parse(stdout.Bytes())
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrChangeSource, err, "could not parse git output")
	}

	return changes.Normalize(files), nil
}

func parse(out []byte) ([]string, error) {
	var files []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(splitNUL)
	for sc.Scan() {
		files = append(files, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scan")
	}

	return files, nil
}

// splitNUL is a bufio.SplitFunc for NUL-terminated records.
func splitNUL(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}

	return 0, nil, nil
}
