// Package namelist reads changed files from a newline-separated list, as
// produced by "git diff --name-only" or a CI changed-files action.
package namelist

import (
	"bufio"
	"context"
	"domainimpact/pkg/changes"
	"domainimpact/pkg/serrors"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
)

// Source reads a file list from a file or standard input.
type Source struct {
	file  string
	stdin io.Reader
}

var _ changes.Source = (*Source)(nil)

// New returns a Source reading file, or standard input when file is changes.Stdin.
func New(file string) *Source {
	return &Source{file: file, stdin: os.Stdin}
}

// NewFromReader returns a Source reading the list from r.
func NewFromReader(r io.Reader) *Source {
	return &Source{file: changes.Stdin, stdin: r}
}

// ChangedFiles returns one path per non-blank line. Only a trailing carriage
// return is removed from a line; other surrounding spaces belong to the path.
func (s *Source) ChangedFiles(_ context.Context) ([]string, error) {
	rc, err := changes.Open(s.file, s.stdin)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrChangeSource, err, "could not open file list %q", s.file)
	}
	defer rc.Close() //nolint: errcheck

	var files []string
	sc := bufio.NewScanner(rc)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		files = append(files, line)
	}
	if err := sc.Err(); err != nil {
		return nil, serrors.Wrap(serrors.ErrChangeSource, errors.Wrap(err, "scan"), "could not read file list %q", s.file)
	}

	return changes.Normalize(files), nil
}
