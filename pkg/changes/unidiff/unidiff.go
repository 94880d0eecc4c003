// Package unidiff reads changed files out of a unified diff, such as the
// output of "git diff" or a pull request .diff download.
package unidiff

import (
	"context"
	"domainimpact/pkg/changes"
	"domainimpact/pkg/serrors"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/sourcegraph/go-diff/diff"
)

const devNull = "/dev/null"

// Source parses a unified diff from a file or standard input.
type Source struct {
	file  string
	stdin io.Reader
}

var _ changes.Source = (*Source)(nil)

// New returns a Source reading file, or standard input when file is changes.Stdin.
func New(file string) *Source {
	return &Source{file: file, stdin: os.Stdin}
}

// NewFromReader returns a Source reading the diff from r.
func NewFromReader(r io.Reader) *Source {
	return &Source{file: changes.Stdin, stdin: r}
}

// ChangedFiles returns the original and new name of every file in the diff.
func (s *Source) ChangedFiles(_ context.Context) ([]string, error) {
	rc, err := changes.Open(s.file, s.stdin)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrChangeSource, err, "could not open diff %q", s.file)
	}
	defer rc.Close() //nolint: errcheck

	files, err := Parse(rc)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrChangeSource, err, "could not parse diff %q", s.file)
	}

	return files, nil
}

// Parse extracts the touched paths from a multi-file unified diff.
func Parse(r io.Reader) ([]string, error) {
	fileDiffs, err := diff.NewMultiFileDiffReader(r).ReadAllFiles()
	if err != nil {
		return nil, errors.Wrap(err, "read diff")
	}

	files := make([]string, 0, len(fileDiffs)*2)
	for _, fd := range fileDiffs {
		files = append(files, stripPrefix(fd.OrigName, "a/"), stripPrefix(fd.NewName, "b/"))
	}

	return changes.Normalize(files), nil
}

func stripPrefix(name, prefix string) string {
	if name == devNull {
		return ""
	}

	return strings.TrimPrefix(name, prefix)
}
