// Package ghoutput writes step outputs in the GitHub Actions format: either
// appended to the file named by $GITHUB_OUTPUT or printed to stdout.
package ghoutput

import (
	"domainimpact/pkg/domain"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Output names produced by a detection run.
const (
	KeyHasChanges = "has-changes"
	KeyDomains    = "domains"
	KeyMatrix     = "matrix"
)

// Writer writes key/value step outputs.
type Writer struct {
	w         io.Writer
	delimiter func() string
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, delimiter: func() string { return "ghadelimiter_" + uuid.NewString() }}
}

// Open returns a Writer appending to path, or writing to stdout when path is
// empty. The returned close function must be called once done.
func Open(path string) (*Writer, func() error, error) {
	if path == "" {
		return NewWriter(os.Stdout), func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint: gosec
	if err != nil {
		return nil, nil, fmt.Errorf("could not open step output file: %w", err)
	}

	return NewWriter(f), f.Close, nil
}

// Set writes a single output. Multi-line values use the heredoc form with a
// random delimiter.
func (w *Writer) Set(key, value string) error {
	var err error
	if strings.ContainsAny(value, "\r\n") {
		delim := w.delimiter()
		_, err = fmt.Fprintf(w.w, "%s<<%s\n%s\n%s\n", key, delim, value, delim)
	} else {
		_, err = fmt.Fprintf(w.w, "%s=%s\n", key, value)
	}
	if err != nil {
		return fmt.Errorf("could not write output %s: %w", key, err)
	}

	return nil
}

// WriteOutputs writes has-changes, domains and matrix, in that order.
func (w *Writer) WriteOutputs(o domain.Outputs) error {
	for _, kv := range [][2]string{
		{KeyHasChanges, strconv.FormatBool(o.HasChanges)},
		{KeyDomains, o.Domains},
		{KeyMatrix, o.Matrix},
	} {
		if err := w.Set(kv[0], kv[1]); err != nil {
			return err
		}
	}

	return nil
}
