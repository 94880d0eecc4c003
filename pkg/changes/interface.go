// Package changes defines where the list of changed files comes from. Each
// implementation reports paths relative to the repository root using forward
// slashes, without duplicates.
package changes

import (
	"context"
	"io"
	"os"
	"strings"
)

// Source collects the files touched by a change set.
//
//go:generate mockgen -package mockchanges -source=interface.go -destination=mock/mockchanges.go *
type Source interface {
	// ChangedFiles returns the changed paths in a stable order.
	ChangedFiles(ctx context.Context) ([]string, error)
}

// Stdin is the file name that makes file-based sources read standard input.
const Stdin = "-"

// Normalize converts separators to forward slashes, drops empty entries and
// removes duplicates while keeping the first occurrence. Paths are otherwise
// left untouched: a file name may begin or end with spaces.
func Normalize(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		f = strings.ReplaceAll(f, `\`, "/")
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}

	return out
}

// Open returns a reader for name, or stdin when name is Stdin. The caller
// must close the returned reader.
func Open(name string, stdin io.Reader) (io.ReadCloser, error) {
	if name == Stdin {
		return io.NopCloser(stdin), nil
	}

	return os.Open(name) //nolint: gosec
}
