package impact

import (
	"sort"
	"strings"
)

// PathIndex answers "does any changed file lie under this directory" with a
// binary search over the sorted, normalised file list. It returns the same
// answers as scanning the list with IsUnderPackage.
type PathIndex struct {
	files []string
}

// NewPathIndex builds an index over files.
func NewPathIndex(files []string) *PathIndex {
	sorted := make([]string, len(files))
	for i, f := range files {
		sorted[i] = NormalizePath(f)
	}
	sort.Strings(sorted)

	return &PathIndex{files: sorted}
}

// Len returns the number of indexed files.
func (idx *PathIndex) Len() int { return len(idx.files) }

// AnyUnder reports whether at least one indexed file is equal to packagePath
// or lies below it.
func (idx *PathIndex) AnyUnder(packagePath string) bool {
	pkg := NormalizePath(packagePath)

	// exact match
	i := sort.SearchStrings(idx.files, pkg)
	if i < len(idx.files) && idx.files[i] == pkg {
		return true
	}

	// every path with prefix pkg+"/" sorts contiguously from the first one >= prefix
	prefix := pkg + "/"
	j := sort.SearchStrings(idx.files, prefix)

	return j < len(idx.files) && strings.HasPrefix(idx.files[j], prefix)
}
