package domain

// Package is a named unit of source code declared in the project manifest.
type Package struct {
	// Name uniquely identifies the package within the manifest.
	Name string `json:"name"`
	// Path is the package root directory relative to the repository root,
	// always using forward slashes.
	Path string `json:"path"`
}

// PackageNames returns the names of pkgs in manifest order. The result is the
// package universe every release domain selects from.
func PackageNames(pkgs []Package) []string {
	names := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		names = append(names, p.Name)
	}

	return names
}
