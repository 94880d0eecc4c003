package impact

import "domainimpact/pkg/domain"

// indexThreshold is the number of changed files above which the aggregator
// switches from a linear scan to a PathIndex.
const indexThreshold = 256

// PackagePaths maps a package name to its root path.
type PackagePaths map[string]string

// NewPackagePaths builds a lookup from the manifest packages. Paths are
// normalised to forward slashes.
func NewPackagePaths(pkgs []domain.Package) PackagePaths {
	paths := make(PackagePaths, len(pkgs))
	for _, p := range pkgs {
		paths[p.Name] = NormalizePath(p.Path)
	}

	return paths
}

// Lookup returns the root path of the named package. ok is false when the
// package has no known path.
func (p PackagePaths) Lookup(name string) (path string, ok bool) {
	path, ok = p[name]

	return path, ok
}

// DetectImpactedDomains returns, in domain order, every domain that has at
// least one resolved package containing at least one of changedFiles. Each
// entry lists the changed packages in the domain's package order. Packages
// without a known path are skipped. Domains with no changed package are left
// out.
func DetectImpactedDomains(
	domains []domain.Domain,
	changedFiles []string,
	lookup PackagePaths,
) []domain.ImpactedDomain {
	impacted := make([]domain.ImpactedDomain, 0)
	if len(changedFiles) == 0 {
		return impacted
	}

	anyUnder := linearMatcher(changedFiles)
	if len(changedFiles) > indexThreshold {
		anyUnder = NewPathIndex(changedFiles).AnyUnder
	}

	for _, d := range domains {
		var changed []string
		for _, name := range d.Packages {
			path, ok := lookup.Lookup(name)
			if !ok {
				continue
			}
			if anyUnder(path) {
				changed = append(changed, name)
			}
		}

		if len(changed) == 0 {
			continue
		}

		impacted = append(impacted, domain.ImpactedDomain{
			ReleaseName:     d.ReleaseName,
			ConfigPath:      d.ConfigPath,
			ChangedPackages: changed,
		})
	}

	return impacted
}

func linearMatcher(files []string) func(string) bool {
	return func(packagePath string) bool {
		for _, f := range files {
			if IsUnderPackage(f, packagePath) {
				return true
			}
		}

		return false
	}
}
