package domain

// Selection is the package selection rule of a release domain. A non-empty
// Include list wins over Exclude; otherwise the domain selects every known
// package except the ones listed in Exclude.
type Selection struct {
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

// Domain is an independently releasable unit defined by one release config file.
type Domain struct {
	// ReleaseName is the domain name reported in the outputs.
	ReleaseName string `json:"releaseName"`
	// ConfigPath is the path of the release config file the domain was read
	// from, relative to the repository root.
	ConfigPath string `json:"releaseConfig"`
	// Selection is the raw inclusion/exclusion rule from the config file.
	Selection Selection `json:"selection"`
	// Packages is the resolved, ordered set of package names. It is empty until
	// the domain is resolved against the package universe.
	Packages []string `json:"packages"`
}

// ImpactedDomain is a domain with at least one package touched by the change set.
type ImpactedDomain struct {
	ReleaseName string `json:"releaseName"`
	ConfigPath  string `json:"releaseConfig"`
	// ChangedPackages keeps the order of Domain.Packages.
	ChangedPackages []string `json:"changedPackages"`
}

// ImpactedNames returns the release names of impacted in order.
func ImpactedNames(impacted []ImpactedDomain) []string {
	names := make([]string, 0, len(impacted))
	for _, d := range impacted {
		names = append(names, d.ReleaseName)
	}

	return names
}
