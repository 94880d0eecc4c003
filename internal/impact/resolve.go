package impact

import "domainimpact/pkg/domain"

// ResolveDomainPackages returns the ordered set of package names selected by
// sel out of universe.
//
// A non-empty Include list takes precedence: the result is Include filtered to
// names present in universe, in Include order. Otherwise the result is
// universe minus Exclude, in universe order. Unknown names are dropped
// silently in both forms.
func ResolveDomainPackages(sel domain.Selection, universe []string) []string {
	known := make(map[string]struct{}, len(universe))
	for _, name := range universe {
		known[name] = struct{}{}
	}

	if len(sel.Include) > 0 {
		resolved := make([]string, 0, len(sel.Include))
		seen := make(map[string]struct{}, len(sel.Include))
		for _, name := range sel.Include {
			if _, ok := known[name]; !ok {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			resolved = append(resolved, name)
		}

		return resolved
	}

	excluded := make(map[string]struct{}, len(sel.Exclude))
	for _, name := range sel.Exclude {
		excluded[name] = struct{}{}
	}

	resolved := make([]string, 0, len(universe))
	seen := make(map[string]struct{}, len(universe))
	for _, name := range universe {
		if _, ok := excluded[name]; ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		resolved = append(resolved, name)
	}

	return resolved
}

// ResolveDomains returns a copy of domains with Packages resolved against universe.
func ResolveDomains(domains []domain.Domain, universe []string) []domain.Domain {
	resolved := make([]domain.Domain, len(domains))
	for i, d := range domains {
		d.Packages = ResolveDomainPackages(d.Selection, universe)
		resolved[i] = d
	}

	return resolved
}
