package domain

// Warning describes an input that was skipped without failing the run, such as
// a release config file with invalid YAML.
type Warning struct {
	// Source is the file the warning refers to.
	Source string `json:"source"`
	// Message is a human-readable reason.
	Message string `json:"message"`
}

// Outputs is the externally observable result of a detection run, encoded the
// way CI step outputs expect it.
type Outputs struct {
	// HasChanges is true when at least one domain is impacted.
	HasChanges bool
	// Domains is a JSON array of impacted domain names.
	Domains string
	// Matrix is a JSON object of the form {"include":[{"domain":..,"release-config":..}]}.
	Matrix string
}

// Stats holds counters collected during a run.
type Stats struct {
	ConfigFiles      int
	DomainsEvaluated int
	ChangedFiles     int
}

// Result carries everything a detection run produced back to the caller,
// including the warnings it absorbed.
type Result struct {
	Impacted []ImpactedDomain
	Outputs  Outputs
	Warnings []Warning
	Stats    Stats
}
