// Package impact maps a change set onto release domains.
//
// Everything here is pure: the functions take immutable snapshots of the
// package manifest, the release domains and the changed files, and return new
// values. Reading those inputs from disk or from git is the job of the
// detector package.
package impact
