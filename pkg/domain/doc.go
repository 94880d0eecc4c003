// Package domain contains the core entities of the impact detector: packages
// declared in the project manifest, release domains selecting a subset of
// those packages, and the result of matching a change set against them.
// These types are intentionally free of infrastructure concerns so they can
// be shared across packages.
package domain
