package main

import (
	"domainimpact/internal/config"
	"domainimpact/pkg/changes"
	"domainimpact/pkg/changes/gitexec"
	"domainimpact/pkg/changes/gitrepo"
	"domainimpact/pkg/changes/namelist"
	"domainimpact/pkg/changes/unidiff"
	"fmt"
	"path/filepath"
)

// newChangeSource builds the changes.Source selected by the configuration.
// Relative diff and list files are resolved against the repository root.
func newChangeSource(cfg *config.Config) (changes.Source, error) {
	file := cfg.Changes.File
	if file != changes.Stdin && !filepath.IsAbs(file) {
		file = filepath.Join(cfg.Repository.Root, file)
	}

	switch cfg.Changes.Source {
	case config.SourceGit:
		return gitrepo.Open(cfg.Repository.Root, gitrepo.Options{
			Base:      cfg.Changes.Base,
			Head:      cfg.Changes.Head,
			MergeBase: cfg.Changes.MergeBase,
		}), nil
	case config.SourceGitExec:
		return gitexec.New(gitexec.Options{
			Dir:       cfg.Repository.Root,
			Base:      cfg.Changes.Base,
			Head:      cfg.Changes.Head,
			MergeBase: cfg.Changes.MergeBase,
		}), nil
	case config.SourcePatch:
		return unidiff.New(file), nil
	case config.SourceList:
		return namelist.New(file), nil
	default:
		return nil, fmt.Errorf("unknown changes source %q", cfg.Changes.Source)
	}
}
