package main

import (
	"domainimpact/internal/config"

	"github.com/spf13/cobra"
)

// Flag names shared by the subcommands that read inputs.
const (
	flagManifest = "manifest"
	flagPattern  = "pattern"
	flagSource   = "source"
	flagBase     = "base"
	flagHead     = "head"
	flagFile     = "file"
	flagNoMerge  = "no-merge-base"
)

func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String(flagManifest, "", "Project manifest path, relative to the repository root")
	f.String(flagPattern, "", "Glob selecting release config files")
}

func addChangeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String(flagSource, "", "Where changed files come from: git, git-exec, patch or list")
	f.String(flagBase, "", "Base revision of the change set")
	f.String(flagHead, "", "Head revision of the change set")
	f.String(flagFile, "", `Diff or file list for the patch and list sources ("-" for stdin)`)
	f.Bool(flagNoMerge, false, "Diff against the base revision itself instead of the merge base")
}

// applyOverrides copies explicitly set flags over the loaded configuration.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()

	stringFlags := []struct {
		name string
		dst  *string
	}{
		{flagManifest, &cfg.Manifest.Path},
		{flagPattern, &cfg.ReleaseConfigs.Pattern},
		{flagSource, &cfg.Changes.Source},
		{flagBase, &cfg.Changes.Base},
		{flagHead, &cfg.Changes.Head},
		{flagFile, &cfg.Changes.File},
	}
	for _, s := range stringFlags {
		if f.Lookup(s.name) == nil || !f.Changed(s.name) {
			continue
		}
		v, err := f.GetString(s.name)
		if err != nil {
			return err
		}
		*s.dst = v
	}

	if f.Lookup(flagNoMerge) != nil && f.Changed(flagNoMerge) {
		noMerge, err := f.GetBool(flagNoMerge)
		if err != nil {
			return err
		}
		cfg.Changes.MergeBase = !noMerge
	}

	return cfg.Validate()
}
