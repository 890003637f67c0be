// Package config loads skilldock's layered configuration: embedded
// defaults, then the optional user config file, then SKILLDOCK_*
// environment variables.
package config

import (
	"github.com/skilldock/skilldock/pkg/paths"
	"github.com/skilldock/skilldock/pkg/types"
)

// Config is the resolved skilldock configuration.
type Config struct {
	// SharedDir is the canonical shared directory, home-relative unless
	// absolute.
	SharedDir string `koanf:"shared_dir" toml:"shared_dir"`

	Targets TargetsConfig `koanf:"targets" toml:"targets"`
}

// TargetsConfig groups the consumer targets by kind. Declaration order is
// processing order: simple targets first, then versioned families.
type TargetsConfig struct {
	Simple    []SimpleTarget    `koanf:"simple" toml:"simple"`
	Versioned []VersionedTarget `koanf:"versioned" toml:"versioned"`
}

// SimpleTarget is a single path that should become a symlink.
type SimpleTarget struct {
	Label string `koanf:"label" toml:"label"`
	Path  string `koanf:"path" toml:"path"`
}

// VersionedTarget is a parent directory of version-named subdirectories.
type VersionedTarget struct {
	Label string `koanf:"label" toml:"label"`
	Root  string `koanf:"root" toml:"root"`
}

// ResolveSharedDir returns the absolute shared directory path.
func (c *Config) ResolveSharedDir(p *paths.Paths) string {
	return p.Expand(c.SharedDir)
}

// ResolveTargets returns the consumer targets in declaration order with all
// paths expanded against the home directory.
func (c *Config) ResolveTargets(p *paths.Paths) []types.Target {
	targets := make([]types.Target, 0, len(c.Targets.Simple)+len(c.Targets.Versioned))
	for _, s := range c.Targets.Simple {
		targets = append(targets, types.Target{
			Path:  p.Expand(s.Path),
			Kind:  types.KindSimple,
			Label: s.Label,
		})
	}
	for _, v := range c.Targets.Versioned {
		targets = append(targets, types.Target{
			Path:  p.Expand(v.Root),
			Kind:  types.KindVersionedParent,
			Label: v.Label,
		})
	}
	return targets
}
