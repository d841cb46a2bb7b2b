// Package config provides sprout's user configuration and the fixed
// filesystem layout under the sprout root directory.
package config

// DefaultBranchPrefix is prepended to branch names when branch_prefix is unset.
const DefaultBranchPrefix = "sprout/"

// Config holds user preferences stored in config.toml.
//
// BranchPrefix is a pointer so that an explicitly configured empty prefix
// (branch name equals the worktree name) can be told apart from an absent key
// (built-in default applies).
type Config struct {
	BranchPrefix *string `toml:"branch_prefix,omitempty"`
}

// BranchPrefixValue returns the configured prefix or the built-in default.
func (c *Config) BranchPrefixValue() string {
	if c == nil || c.BranchPrefix == nil {
		return DefaultBranchPrefix
	}
	return *c.BranchPrefix
}

// Keys users can read and write via `sprout config`.
const KeyBranchPrefix = "branch_prefix"
