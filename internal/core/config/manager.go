package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// ConfigFile is the filename for the sprout configuration
	ConfigFile = "config.toml"
	// MetadataFile is the filename for the worktree registry
	MetadataFile = "metadata.json"
	// WorktreesDir is the directory name holding worktree checkouts
	WorktreesDir = "worktrees"

	rootEnv         = "SPROUT_ROOT"
	defaultRootName = ".sprout"
)

// Manager handles sprout configuration and path layout
type Manager struct {
	rootDir    string
	configPath string
}

// NewManager creates a configuration manager rooted at rootDir
func NewManager(rootDir string) *Manager {
	return &Manager{
		rootDir:    rootDir,
		configPath: filepath.Join(rootDir, ConfigFile),
	}
}

// DefaultRootDir returns the sprout root directory: $SPROUT_ROOT if set,
// otherwise ~/.sprout.
func DefaultRootDir() (string, error) {
	if root := os.Getenv(rootEnv); root != "" {
		return root, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, defaultRootName), nil
}

// RootDir returns the sprout root directory
func (m *Manager) RootDir() string {
	return m.rootDir
}

// WorktreesDirPath returns the directory holding worktree checkouts
func (m *Manager) WorktreesDirPath() string {
	return filepath.Join(m.rootDir, WorktreesDir)
}

// MetadataPath returns the worktree registry file path
func (m *Manager) MetadataPath() string {
	return filepath.Join(m.rootDir, MetadataFile)
}

// ConfigPath returns the configuration file path
func (m *Manager) ConfigPath() string {
	return m.configPath
}

// Load reads the configuration from disk. A missing file yields an empty
// configuration so first runs work without any setup.
func (m *Manager) Load() (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(m.configPath, &cfg); err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, &ParseError{Path: m.configPath, Err: err}
	}
	return &cfg, nil
}

// Save writes the configuration to disk
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Get returns the value for a known config key, falling back to the
// built-in default when the file or key is absent.
func (m *Manager) Get(key string) (string, error) {
	cfg, err := m.Load()
	if err != nil {
		return "", err
	}

	switch key {
	case KeyBranchPrefix:
		return cfg.BranchPrefixValue(), nil
	default:
		return "", ErrUnknownKey{Key: key}
	}
}

// Set updates a known config key and rewrites the file
func (m *Manager) Set(key, value string) error {
	cfg, err := m.Load()
	if err != nil {
		return err
	}

	switch key {
	case KeyBranchPrefix:
		cfg.BranchPrefix = &value
	default:
		return ErrUnknownKey{Key: key}
	}

	return m.Save(cfg)
}
