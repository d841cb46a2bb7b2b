package commands

import (
	"github.com/sprout-cli/sprout/internal/core/config"
	"github.com/sprout-cli/sprout/internal/core/logger"
	"github.com/sprout-cli/sprout/internal/core/worktree"
)

// createManagers builds the configuration and worktree managers for the
// sprout root directory
func createManagers() (*config.Manager, *worktree.Manager, error) {
	rootDir, err := config.DefaultRootDir()
	if err != nil {
		return nil, nil, err
	}

	configManager := config.NewManager(rootDir)
	wtManager := worktree.NewManager(configManager, worktree.WithLogger(createLogger()))
	return configManager, wtManager, nil
}

// createLogger creates a logger based on CLI flags. Logs always go to
// stderr so path-printing commands stay pipeable.
func createLogger() logger.Logger {
	if flagDebug {
		return logger.New(logger.WithDebug())
	}
	return logger.New()
}
