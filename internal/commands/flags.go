package commands

import (
	"recur/internal/config"
	"recur/internal/tasklist"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DBPath     string
	Ephemeral  bool

	// Config is loaded in the Before hook and available to all commands
	Config config.Config

	// List is loaded from the store in the Before hook
	List *tasklist.List
}

// DefaultConfigPath returns $RECUR_CONFIG or config.toml under the user
// config directory.
func DefaultConfigPath() string {
	return config.ResolveConfigPath()
}
