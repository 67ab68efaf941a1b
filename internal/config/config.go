package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"recur/internal/task"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "recur.db"
	DefaultLogName        = "recur.log"
	appDir                = "recur"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Add      string `toml:"add"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Open     string `toml:"open"`
	Complete string `toml:"complete"`
	Edit     string `toml:"edit"`
	Delete   string `toml:"delete"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
	Theme    string `toml:"theme"`
}

type Config struct {
	DBPath          string `toml:"db_path"`
	Theme           string `toml:"theme"`
	DateLayout      string `toml:"date_layout"`
	DefaultInterval string `toml:"default_interval"`
	LogLevel        string `toml:"log_level"`
	LogFile         string `toml:"log_file"`
	Keys            Keymap `toml:"keys"`
}

// ResolveConfigPath returns $RECUR_CONFIG, or config.toml under the user
// config directory, or config.toml in the working directory as a last resort.
func ResolveConfigPath() string {
	if p := os.Getenv("RECUR_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDir, DefaultConfigFileName)
}

// DataDir is where the database and log live by default.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", appDir)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Theme != "dark" && c.Theme != "light" {
		return fmt.Errorf("theme must be dark or light, got %q", c.Theme)
	}
	if _, err := c.Interval(); err != nil {
		return fmt.Errorf("default_interval: %w", err)
	}
	return nil
}

// Interval is the parsed default interval offered when adding a task.
func (c Config) Interval() (task.Interval, error) {
	return task.ParseInterval(c.DefaultInterval)
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.DateLayout == "" {
		c.DateLayout = def.DateLayout
	}
	if c.DefaultInterval == "" {
		c.DefaultInterval = def.DefaultInterval
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	dataDir := DataDir()
	return Config{
		DBPath:          filepath.Join(dataDir, DefaultDBName),
		Theme:           "dark",
		DateLayout:      task.DefaultDateLayout,
		DefaultInterval: "7",
		LogLevel:        "info",
		LogFile:         filepath.Join(dataDir, DefaultLogName),
		Keys: Keymap{
			Quit:     "q",
			Add:      "a",
			Up:       "k",
			Down:     "j",
			Open:     "enter",
			Complete: "c",
			Edit:     "e",
			Delete:   "ctrl+d",
			Confirm:  "enter",
			Cancel:   "esc",
			Theme:    "t",
		},
	}
}
