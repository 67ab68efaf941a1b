package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"recur/internal/commands"
	"recur/internal/config"
	"recur/internal/logutils"
	"recur/internal/storage"
	"recur/internal/tasklist"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
)

func build() string {
	v, c := version, commit
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					c = s.Value
				}
			}
		}
	}
	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("%s (%s)", v, c)
}

// kvStore is what the list persists through plus a way to release it.
type kvStore interface {
	tasklist.Store
	Close() error
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		store     kvStore
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "recur",
		Usage:     "Track tasks that repeat on a schedule",
		UsageText: "recur [global options] command [command options]",
		Description: `recur keeps a list of recurring tasks, each with an interval and the time it
was last done, and shows them ordered by when they are next due.

Run 'recur' with no arguments to open the interactive list.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("RECUR_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "db",
				Usage:       "path to the task database (overrides db_path)",
				Sources:     cli.EnvVars("RECUR_DB"),
				Destination: &flags.DBPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("RECUR_LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (overrides log_file)",
				Sources:     cli.EnvVars("RECUR_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.BoolFlag{
				Name:        "ephemeral",
				Usage:       "keep tasks in memory only; nothing is read or written",
				Sources:     cli.EnvVars("RECUR_EPHEMERAL"),
				Destination: &flags.Ephemeral,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.LoadOrCreate(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.DBPath != "" {
				cfg.DBPath = flags.DBPath
			}
			if flags.LogLevel != "" {
				cfg.LogLevel = flags.LogLevel
			}
			if flags.LogFile != "" {
				cfg.LogFile = flags.LogFile
			}
			flags.Config = cfg

			logger, closer, err := logutils.New(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			if flags.Ephemeral {
				store = storage.NewMemory()
			} else {
				db, err := storage.Open(cfg.DBPath)
				if err != nil {
					if storage.IsBusy(err) {
						return ctx, fmt.Errorf("open database: %s is locked by another recur process", cfg.DBPath)
					}
					return ctx, fmt.Errorf("open database: %w", err)
				}
				store = db
			}
			log.Debug().Str("db", cfg.DBPath).Bool("ephemeral", flags.Ephemeral).Msg("store opened")

			flags.List = tasklist.New(store, nil, tasklist.Options{
				DateLayout: cfg.DateLayout,
				Logger:     log.Logger,
				Theme:      cfg.Theme,
			})
			if err := flags.List.Load(); err != nil {
				if storage.IsBusy(err) {
					return ctx, fmt.Errorf("read tasks: %s is locked by another recur process", cfg.DBPath)
				}
				return ctx, err
			}

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if store != nil {
				if err := store.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)

	app = commands.NewListCmd(flags).Register(app)
	app = commands.NewAddCmd(flags).Register(app)
	app = commands.NewDoneCmd(flags).Register(app)
	app = commands.NewExportCmd(flags).Register(app)

	// TUI is the default action when no subcommand is provided
	app.Action = tuiCmd.Run

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
