package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"recur/internal/task"
)

type AddCmd struct {
	flags *Flags

	// flags
	title string
	every string
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags) *AddCmd {
	return &AddCmd{flags: flags}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a task, completed as of now",
		UsageText: "recur add --title <title> [--every <interval>]",
		Description: `Adds a task whose last completion is the current time.

--every takes once, day, week, month, year or a day count such as 3 or "every 10 days".
It defaults to the default_interval config setting.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "task title",
				Required:    true,
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "every",
				Aliases:     []string{"e"},
				Usage:       "recurrence interval (defaults to the configured default_interval)",
				Destination: &cmd.every,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(_ context.Context, c *cli.Command) error {
	every := cmd.every
	if every == "" {
		every = cmd.flags.Config.DefaultInterval
	}
	iv, err := task.ParseInterval(every)
	if err != nil {
		return fmt.Errorf("--every %q: %w", every, err)
	}

	list := cmd.flags.List
	t, err := task.New(cmd.title, iv, list.Now())
	if err != nil {
		return err
	}
	if err := list.Add(t); err != nil {
		return err
	}
	log.Debug().Str("title", t.Title).Str("interval", t.IntervalText()).Msg("task added")

	_, _ = fmt.Fprintf(c.Root().Writer, "Added %q, %s, next %s\n",
		t.Title, t.IntervalText(), t.NextEvent().Format(cmd.flags.Config.DateLayout))
	return nil
}
