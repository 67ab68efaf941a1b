package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"
)

type DoneCmd struct {
	flags *Flags
}

// NewDoneCmd creates a new done command
func NewDoneCmd(flags *Flags) *DoneCmd {
	return &DoneCmd{flags: flags}
}

// Register adds the done command to the application
func (cmd *DoneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "done",
		Usage:     "Mark a task completed now",
		UsageText: "recur done <n>",
		Description: `Completes the task at row n of 'recur list' (1-based).

Its next event moves one interval past the current time.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *DoneCmd) run(_ context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one task number, got %d arguments", c.Args().Len())
	}
	n, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return fmt.Errorf("task number %q: %w", c.Args().First(), err)
	}

	list := cmd.flags.List
	// Refresh first so n matches the order 'recur list' shows.
	if err := list.Refresh(); err != nil {
		return err
	}
	t, ok := list.At(n - 1)
	if !ok {
		return fmt.Errorf("no task %d (have %d)", n, list.Len())
	}
	if err := list.Complete(t); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Completed %q, next %s\n",
		t.Title, t.NextEvent().Format(cmd.flags.Config.DateLayout))
	return nil
}
