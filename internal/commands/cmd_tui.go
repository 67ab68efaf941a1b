package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"recur/internal/ui"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 0 {
		return fmt.Errorf("unknown command %q. Run 'recur --help' for usage", c.Args().First())
	}
	if err := ui.Run(cmd.flags.List, cmd.flags.Config); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
