package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"recur/internal/calendar"
)

type ExportCmd struct {
	flags *Flags

	// flags
	out string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{flags: flags}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export tasks as an iCalendar file",
		UsageText: "recur export [--out tasks.ics]",
		Description: `Writes one repeating all-day event per task, starting at its next event.

Without --out the calendar is written to stdout.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "file to write (default stdout)",
				Destination: &cmd.out,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(_ context.Context, c *cli.Command) error {
	list := cmd.flags.List
	ics := calendar.Build(list.Tasks(), list.Now())

	if cmd.out == "" {
		_, err := fmt.Fprint(c.Root().Writer, ics)
		return err
	}
	if err := os.WriteFile(cmd.out, []byte(ics), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cmd.out, err)
	}
	log.Info().Str("path", cmd.out).Int("tasks", list.Len()).Msg("exported calendar")
	_, _ = fmt.Fprintf(c.Root().Writer, "Wrote %d tasks to %s\n", list.Len(), cmd.out)
	return nil
}
