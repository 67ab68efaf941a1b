package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
)

type ListCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewListCmd creates a new list command
func NewListCmd(flags *Flags) *ListCmd {
	return &ListCmd{flags: flags}
}

// Register adds the list command to the application
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List tasks, soonest due first",
		UsageText: "recur list [--json]",
		Description: `Prints every task with its interval and due label, ordered by next event.

The row number is what 'recur done' takes. Use --json for one JSON object per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// taskInfo is the JSON output format for recur list --json.
type taskInfo struct {
	N         int       `json:"n"`
	Title     string    `json:"title"`
	Interval  string    `json:"interval"`
	LastEvent time.Time `json:"last_event"`
	NextEvent time.Time `json:"next_event"`
	Label     string    `json:"label"`
	Today     bool      `json:"today"`
	Overdue   bool      `json:"overdue"`
}

func (cmd *ListCmd) run(_ context.Context, c *cli.Command) error {
	list := cmd.flags.List
	if err := list.Refresh(); err != nil {
		return err
	}
	items := list.Items()
	out := c.Root().Writer

	if len(items) == 0 {
		if !cmd.jsonOutput {
			_, _ = fmt.Fprintln(c.Root().ErrWriter, "No tasks yet. Add one with 'recur add --title ...'")
		}
		return nil
	}

	if cmd.jsonOutput {
		enc := json.NewEncoder(out)
		for i, it := range items {
			info := taskInfo{
				N:         i + 1,
				Title:     it.Task.Title,
				Interval:  it.Task.IntervalText(),
				LastEvent: it.Task.LastEvent,
				NextEvent: it.Task.NextEvent(),
				Label:     it.Label,
				Today:     it.IsToday,
				Overdue:   it.IsOverdue,
			}
			if err := enc.Encode(info); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	var (
		num      = lipgloss.NewStyle().Width(4).Align(lipgloss.Right)
		title    = lipgloss.NewStyle().Bold(true)
		interval = lipgloss.NewStyle().Faint(true)
		today    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
		overdue  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	)

	titleWidth, intervalWidth := 0, 0
	for _, it := range items {
		titleWidth = max(titleWidth, lipgloss.Width(it.Task.Title))
		intervalWidth = max(intervalWidth, lipgloss.Width(it.Task.IntervalText()))
	}

	for i, it := range items {
		label := it.Label
		switch {
		case it.IsToday:
			label = today.Render(label)
		case it.IsOverdue:
			label = overdue.Render(label)
		}
		_, _ = fmt.Fprintf(out, "%s  %s  %s  %s\n",
			num.Render(fmt.Sprintf("%d.", i+1)),
			title.Width(titleWidth).Render(it.Task.Title),
			interval.Width(intervalWidth).Render(it.Task.IntervalText()),
			label,
		)
	}
	return nil
}
