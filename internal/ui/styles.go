package ui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	primary lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	surface lipgloss.Color
	success lipgloss.Color
	warning lipgloss.Color
	danger  lipgloss.Color
}

var palettes = map[string]palette{
	"dark": {
		primary: lipgloss.Color("#7aa2f7"),
		text:    lipgloss.Color("#c0caf5"),
		muted:   lipgloss.Color("#565f89"),
		surface: lipgloss.Color("#3b4261"),
		success: lipgloss.Color("#9ece6a"),
		warning: lipgloss.Color("#e0af68"),
		danger:  lipgloss.Color("#f7768e"),
	},
	"light": {
		primary: lipgloss.Color("#2e7de9"),
		text:    lipgloss.Color("#3760bf"),
		muted:   lipgloss.Color("#848cb5"),
		surface: lipgloss.Color("#c4c8da"),
		success: lipgloss.Color("#587539"),
		warning: lipgloss.Color("#8c6c3e"),
		danger:  lipgloss.Color("#f52a65"),
	},
}

type styles struct {
	header      lipgloss.Style
	row         lipgloss.Style
	selected    lipgloss.Style
	interval    lipgloss.Style
	label       lipgloss.Style
	today       lipgloss.Style
	expired     lipgloss.Style
	muted       lipgloss.Style
	dialog      lipgloss.Style
	dialogTitle lipgloss.Style
}

func newStyles(theme string) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes["dark"]
	}
	return styles{
		header:      lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		row:         lipgloss.NewStyle().Foreground(p.text),
		selected:    lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		interval:    lipgloss.NewStyle().Foreground(p.muted),
		label:       lipgloss.NewStyle().Foreground(p.text),
		today:       lipgloss.NewStyle().Bold(true).Foreground(p.success),
		expired:     lipgloss.NewStyle().Foreground(p.danger),
		muted:       lipgloss.NewStyle().Foreground(p.muted),
		dialog:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.surface).Padding(0, 1),
		dialogTitle: lipgloss.NewStyle().Bold(true).Foreground(p.warning),
	}
}

func (s styles) rowStyle(selected bool) lipgloss.Style {
	if selected {
		return s.selected
	}
	return s.row
}
