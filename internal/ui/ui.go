package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"recur/internal/config"
	"recur/internal/task"
	"recur/internal/tasklist"
)

type mode int

const (
	modeList mode = iota
	modeStatus
	modeEdit
)

// board is the rendering side of the list: it holds whatever the list last
// rendered, in order.
type board struct {
	items []tasklist.Item
}

func (b *board) Render(items []tasklist.Item) {
	b.items = items
}

type Model struct {
	list   *tasklist.List
	rows   *board
	cfg    config.Config
	cursor int
	mode   mode
	status string
	styles styles
	width  int

	statusDlg *statusDialog
	editDlg   *editDialog
	// editTarget is nil while the editor is adding a new task.
	editTarget *task.Task
}

// Run attaches the list to the terminal view and runs it until quit. The
// list should already be loaded.
func Run(list *tasklist.List, cfg config.Config) error {
	rows := &board{}
	list.SetRenderer(rows)

	m := newModel(list, rows, cfg)
	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func newModel(list *tasklist.List, rows *board, cfg config.Config) Model {
	m := Model{
		list:   list,
		rows:   rows,
		cfg:    cfg,
		mode:   modeList,
		styles: newStyles(list.Theme()),
		status: fmt.Sprintf("Press '%s' to add, %s to open a task.", cfg.Keys.Add, cfg.Keys.Open),
	}
	if err := list.Refresh(); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeStatus:
			return m.updateStatusMode(msg)
		case modeEdit:
			return m.updateEditMode(msg)
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.editDlg != nil {
			m.editDlg.setWidth(msg.Width - 10)
		}
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(m.rows.items) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.rows.items))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.rows.items))
		}
	case m.cfg.Keys.Add:
		iv, err := m.cfg.Interval()
		if err != nil {
			iv = task.Weekly
		}
		return m.openEditor(nil, "", iv), nil
	case m.cfg.Keys.Open:
		t, ok := m.selected()
		if !ok {
			m.status = "No tasks"
			return m, nil
		}
		m.statusDlg = newStatusDialog(t, m.cfg.Keys)
		m.mode = modeStatus
		m.status = ""
	case m.cfg.Keys.Edit:
		t, ok := m.selected()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		return m.openEditor(t, t.Title, t.Interval), nil
	case m.cfg.Keys.Theme:
		theme, err := m.list.ToggleTheme()
		if err != nil {
			m.status = fmt.Sprintf("theme failed: %v", err)
			return m, nil
		}
		m.styles = newStyles(theme)
		m.status = "Theme: " + theme
	}
	return m, nil
}

func (m Model) updateStatusMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusDlg.Update(msg)
	res, ok := m.statusDlg.Result()
	if !ok {
		return m, nil
	}
	target := m.statusDlg.task
	m.statusDlg = nil
	m.mode = modeList

	openEditor, err := m.list.ApplyStatus(target, res)
	switch {
	case err != nil:
		m.status = fmt.Sprintf("save failed: %v", err)
	case openEditor:
		return m.openEditor(target, target.Title, target.Interval), nil
	case res.Outcome == tasklist.StatusCompleted:
		m.status = fmt.Sprintf("Completed %q", target.Title)
	default:
		m.status = ""
	}
	m.follow(target)
	return m, nil
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.editDlg.Update(msg)
	res, ok := m.editDlg.Result()
	if !ok {
		return m, cmd
	}
	target := m.editTarget
	m.editDlg = nil
	m.editTarget = nil
	m.mode = modeList

	saved, err := m.list.ApplyEdit(target, res)
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	switch res.Outcome {
	case tasklist.EditSaved:
		if target == nil {
			m.status = "Added task"
		} else {
			m.status = "Saved"
		}
	case tasklist.EditDeleted:
		if target != nil {
			m.status = fmt.Sprintf("Deleted %q", target.Title)
		}
	default:
		m.status = "Cancelled"
		saved = target
	}
	m.follow(saved)
	return m, nil
}

func (m Model) openEditor(target *task.Task, title string, iv task.Interval) Model {
	m.editDlg = newEditDialog(title, iv, m.cfg.Keys)
	if m.width > 0 {
		m.editDlg.setWidth(m.width - 10)
	}
	m.editTarget = target
	m.mode = modeEdit
	if target == nil {
		m.status = "New task"
	} else {
		m.status = "Editing task"
	}
	return m
}

func (m Model) selected() (*task.Task, bool) {
	if len(m.rows.items) == 0 {
		return nil, false
	}
	return m.rows.items[clampCursor(m.cursor, len(m.rows.items))].Task, true
}

// follow moves the cursor to t's new position after a refresh.
func (m *Model) follow(t *task.Task) {
	for i, it := range m.rows.items {
		if it.Task == t {
			m.cursor = i
			return
		}
	}
	m.cursor = clampCursor(m.cursor, len(m.rows.items))
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.header.Render("Recurring tasks"))
	b.WriteString("\n\n")

	if len(m.rows.items) == 0 {
		b.WriteString(m.styles.muted.Render(fmt.Sprintf("No tasks yet. Press '%s' to add one.", m.cfg.Keys.Add)))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	switch m.mode {
	case modeStatus:
		b.WriteString("\n")
		b.WriteString(m.statusDlg.View(m.styles, m.cfg.DateLayout))
		b.WriteString("\n")
	case modeEdit:
		b.WriteString("\n")
		b.WriteString(m.editDlg.View(m.styles))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(m.renderHelp()))

	return b.String()
}

func (m Model) renderTaskList() string {
	titleWidth := 10
	intervalWidth := 0
	for _, it := range m.rows.items {
		titleWidth = max(titleWidth, lipgloss.Width(displayTitle(it.Task.Title)))
		intervalWidth = max(intervalWidth, lipgloss.Width(it.Task.IntervalText()))
	}

	var b strings.Builder
	for i, it := range m.rows.items {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}
		marker := " "
		labelStyle := m.styles.label
		switch {
		case it.IsToday:
			marker = "●"
			labelStyle = m.styles.today
		case it.IsOverdue:
			marker = "!"
			labelStyle = m.styles.expired
		}

		title := pad(displayTitle(it.Task.Title), titleWidth)
		interval := pad(it.Task.IntervalText(), intervalWidth)
		row := fmt.Sprintf("%s %s %s  %s  %s",
			cursor,
			labelStyle.Render(marker),
			m.styles.rowStyle(m.cursor == i).Render(title),
			m.styles.interval.Render(interval),
			labelStyle.Render(it.Label),
		)
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHelp() string {
	k := m.cfg.Keys
	switch m.mode {
	case modeStatus:
		return fmt.Sprintf("%s/%s complete • %s edit • %s close", k.Complete, k.Confirm, k.Edit, k.Cancel)
	case modeEdit:
		return fmt.Sprintf("tab next field • ↑/↓ interval • %s save • %s delete • %s cancel", k.Confirm, k.Delete, k.Cancel)
	default:
		return fmt.Sprintf("%s/%s move • %s add • %s open • %s edit • %s theme • %s quit",
			k.Up, k.Down, k.Add, k.Open, k.Edit, k.Theme, k.Quit)
	}
}

func displayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
