package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"recur/internal/config"
	"recur/internal/task"
	"recur/internal/tasklist"
)

// statusDialog offers completing the task or opening the editor.
type statusDialog struct {
	task     *task.Task
	keys     config.Keymap
	result   tasklist.StatusResult
	resolved bool
}

func newStatusDialog(t *task.Task, keys config.Keymap) *statusDialog {
	return &statusDialog{task: t, keys: keys}
}

func (d *statusDialog) Update(msg tea.KeyMsg) {
	if d.resolved {
		return
	}
	switch msg.String() {
	case d.keys.Complete, d.keys.Confirm:
		d.resolve(tasklist.StatusCompleted)
	case d.keys.Edit:
		d.resolve(tasklist.StatusEditRequested)
	case d.keys.Cancel, d.keys.Quit, "ctrl+c":
		d.resolve(tasklist.StatusDismissed)
	}
}

func (d *statusDialog) resolve(o tasklist.StatusOutcome) {
	d.result = tasklist.StatusResult{Outcome: o}
	d.resolved = true
}

// Result returns the outcome once the dialog has been answered.
func (d *statusDialog) Result() (tasklist.StatusResult, bool) {
	return d.result, d.resolved
}

func (d *statusDialog) View(s styles, layout string) string {
	if layout == "" {
		layout = task.DefaultDateLayout
	}
	var b strings.Builder
	b.WriteString(s.dialogTitle.Render(displayTitle(d.task.Title)))
	b.WriteString("\n")
	b.WriteString(s.interval.Render(d.task.IntervalText()))
	b.WriteString("  ")
	b.WriteString("last done " + d.task.LastEvent.Format(layout))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("[%s] done  [%s] edit  [%s] close", d.keys.Complete, d.keys.Edit, d.keys.Cancel))
	return s.dialog.Render(b.String())
}

type editFocus int

const (
	focusTitle editFocus = iota
	focusOptions
	focusDays
)

// editDialog edits a title and an interval. It answers save, delete or
// cancel, once.
type editDialog struct {
	title    textinput.Model
	days     textinput.Model
	option   int
	focus    editFocus
	keys     config.Keymap
	err      string
	result   tasklist.EditResult
	resolved bool
}

func newEditDialog(title string, iv task.Interval, keys config.Keymap) *editDialog {
	ti := textinput.New()
	ti.Placeholder = "Task description"
	ti.CharLimit = 256
	ti.Width = 40
	ti.SetValue(title)
	ti.Focus()

	di := textinput.New()
	di.Placeholder = "days"
	di.CharLimit = 4
	di.Width = 6
	if n := iv.Days(); n > 0 {
		di.SetValue(strconv.Itoa(n))
	}

	return &editDialog{
		title:  ti,
		days:   di,
		option: task.SelectedOption(iv),
		focus:  focusTitle,
		keys:   keys,
	}
}

func (d *editDialog) setWidth(w int) {
	if w > 10 {
		d.title.Width = w
	}
}

func (d *editDialog) Update(msg tea.KeyMsg) tea.Cmd {
	if d.resolved {
		return nil
	}
	switch msg.String() {
	case d.keys.Cancel, "ctrl+c":
		d.result = tasklist.EditResult{Outcome: tasklist.EditCancelled}
		d.resolved = true
		return nil
	case d.keys.Delete:
		d.result = tasklist.EditResult{Outcome: tasklist.EditDeleted}
		d.resolved = true
		return nil
	case d.keys.Confirm:
		d.save()
		return nil
	case "tab":
		d.setFocus(d.nextFocus(1))
		return nil
	case "shift+tab":
		d.setFocus(d.nextFocus(-1))
		return nil
	}

	switch d.focus {
	case focusOptions:
		switch msg.String() {
		case "up", "left", d.keys.Up:
			d.option = wrapIndex(d.option-1, len(task.Options))
		case "down", "right", d.keys.Down:
			d.option = wrapIndex(d.option+1, len(task.Options))
		}
		return nil
	case focusDays:
		var cmd tea.Cmd
		d.days, cmd = d.days.Update(msg)
		return cmd
	default:
		var cmd tea.Cmd
		d.title, cmd = d.title.Update(msg)
		return cmd
	}
}

func (d *editDialog) nextFocus(step int) editFocus {
	n := 2
	if d.option == task.CustomOption {
		n = 3
	}
	return editFocus(wrapIndex(int(d.focus)+step, n))
}

func (d *editDialog) setFocus(f editFocus) {
	d.focus = f
	d.title.Blur()
	d.days.Blur()
	switch f {
	case focusTitle:
		d.title.Focus()
	case focusDays:
		d.days.Focus()
	}
}

func (d *editDialog) interval() (task.Interval, error) {
	if iv, ok := task.OptionInterval(d.option); ok {
		return iv, nil
	}
	raw := strings.TrimSpace(d.days.Value())
	if raw == "" {
		return task.Interval{}, fmt.Errorf("enter a number of days")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return task.Interval{}, fmt.Errorf("%q is not a whole number of days", raw)
	}
	return task.EveryDays(n)
}

func (d *editDialog) save() {
	iv, err := d.interval()
	if err != nil {
		d.err = err.Error()
		return
	}
	d.err = ""
	d.result = tasklist.EditResult{
		Outcome:  tasklist.EditSaved,
		Title:    d.title.Value(),
		Interval: iv,
	}
	d.resolved = true
}

// Result returns the outcome once the dialog has been answered.
func (d *editDialog) Result() (tasklist.EditResult, bool) {
	return d.result, d.resolved
}

func (d *editDialog) View(s styles) string {
	var b strings.Builder
	b.WriteString(d.title.View())
	b.WriteString("\n\n")
	for i, label := range task.Options {
		prefix := "  "
		if i == d.option {
			prefix = "> "
		}
		if i == task.CustomOption {
			label = "every " + d.days.View() + " days"
		}
		line := prefix + label
		switch {
		case i == d.option && d.focus == focusOptions:
			line = s.selected.Render(line)
		case i == d.option:
			line = s.label.Render(line)
		default:
			line = s.muted.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if d.err != "" {
		b.WriteString("\n")
		b.WriteString(s.expired.Render(d.err))
		b.WriteString("\n")
	}
	return s.dialog.Render(strings.TrimRight(b.String(), "\n"))
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
