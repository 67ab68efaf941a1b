package tasklist

import (
	"recur/internal/task"
)

type EditOutcome int

const (
	EditCancelled EditOutcome = iota
	EditSaved
	EditDeleted
)

// EditResult is the single answer of an edit dialog.
type EditResult struct {
	Outcome  EditOutcome
	Title    string
	Interval task.Interval
}

type StatusOutcome int

const (
	StatusDismissed StatusOutcome = iota
	StatusCompleted
	StatusEditRequested
)

// StatusResult is the single answer of a status dialog.
type StatusResult struct {
	Outcome StatusOutcome
}

// ApplyEdit routes an edit dialog result and returns the saved task, if any.
// A nil target means the dialog was opened to add a new task; saving creates
// it with the current time.
func (l *List) ApplyEdit(target *task.Task, res EditResult) (*task.Task, error) {
	switch res.Outcome {
	case EditSaved:
		if target == nil {
			t, err := task.New(res.Title, res.Interval, l.Now())
			if err != nil {
				return nil, err
			}
			return t, l.Add(t)
		}
		return target, l.Edit(target, res.Title, res.Interval)
	case EditDeleted:
		if target == nil {
			return nil, nil
		}
		return nil, l.Delete(target)
	default:
		return nil, nil
	}
}

// ApplyStatus routes a status dialog result. It reports true when the caller
// should open the editor for target.
func (l *List) ApplyStatus(target *task.Task, res StatusResult) (bool, error) {
	switch res.Outcome {
	case StatusCompleted:
		return false, l.Complete(target)
	case StatusEditRequested:
		return true, nil
	default:
		return false, nil
	}
}
