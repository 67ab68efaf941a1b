// Package task holds the recurring task record and the pure date logic over
// it: next due date, interval wording and urgency classification.
package task

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// DefaultDateLayout formats due dates that are not today, tomorrow or yesterday.
const DefaultDateLayout = "Mon, Jan 2 2006"

type Task struct {
	Title     string
	Interval  Interval
	LastEvent time.Time
}

// New validates the interval before the task can enter a list.
func New(title string, iv Interval, lastEvent time.Time) (*Task, error) {
	if !iv.Valid() {
		return nil, fmt.Errorf("new task %q: %w", title, ErrInvalidInterval)
	}
	return &Task{Title: title, Interval: iv, LastEvent: lastEvent}, nil
}

func (t *Task) NextEvent() time.Time {
	return NextEvent(t.Interval, t.LastEvent)
}

func (t *Task) IntervalText() string {
	return t.Interval.Describe()
}

// NextEvent advances last by the interval using calendar arithmetic.
// Day-of-month overflow rolls forward: Jan 31 + 1 month is Mar 2 (or Mar 3).
func NextEvent(iv Interval, last time.Time) time.Time {
	switch iv.kind {
	case kindDay:
		return last.AddDate(0, 0, 1)
	case kindWeek:
		return last.AddDate(0, 0, 7)
	case kindMonth:
		return last.AddDate(0, 1, 0)
	case kindYear:
		return last.AddDate(1, 0, 0)
	case kindDays:
		return last.AddDate(0, 0, iv.days)
	default:
		return last
	}
}

type Urgency struct {
	Days      int
	Label     string
	IsToday   bool
	IsOverdue bool
}

// Classify labels next relative to today. Time of day is ignored on both.
func Classify(next, today time.Time, layout string) Urgency {
	if layout == "" {
		layout = DefaultDateLayout
	}
	days := DaysBetween(today, next)
	u := Urgency{
		Days:      days,
		IsToday:   days == 0,
		IsOverdue: days < 0,
	}
	switch days {
	case 0:
		u.Label = "today"
	case 1:
		u.Label = "tomorrow"
	case -1:
		u.Label = "yesterday"
	default:
		u.Label = next.Format(layout)
	}
	return u
}

// DaysBetween returns the signed number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	diff := midnight(b).Sub(midnight(a))
	return int(math.Round(diff.Hours() / 24))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type wireTask struct {
	Title     string   `json:"title"`
	Interval  Interval `json:"interval"`
	LastEvent *int64   `json:"lastEvent"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	ms := t.LastEvent.UnixMilli()
	return json.Marshal(wireTask{Title: t.Title, Interval: t.Interval, LastEvent: &ms})
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var w wireTask
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if !w.Interval.Valid() {
		return fmt.Errorf("decode task %q: %w", w.Title, ErrInvalidInterval)
	}
	if w.LastEvent == nil {
		return fmt.Errorf("decode task %q: missing lastEvent", w.Title)
	}
	t.Title = w.Title
	t.Interval = w.Interval
	t.LastEvent = time.UnixMilli(*w.LastEvent)
	return nil
}

// Encode serializes tasks as a JSON array.
func Encode(tasks []*Task) ([]byte, error) {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = *t
	}
	return json.Marshal(out)
}

// Decode parses a JSON array of tasks. Any bad entry fails the whole decode.
func Decode(data []byte) ([]*Task, error) {
	var raw []Task
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("decode tasks: not an array")
	}
	tasks := make([]*Task, len(raw))
	for i := range raw {
		tasks[i] = &raw[i]
	}
	return tasks, nil
}
