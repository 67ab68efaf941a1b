// Package tasklist owns the collection of recurring tasks. Every mutation
// goes through List, which re-sorts, re-renders and persists the collection
// before returning.
package tasklist

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"recur/internal/storage"
	"recur/internal/task"
)

// StorageKey is the key the collection is persisted under.
const StorageKey = "tasks"

// Store is the string key-value substrate the list persists into.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Item is one rendered row: a task and its urgency for the current day.
type Item struct {
	Task      *task.Task
	Label     string
	IsToday   bool
	IsOverdue bool
}

// Renderer replaces the visible list with items, in order.
type Renderer interface {
	Render(items []Item)
}

type RendererFunc func(items []Item)

func (f RendererFunc) Render(items []Item) { f(items) }

type Options struct {
	// DateLayout formats due dates beyond yesterday/tomorrow.
	DateLayout string
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger zerolog.Logger
	// Theme is used when no preference has been stored yet.
	Theme string
}

type List struct {
	store    Store
	renderer Renderer
	layout   string
	clock    func() time.Time
	log      zerolog.Logger
	theme    string
	tasks    []*task.Task
	// loadErr is the last failed store read; it blocks persisting.
	loadErr  error
}

func New(store Store, renderer Renderer, opts Options) *List {
	if renderer == nil {
		renderer = RendererFunc(func([]Item) {})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DateLayout == "" {
		opts.DateLayout = task.DefaultDateLayout
	}
	theme := opts.Theme
	if !validTheme(theme) {
		theme = ThemeDark
	}
	return &List{
		store:    store,
		renderer: renderer,
		layout:   opts.DateLayout,
		clock:    opts.Now,
		log:      opts.Logger.With().Str("cmp", "tasklist").Logger(),
		theme:    theme,
	}
}

// SetRenderer swaps the view that Refresh renders to. A nil renderer
// discards renders.
func (l *List) SetRenderer(r Renderer) {
	if r == nil {
		r = RendererFunc(func([]Item) {})
	}
	l.renderer = r
}

// Now is the controller clock at millisecond precision, the precision the
// collection is persisted with.
func (l *List) Now() time.Time {
	return l.clock().Round(0).Truncate(time.Millisecond)
}

// Load replaces the collection with the persisted one. A missing key or any
// decode failure leaves the collection empty. Any other store error is
// returned, and persisting stays blocked until a later Load succeeds so the
// unread data is never overwritten.
func (l *List) Load() error {
	l.tasks = nil
	l.loadErr = nil
	raw, err := l.store.Get(StorageKey)
	if storage.IsNotFound(err) {
		l.log.Warn().Err(err).Msg("no stored tasks, starting empty")
		return nil
	}
	if err != nil {
		l.loadErr = err
		l.log.Error().Err(err).Msg("read stored tasks")
		return fmt.Errorf("load tasks: %w", err)
	}
	tasks, err := task.Decode([]byte(raw))
	if err != nil {
		l.log.Warn().Err(err).Msg("discarding unreadable stored tasks")
		return nil
	}
	l.tasks = tasks
	l.log.Debug().Int("count", len(tasks)).Msg("loaded tasks")
	return nil
}

// Refresh sorts by next event, renders and persists the collection.
func (l *List) Refresh() error {
	slices.SortStableFunc(l.tasks, func(a, b *task.Task) int {
		return a.NextEvent().Compare(b.NextEvent())
	})
	l.renderer.Render(l.Items())
	return l.persist()
}

func (l *List) persist() error {
	if l.loadErr != nil {
		return fmt.Errorf("persist tasks: stored tasks were never read: %w", l.loadErr)
	}
	data, err := task.Encode(l.tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := l.store.Set(StorageKey, string(data)); err != nil {
		l.log.Error().Err(err).Msg("persist tasks")
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

// Items labels the collection, in its current order, against today.
func (l *List) Items() []Item {
	today := l.clock()
	items := make([]Item, len(l.tasks))
	for i, t := range l.tasks {
		u := task.Classify(t.NextEvent(), today, l.layout)
		items[i] = Item{
			Task:      t,
			Label:     u.Label,
			IsToday:   u.IsToday,
			IsOverdue: u.IsOverdue,
		}
	}
	return items
}

// Tasks returns the collection in its current order.
func (l *List) Tasks() []*task.Task {
	return slices.Clone(l.tasks)
}

func (l *List) Len() int { return len(l.tasks) }

func (l *List) At(i int) (*task.Task, bool) {
	if i < 0 || i >= len(l.tasks) {
		return nil, false
	}
	return l.tasks[i], true
}

func (l *List) Add(t *task.Task) error {
	if t == nil {
		return fmt.Errorf("add: nil task")
	}
	if !t.Interval.Valid() {
		return fmt.Errorf("add %q: %w", t.Title, task.ErrInvalidInterval)
	}
	l.tasks = append(l.tasks, t)
	l.log.Debug().Str("title", t.Title).Str("interval", t.Interval.String()).Msg("add")
	return l.Refresh()
}

// Complete marks t done now. Title and interval are untouched.
func (l *List) Complete(t *task.Task) error {
	if t == nil {
		return fmt.Errorf("complete: nil task")
	}
	t.LastEvent = l.Now()
	l.log.Debug().Str("title", t.Title).Msg("complete")
	return l.Refresh()
}

func (l *List) Edit(t *task.Task, title string, iv task.Interval) error {
	if t == nil {
		return fmt.Errorf("edit: nil task")
	}
	if !iv.Valid() {
		return fmt.Errorf("edit %q: %w", t.Title, task.ErrInvalidInterval)
	}
	t.Title = title
	t.Interval = iv
	l.log.Debug().Str("title", title).Str("interval", iv.String()).Msg("edit")
	return l.Refresh()
}

// Delete removes t by identity; tasks with equal fields are kept.
func (l *List) Delete(t *task.Task) error {
	if t == nil {
		return nil
	}
	i := l.indexOf(t)
	if i < 0 {
		return nil
	}
	l.tasks = slices.Delete(l.tasks, i, i+1)
	l.log.Debug().Str("title", t.Title).Msg("delete")
	return l.Refresh()
}

func (l *List) indexOf(t *task.Task) int {
	for i, cur := range l.tasks {
		if cur == t {
			return i
		}
	}
	return -1
}
