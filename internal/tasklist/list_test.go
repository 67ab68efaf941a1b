package tasklist

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recur/internal/storage"
	"recur/internal/task"
)

var today = time.Date(2024, 6, 10, 9, 30, 0, 0, time.Local)

type recorder struct {
	calls int
	last  []Item
}

func (r *recorder) Render(items []Item) {
	r.calls++
	r.last = items
}

func (r *recorder) titles() []string {
	out := make([]string, len(r.last))
	for i, it := range r.last {
		out[i] = it.Task.Title
	}
	return out
}

func newTestList(t *testing.T, store Store) (*List, *recorder) {
	t.Helper()
	r := &recorder{}
	l := New(store, r, Options{
		Now:    func() time.Time { return today },
		Logger: zerolog.Nop(),
	})
	return l, r
}

func mustTask(t *testing.T, title string, iv task.Interval, last time.Time) *task.Task {
	t.Helper()
	tk, err := task.New(title, iv, last)
	require.NoError(t, err)
	return tk
}

func daysAgo(n int) time.Time {
	return today.AddDate(0, 0, -n)
}

// assertConsistent checks that storage holds exactly the in-memory list and
// that the list is sorted by next event.
func assertConsistent(t *testing.T, l *List, store Store) {
	t.Helper()
	raw, err := store.Get(StorageKey)
	require.NoError(t, err)
	stored, err := task.Decode([]byte(raw))
	require.NoError(t, err)

	mem := l.Tasks()
	require.Len(t, stored, len(mem))
	for i := range mem {
		assert.Equal(t, mem[i].Title, stored[i].Title)
		assert.Equal(t, mem[i].Interval, stored[i].Interval)
		assert.True(t, mem[i].LastEvent.Equal(stored[i].LastEvent), "lastEvent %d", i)
		if i > 0 {
			assert.False(t, mem[i].NextEvent().Before(mem[i-1].NextEvent()), "sorted at %d", i)
		}
	}
}

func TestList_RefreshSortsRendersAndPersists(t *testing.T) {
	store := storage.NewMemory()
	l, r := newTestList(t, store)

	a := mustTask(t, "A", task.Weekly, daysAgo(6))
	b := mustTask(t, "B", task.Once, daysAgo(1))
	require.NoError(t, l.Add(a))
	require.NoError(t, l.Add(b))

	assert.Equal(t, []string{"B", "A"}, r.titles())
	require.Len(t, r.last, 2)
	assert.Equal(t, "yesterday", r.last[0].Label)
	assert.True(t, r.last[0].IsOverdue)
	assert.False(t, r.last[0].IsToday)
	assert.Equal(t, "tomorrow", r.last[1].Label)
	assert.False(t, r.last[1].IsOverdue)
	assertConsistent(t, l, store)
}

func TestList_StableSortOnTies(t *testing.T) {
	store := storage.NewMemory()
	l, r := newTestList(t, store)

	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, l.Add(mustTask(t, title, task.Daily, daysAgo(1))))
	}
	require.NoError(t, l.Add(mustTask(t, "earlier", task.Once, daysAgo(3))))

	assert.Equal(t, []string{"earlier", "first", "second", "third"}, r.titles())
	assert.True(t, r.last[1].IsToday)
	assert.Equal(t, "today", r.last[1].Label)
}

func TestList_Complete(t *testing.T) {
	store := storage.NewMemory()
	l, r := newTestList(t, store)

	tk := mustTask(t, "water plants", task.Daily, daysAgo(10))
	other := mustTask(t, "call mum", task.Weekly, daysAgo(2))
	require.NoError(t, l.Add(tk))
	require.NoError(t, l.Add(other))
	require.Equal(t, []string{"water plants", "call mum"}, r.titles())

	require.NoError(t, l.Complete(tk))

	assert.True(t, today.Equal(tk.LastEvent))
	assert.Equal(t, "water plants", tk.Title)
	assert.Equal(t, task.Daily, tk.Interval)
	assert.Equal(t, []string{"water plants", "call mum"}, r.titles())
	assert.Equal(t, "tomorrow", r.last[0].Label)
	assertConsistent(t, l, store)
}

func TestList_Edit(t *testing.T) {
	store := storage.NewMemory()
	l, r := newTestList(t, store)

	a := mustTask(t, "a", task.Daily, daysAgo(0))
	b := mustTask(t, "b", task.Weekly, daysAgo(0))
	require.NoError(t, l.Add(a))
	require.NoError(t, l.Add(b))

	require.NoError(t, l.Edit(a, "a yearly", task.Yearly))

	assert.Equal(t, []string{"b", "a yearly"}, r.titles())
	assertConsistent(t, l, store)

	err := l.Edit(a, "bad", task.Interval{})
	assert.ErrorIs(t, err, task.ErrInvalidInterval)
	assert.Equal(t, "a yearly", a.Title)
}

func TestList_DeleteByIdentity(t *testing.T) {
	store := storage.NewMemory()
	l, r := newTestList(t, store)

	first := mustTask(t, "twin", task.Weekly, daysAgo(1))
	second := mustTask(t, "twin", task.Weekly, daysAgo(1))
	require.NoError(t, l.Add(first))
	require.NoError(t, l.Add(second))

	require.NoError(t, l.Delete(second))

	require.Equal(t, 1, l.Len())
	got, ok := l.At(0)
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Len(t, r.last, 1)
	assertConsistent(t, l, store)

	lookalike := mustTask(t, "twin", task.Weekly, daysAgo(1))
	require.NoError(t, l.Delete(lookalike))
	assert.Equal(t, 1, l.Len())
}

func TestList_AddRejectsInvalid(t *testing.T) {
	l, r := newTestList(t, storage.NewMemory())

	err := l.Add(&task.Task{Title: "bad"})
	assert.ErrorIs(t, err, task.ErrInvalidInterval)
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, r.calls)
	assert.Error(t, l.Add(nil))
}

func TestList_Load(t *testing.T) {
	store := storage.NewMemory()
	require.NoError(t, store.Set(StorageKey, `[
		{"title":"b","interval":"week","lastEvent":1718000000000},
		{"title":"a","interval":3,"lastEvent":1717000000000}
	]`))
	l, _ := newTestList(t, store)

	require.NoError(t, l.Load())

	require.Equal(t, 2, l.Len())
	a, _ := l.At(1)
	assert.Equal(t, "a", a.Title)
	assert.Equal(t, 3, a.Interval.Days())
	assert.Equal(t, int64(1717000000000), a.LastEvent.UnixMilli())
}

func TestList_LoadFallsBackToEmpty(t *testing.T) {
	payloads := map[string]string{
		"not json":      "not valid json",
		"not an array":  `{"title":"x"}`,
		"null":          `null`,
		"one bad entry": `[{"title":"ok","interval":"day","lastEvent":1},{"title":"bad","interval":0,"lastEvent":1}]`,
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			store := storage.NewMemory()
			l, _ := newTestList(t, store)
			require.NoError(t, l.Add(mustTask(t, "stale", task.Daily, today)))
			require.NoError(t, store.Set(StorageKey, payload))

			assert.NoError(t, l.Load())
			assert.Equal(t, 0, l.Len())
		})
	}

	t.Run("missing key", func(t *testing.T) {
		l, r := newTestList(t, storage.NewMemory())
		require.NoError(t, l.Load())
		assert.Equal(t, 0, l.Len())
		require.NoError(t, l.Refresh())
		assert.Empty(t, r.last)
	})
}

func TestList_ReloadRoundTrip(t *testing.T) {
	store := storage.NewMemory()
	l, _ := newTestList(t, store)
	require.NoError(t, l.Add(mustTask(t, "x", task.Monthly, daysAgo(40))))
	require.NoError(t, l.Add(mustTask(t, "y", mustEvery(t, 9), daysAgo(2))))

	reloaded, r := newTestList(t, store)
	require.NoError(t, reloaded.Load())
	require.NoError(t, reloaded.Refresh())

	assert.Equal(t, []string{"x", "y"}, r.titles())
	assertConsistent(t, reloaded, store)
}

type failingStore struct {
	*storage.Memory
}

func (failingStore) Set(string, string) error { return errors.New("disk full") }

func TestList_PersistError(t *testing.T) {
	l, r := newTestList(t, failingStore{storage.NewMemory()})

	err := l.Add(mustTask(t, "x", task.Daily, today))
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 1, r.calls)
}

func TestList_NowTruncatesToMillis(t *testing.T) {
	l := New(storage.NewMemory(), nil, Options{
		Now: func() time.Time { return time.Date(2024, 1, 1, 8, 0, 0, 123456789, time.Local) },
	})
	assert.Equal(t, 123000000, l.Now().Nanosecond())
}

func mustEvery(t *testing.T, n int) task.Interval {
	t.Helper()
	iv, err := task.EveryDays(n)
	require.NoError(t, err)
	return iv
}

func TestList_SetRenderer(t *testing.T) {
	l, first := newTestList(t, storage.NewMemory())
	require.NoError(t, l.Add(mustTask(t, "x", task.Daily, today)))

	second := &recorder{}
	l.SetRenderer(second)
	require.NoError(t, l.Refresh())
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, []string{"x"}, second.titles())

	l.SetRenderer(nil)
	assert.NoError(t, l.Refresh())
}

type lockedStore struct {
	*storage.Memory
	getErr error
}

func (s *lockedStore) Get(key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.Memory.Get(key)
}

func TestList_LoadStoreErrorKeepsStoredTasks(t *testing.T) {
	const saved = `[{"title":"keep me","interval":"day","lastEvent":1718000000000}]`
	store := &lockedStore{Memory: storage.NewMemory(), getErr: errors.New("database is locked")}
	require.NoError(t, store.Memory.Set(StorageKey, saved))
	l, _ := newTestList(t, store)

	err := l.Load()
	require.ErrorContains(t, err, "database is locked")
	assert.Equal(t, 0, l.Len())

	assert.Error(t, l.Refresh())
	assert.Error(t, l.Add(mustTask(t, "new", task.Daily, today)))

	got, err := store.Memory.Get(StorageKey)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	store.getErr = nil
	require.NoError(t, l.Load())
	require.Equal(t, 1, l.Len())
	assert.NoError(t, l.Refresh())
}

func TestList_NilTaskGuards(t *testing.T) {
	l, r := newTestList(t, storage.NewMemory())

	assert.Error(t, l.Complete(nil))
	assert.Error(t, l.Edit(nil, "x", task.Daily))
	assert.NoError(t, l.Delete(nil))
	assert.Equal(t, 0, r.calls)
}
