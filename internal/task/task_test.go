package task

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustEvery(t *testing.T, n int) Interval {
	t.Helper()
	iv, err := EveryDays(n)
	require.NoError(t, err)
	return iv
}

func TestNextEvent(t *testing.T) {
	tests := []struct {
		name string
		iv   Interval
		last time.Time
		want time.Time
	}{
		{"once keeps last event", Once, date(2024, 5, 17), date(2024, 5, 17)},
		{"day crosses month", Daily, date(2024, 1, 31), date(2024, 2, 1)},
		{"week crosses year", Weekly, date(2023, 12, 28), date(2024, 1, 4)},
		{"month", Monthly, date(2024, 3, 15), date(2024, 4, 15)},
		{"month overflow in leap year", Monthly, date(2024, 1, 31), date(2024, 3, 2)},
		{"month overflow in common year", Monthly, date(2023, 1, 31), date(2023, 3, 3)},
		{"year", Yearly, date(2023, 7, 1), date(2024, 7, 1)},
		{"year from leap day", Yearly, date(2024, 2, 29), date(2025, 3, 1)},
		{"every 5 days", mustEvery(t, 5), date(2024, 2, 27), date(2024, 3, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextEvent(tt.iv, tt.last)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.True(t, got.Equal(NextEvent(tt.iv, tt.last)), "must be deterministic")
		})
	}
}

func TestNextEvent_KeepsTimeOfDay(t *testing.T) {
	last := time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)
	got := NextEvent(Weekly, last)
	assert.Equal(t, time.Date(2024, 6, 8, 18, 30, 0, 0, time.UTC), got)
}

func TestNextEvent_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata not available")
	}
	last := time.Date(2024, 3, 30, 12, 0, 0, 0, loc)
	got := NextEvent(Daily, last)
	assert.Equal(t, 31, got.Day())
	assert.Equal(t, 12, got.Hour())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "once", Once.Describe())
	assert.Equal(t, "every day", Daily.Describe())
	assert.Equal(t, "every week", Weekly.Describe())
	assert.Equal(t, "every month", Monthly.Describe())
	assert.Equal(t, "every year", Yearly.Describe())
	assert.Equal(t, "every 12 days", mustEvery(t, 12).Describe())
	assert.Equal(t, "invalid", Interval{}.Describe())
}

func TestEveryDays_Bounds(t *testing.T) {
	for _, n := range []int{0, -3, MaxEveryDays + 1} {
		_, err := EveryDays(n)
		assert.ErrorIs(t, err, ErrInvalidInterval, "n=%d", n)
	}
	iv, err := EveryDays(1)
	require.NoError(t, err)
	assert.Equal(t, 1, iv.Days())
}

func TestNew_RejectsInvalidInterval(t *testing.T) {
	_, err := New("water plants", Interval{}, date(2024, 1, 1))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	tk, err := New("", Weekly, date(2024, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, "", tk.Title)
	assert.Equal(t, "every week", tk.IntervalText())
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in   string
		want Interval
	}{
		{"once", Once},
		{"day", Daily},
		{"every day", Daily},
		{"  Every   Week ", Weekly},
		{"month", Monthly},
		{"every year", Yearly},
		{"3", mustEvery(t, 3)},
		{"every 10 days", mustEvery(t, 10)},
		{"every 1 day", mustEvery(t, 1)},
	}
	for _, tt := range tests {
		got, err := ParseInterval(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "fortnight", "0", "-2", "2.5", "every days"} {
		_, err := ParseInterval(bad)
		assert.ErrorIs(t, err, ErrInvalidInterval, bad)
	}
}

func TestClassify(t *testing.T) {
	today := time.Date(2024, 6, 10, 15, 45, 0, 0, time.UTC)

	tests := []struct {
		name      string
		next      time.Time
		label     string
		isToday   bool
		isOverdue bool
	}{
		{"same day earlier", time.Date(2024, 6, 10, 0, 1, 0, 0, time.UTC), "today", true, false},
		{"same day later", time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC), "today", true, false},
		{"tomorrow", time.Date(2024, 6, 11, 1, 0, 0, 0, time.UTC), "tomorrow", false, false},
		{"yesterday", time.Date(2024, 6, 9, 22, 0, 0, 0, time.UTC), "yesterday", false, true},
		{"long overdue", date(2024, 6, 1), "Sat, Jun 1 2024", false, true},
		{"future", date(2024, 7, 4), "Thu, Jul 4 2024", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := Classify(tt.next, today, "")
			assert.Equal(t, tt.label, u.Label)
			assert.Equal(t, tt.isToday, u.IsToday)
			assert.Equal(t, tt.isOverdue, u.IsOverdue)
		})
	}
}

func TestClassify_CustomLayout(t *testing.T) {
	u := Classify(date(2024, 12, 24), date(2024, 12, 1), "2006-01-02")
	assert.Equal(t, "2024-12-24", u.Label)
	assert.Equal(t, 23, u.Days)
}

func TestClassify_Scenario(t *testing.T) {
	today := date(2024, 6, 10)
	a, err := New("A", Weekly, today.AddDate(0, 0, -6))
	require.NoError(t, err)
	b, err := New("B", Once, today.AddDate(0, 0, -1))
	require.NoError(t, err)

	ua := Classify(a.NextEvent(), today, "")
	ub := Classify(b.NextEvent(), today, "")

	assert.Equal(t, date(2024, 6, 11), a.NextEvent())
	assert.Equal(t, "tomorrow", ua.Label)
	assert.False(t, ua.IsOverdue)
	assert.Equal(t, date(2024, 6, 9), b.NextEvent())
	assert.Equal(t, "yesterday", ub.Label)
	assert.True(t, ub.IsOverdue)
}

func TestDaysBetween_DSTDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	before := time.Date(2024, 3, 9, 20, 0, 0, 0, loc)
	after := time.Date(2024, 3, 11, 8, 0, 0, 0, loc)
	assert.Equal(t, 2, DaysBetween(before, after))
	assert.Equal(t, -2, DaysBetween(after, before))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	last := time.UnixMilli(1718000000123)
	tasks := []*Task{
		{Title: "water plants", Interval: mustEvery(t, 3), LastEvent: last},
		{Title: "", Interval: Once, LastEvent: last.Add(-time.Hour)},
		{Title: "taxes", Interval: Yearly, LastEvent: last},
	}

	data, err := Encode(tasks)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, got, len(tasks))
	for i := range tasks {
		assert.Equal(t, tasks[i].Title, got[i].Title)
		assert.Equal(t, tasks[i].Interval, got[i].Interval)
		assert.True(t, tasks[i].LastEvent.Equal(got[i].LastEvent))
	}
}

func TestEncode_WireFormat(t *testing.T) {
	tasks := []*Task{
		{Title: "a", Interval: Weekly, LastEvent: time.UnixMilli(1000)},
		{Title: "b", Interval: mustEvery(t, 7), LastEvent: time.UnixMilli(2000)},
	}
	data, err := Encode(tasks)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"title":"a","interval":"week","lastEvent":1000},
		{"title":"b","interval":7,"lastEvent":2000}
	]`, string(data))

	data, err = Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecode_TagVersusNumber(t *testing.T) {
	got, err := Decode([]byte(`[{"title":"x","interval":"7","lastEvent":5},{"title":"y","interval":"week","lastEvent":5}]`))
	require.NoError(t, err)
	assert.Equal(t, 7, got[0].Interval.Days())
	tag, ok := got[1].Interval.Tag()
	assert.True(t, ok)
	assert.Equal(t, "week", tag)
}

func TestDecode_Rejects(t *testing.T) {
	bad := []string{
		`not valid json`,
		`null`,
		`{"title":"x"}`,
		`[{"title":"x","interval":"fortnight","lastEvent":1}]`,
		`[{"title":"x","interval":0,"lastEvent":1}]`,
		`[{"title":"x","interval":-4,"lastEvent":1}]`,
		`[{"title":"x","interval":2.5,"lastEvent":1}]`,
		`[{"title":"x","lastEvent":1}]`,
		`[{"title":"x","interval":"day"}]`,
		`[{"title":"x","interval":"day","lastEvent":"yesterday"}]`,
	}
	for _, in := range bad {
		_, err := Decode([]byte(in))
		assert.Error(t, err, in)
	}

	got, err := Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInterval_MarshalInvalid(t *testing.T) {
	_, err := json.Marshal(Interval{})
	assert.Error(t, err)
}

func TestSelectedOption(t *testing.T) {
	assert.Equal(t, 0, SelectedOption(Once))
	assert.Equal(t, 1, SelectedOption(Daily))
	assert.Equal(t, 2, SelectedOption(Weekly))
	assert.Equal(t, 3, SelectedOption(Monthly))
	assert.Equal(t, 4, SelectedOption(Yearly))
	assert.Equal(t, CustomOption, SelectedOption(mustEvery(t, 7)))
	assert.Equal(t, CustomOption, SelectedOption(Interval{}))

	for i := 0; i < CustomOption; i++ {
		iv, ok := OptionInterval(i)
		require.True(t, ok)
		assert.Equal(t, i, SelectedOption(iv))
		assert.Equal(t, Options[i], iv.Describe())
	}
	_, ok := OptionInterval(CustomOption)
	assert.False(t, ok)
}
