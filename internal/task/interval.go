package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxEveryDays bounds the custom day interval.
const MaxEveryDays = 3650

var ErrInvalidInterval = errors.New("invalid interval")

type kind int

const (
	kindInvalid kind = iota
	kindOnce
	kindDay
	kindWeek
	kindMonth
	kindYear
	kindDays
)

var tags = map[kind]string{
	kindOnce:  "once",
	kindDay:   "day",
	kindWeek:  "week",
	kindMonth: "month",
	kindYear:  "year",
}

// Interval is a recurrence rule: one of the symbolic periods or every N days.
// The zero value is invalid.
type Interval struct {
	kind kind
	days int
}

var (
	Once    = Interval{kind: kindOnce}
	Daily   = Interval{kind: kindDay}
	Weekly  = Interval{kind: kindWeek}
	Monthly = Interval{kind: kindMonth}
	Yearly  = Interval{kind: kindYear}
)

// EveryDays returns an interval repeating every n days.
func EveryDays(n int) (Interval, error) {
	if n < 1 || n > MaxEveryDays {
		return Interval{}, fmt.Errorf("%w: every %d days (must be 1-%d)", ErrInvalidInterval, n, MaxEveryDays)
	}
	return Interval{kind: kindDays, days: n}, nil
}

func (iv Interval) Valid() bool {
	if iv.kind == kindDays {
		return iv.days >= 1 && iv.days <= MaxEveryDays
	}
	_, ok := tags[iv.kind]
	return ok
}

// Tag returns the symbolic tag and true, or "" and false for a day count.
func (iv Interval) Tag() (string, bool) {
	t, ok := tags[iv.kind]
	return t, ok
}

// Days returns the day count of an EveryDays interval, 0 otherwise.
func (iv Interval) Days() int {
	if iv.kind != kindDays {
		return 0
	}
	return iv.days
}

// Describe returns the human readable form, e.g. "every week".
func (iv Interval) Describe() string {
	switch iv.kind {
	case kindOnce:
		return "once"
	case kindDay:
		return "every day"
	case kindWeek:
		return "every week"
	case kindMonth:
		return "every month"
	case kindYear:
		return "every year"
	case kindDays:
		return fmt.Sprintf("every %d days", iv.days)
	default:
		return "invalid"
	}
}

func (iv Interval) String() string {
	if t, ok := iv.Tag(); ok {
		return t
	}
	if iv.kind == kindDays {
		return strconv.Itoa(iv.days)
	}
	return "invalid"
}

// ParseInterval accepts a tag ("week"), the described form ("every week",
// "every 3 days") or a bare day count ("3").
func ParseInterval(text string) (Interval, error) {
	s := strings.ToLower(strings.Join(strings.Fields(text), " "))
	if s == "" {
		return Interval{}, fmt.Errorf("%w: empty", ErrInvalidInterval)
	}
	s = strings.TrimPrefix(s, "every ")
	for k, t := range tags {
		if s == t {
			return Interval{kind: k}, nil
		}
	}
	s = strings.TrimSuffix(strings.TrimSuffix(s, " days"), " day")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidInterval, text)
	}
	return EveryDays(n)
}

// MarshalJSON writes tags as strings and day counts as numbers.
func (iv Interval) MarshalJSON() ([]byte, error) {
	if t, ok := iv.Tag(); ok {
		return json.Marshal(t)
	}
	if !iv.Valid() {
		return nil, ErrInvalidInterval
	}
	return json.Marshal(iv.days)
}

func (iv *Interval) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		for k, t := range tags {
			if v == t {
				*iv = Interval{kind: k}
				return nil
			}
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidInterval, v)
		}
		parsed, err := EveryDays(n)
		if err != nil {
			return err
		}
		*iv = parsed
		return nil
	case float64:
		if v != math.Trunc(v) || v < 1 || v > MaxEveryDays {
			return fmt.Errorf("%w: %v", ErrInvalidInterval, v)
		}
		parsed, err := EveryDays(int(v))
		if err != nil {
			return err
		}
		*iv = parsed
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidInterval, string(data))
	}
}
