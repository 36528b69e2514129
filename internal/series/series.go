package series

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar date format used on the command line and in CSV files.
const DateLayout = "2006-01-02"

// Observation is one day's index value.
type Observation struct {
	Date  time.Time
	Value int
}

// Point is a row of a reconciled series. Known is false when neither source
// nor the fill policy produced a value for Date.
type Point struct {
	Date  time.Time
	Value int
	Known bool
}

// Series is a date-ordered run of points with unique dates.
type Series []Point

// Range is an inclusive calendar date range.
type Range struct {
	Start time.Time
	End   time.Time
}

// FillPolicy controls how dates with no observation are populated.
type FillPolicy int

const (
	ZeroFill FillPolicy = iota
	BackwardFill
)

func (p FillPolicy) String() string {
	switch p {
	case BackwardFill:
		return "backfill"
	default:
		return "zero"
	}
}

// ParseFillPolicy maps "zero" or "backfill" (case-insensitive) to a FillPolicy.
func ParseFillPolicy(s string) (FillPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zero", "zerofill", "zero-fill":
		return ZeroFill, nil
	case "backfill", "backward", "bfill":
		return BackwardFill, nil
	default:
		return ZeroFill, fmt.Errorf("unknown fill policy %q (valid: zero, backfill)", s)
	}
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// NewRange returns the inclusive range between two dates, normalized to UTC days.
func NewRange(start, end time.Time) Range {
	return Range{Start: Day(start), End: Day(end)}
}

// Days returns the number of calendar days covered by r, or 0 if End is before Start.
func (r Range) Days() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r Range) String() string {
	return r.Start.Format(DateLayout) + " to " + r.End.Format(DateLayout)
}

// Dates returns every calendar day in r in ascending order.
func Dates(r Range) []time.Time {
	n := r.Days()
	dates := make([]time.Time, 0, n)
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// Reconcile merges existing and fetched observations over r and fills gaps
// according to policy. Fetched values win over existing ones on the same date.
//
// Under BackwardFill a trailing run of dates with no later known value is left
// with Known=false rather than invented.
func Reconcile(existing, fetched []Observation, r Range, policy FillPolicy) Series {
	merged := make(map[time.Time]int, len(existing)+len(fetched))
	for _, o := range existing {
		merged[Day(o.Date)] = o.Value
	}
	for _, o := range fetched {
		merged[Day(o.Date)] = o.Value
	}

	dates := Dates(r)
	out := make(Series, len(dates))
	for i, d := range dates {
		v, ok := merged[d]
		out[i] = Point{Date: d, Value: v, Known: ok}
	}

	switch policy {
	case BackwardFill:
		backfill(out)
	default:
		zerofill(out)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func zerofill(s Series) {
	for i := range s {
		if !s[i].Known {
			s[i].Value = 0
			s[i].Known = true
		}
	}
}

func backfill(s Series) {
	next, have := 0, false
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Known {
			next, have = s[i].Value, true
			continue
		}
		if have {
			s[i].Value = next
			s[i].Known = true
		}
	}
}

// Len returns the number of rows.
func (s Series) Len() int { return len(s) }

// Tail returns the last n points, or all of them if the series is shorter.
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return nil
	}
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// Missing counts points that are still unknown.
func (s Series) Missing() int {
	n := 0
	for _, p := range s {
		if !p.Known {
			n++
		}
	}
	return n
}

// Observations returns the known points of s as observations.
func (s Series) Observations() []Observation {
	out := make([]Observation, 0, len(s))
	for _, p := range s {
		if p.Known {
			out = append(out, Observation{Date: p.Date, Value: p.Value})
		}
	}
	return out
}
