package summary

import (
	"time"

	"github.com/matheuskafuri/fng/internal/sentiment"
	"github.com/matheuskafuri/fng/internal/series"
	"github.com/shopspring/decimal"
)

// PreviewSize is the number of trailing rows shown after a run.
const PreviewSize = 5

// Stats describes a reconciled series.
type Stats struct {
	Count   int
	Known   int
	Zero    int // known points whose value is 0, usually zero-filled gaps
	Missing int // points no source or fill policy could populate
	Min     int
	Max     int
	Mean    decimal.Decimal
	First   time.Time
	Last    time.Time
	Bands   map[sentiment.Band]int
	Recent  series.Series
}

// HasValues reports whether any point carried a value.
func (s Stats) HasValues() bool { return s.Known > 0 }

// Compute summarizes s. Min, Max and Mean only consider known points.
func Compute(s series.Series) Stats {
	st := Stats{
		Count:  len(s),
		Bands:  make(map[sentiment.Band]int, len(sentiment.AllBands())),
		Recent: s.Tail(PreviewSize),
	}
	if len(s) == 0 {
		return st
	}
	st.First, st.Last = s[0].Date, s[len(s)-1].Date

	sum := 0
	for _, p := range s {
		if !p.Known {
			st.Missing++
			continue
		}
		if st.Known == 0 || p.Value < st.Min {
			st.Min = p.Value
		}
		if st.Known == 0 || p.Value > st.Max {
			st.Max = p.Value
		}
		if p.Value == 0 {
			st.Zero++
		}
		st.Known++
		sum += p.Value
		st.Bands[sentiment.Classify(p.Value)]++
	}
	if st.Known > 0 {
		st.Mean = decimal.NewFromInt(int64(sum)).DivRound(decimal.NewFromInt(int64(st.Known)), 2)
	}
	return st
}
