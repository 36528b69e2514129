package summary

import (
	"testing"
	"time"

	"github.com/matheuskafuri/fng/internal/sentiment"
	"github.com/matheuskafuri/fng/internal/series"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := series.ParseDate(s)
	return t
}

func TestCompute(t *testing.T) {
	s := series.Series{
		{Date: day("2024-01-01"), Value: 20, Known: true},
		{Date: day("2024-01-02"), Value: 0, Known: true},
		{Date: day("2024-01-03"), Value: 30, Known: true},
		{Date: day("2024-01-04"), Value: 81, Known: true},
		{Date: day("2024-01-05"), Value: 55, Known: true},
		{Date: day("2024-01-06"), Known: false},
	}

	st := Compute(s)

	assert.Equal(t, 6, st.Count)
	assert.Equal(t, 5, st.Known)
	assert.Equal(t, 1, st.Zero)
	assert.Equal(t, 1, st.Missing)
	assert.Equal(t, 0, st.Min)
	assert.Equal(t, 81, st.Max)
	assert.Equal(t, "37.2", st.Mean.String())
	assert.Equal(t, day("2024-01-01"), st.First)
	assert.Equal(t, day("2024-01-06"), st.Last)
	assert.Len(t, st.Recent, PreviewSize)
	assert.Equal(t, day("2024-01-02"), st.Recent[0].Date)
	assert.Equal(t, map[sentiment.Band]int{
		sentiment.ExtremeFear:  2,
		sentiment.Fear:         1,
		sentiment.Greed:        1,
		sentiment.ExtremeGreed: 1,
	}, st.Bands)
}

func TestComputeMeanRounding(t *testing.T) {
	s := series.Series{
		{Date: day("2024-01-01"), Value: 1, Known: true},
		{Date: day("2024-01-02"), Value: 2, Known: true},
		{Date: day("2024-01-03"), Value: 2, Known: true},
	}
	assert.Equal(t, "1.67", Compute(s).Mean.String())
}

func TestComputeEmpty(t *testing.T) {
	st := Compute(nil)
	assert.Equal(t, 0, st.Count)
	assert.False(t, st.HasValues())
	assert.True(t, st.First.IsZero())
	assert.Empty(t, st.Recent)
}

func TestComputeAllMissing(t *testing.T) {
	s := series.Series{{Date: day("2024-01-01")}, {Date: day("2024-01-02")}}
	st := Compute(s)
	assert.False(t, st.HasValues())
	assert.Equal(t, 2, st.Missing)
	assert.True(t, st.Mean.IsZero())
}
