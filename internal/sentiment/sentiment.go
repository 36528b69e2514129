package sentiment

import "fmt"

// Band is a named range of the 0-100 index scale.
type Band string

const (
	ExtremeFear  Band = "Extreme Fear"
	Fear         Band = "Fear"
	Greed        Band = "Greed"
	ExtremeGreed Band = "Extreme Greed"
)

// AllBands returns all bands from most fearful to most greedy.
func AllBands() []Band {
	return []Band{ExtremeFear, Fear, Greed, ExtremeGreed}
}

var bandBounds = map[Band][2]int{
	ExtremeFear:  {0, 24},
	Fear:         {25, 49},
	Greed:        {50, 74},
	ExtremeGreed: {75, 100},
}

// Bounds returns the inclusive score range of b.
func (b Band) Bounds() (lo, hi int) {
	r := bandBounds[b]
	return r[0], r[1]
}

// Label renders b with its score range, e.g. "0-24: Extreme Fear".
func (b Band) Label() string {
	lo, hi := b.Bounds()
	return fmt.Sprintf("%d-%d: %s", lo, hi, b)
}

// Classify returns the band containing v. Values outside 0-100 are clamped.
func Classify(v int) Band {
	switch {
	case v < 25:
		return ExtremeFear
	case v < 50:
		return Fear
	case v < 75:
		return Greed
	default:
		return ExtremeGreed
	}
}

// Components lists the indicators the index is composed of.
var Components = []struct {
	Name        string
	Description string
}{
	{"Stock Price Momentum", "S&P 500 vs 125-day moving average"},
	{"Stock Price Strength", "Stocks hitting 52-week highs vs lows"},
	{"Stock Price Breadth", "Trading volume in advancing vs declining stocks"},
	{"Put/Call Options", "Put/call ratio as fear indicator"},
	{"Junk Bond Demand", "Spread between high-yield and treasury bonds"},
	{"Market Volatility", "VIX compared to 50-day moving average"},
	{"Safe Haven Demand", "Performance difference between stocks and bonds"},
}
