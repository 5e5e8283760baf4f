package watchlist

import (
	"strings"
	"testing"

	"github.com/etnz/watchlist/date"
	"github.com/etnz/watchlist/synthetic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// barsOf returns one bar per close, dated from 2025-01-01.
func barsOf(closes ...float64) []synthetic.Bar {
	bars := make([]synthetic.Bar, len(closes))
	for i, c := range closes {
		bars[i] = synthetic.Bar{Date: date.MustParse("2025-01-01").Add(i), Open: c, High: c, Low: c, Close: c, DPI: 50}
	}
	return bars
}

func TestAnalyzeWindow(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	bars := barsOf(closes...)
	bars[35].IVEventFlag = true
	bars[5].IVEventFlag = true // outside the window
	bars[39].DPI = 80
	bars[39].AnalystMomentum = 0.3

	a := Analyze("AAPL", bars)
	assert.Equal(t, "Apple Inc.", a.Company)
	assert.Equal(t, 139.0, a.Price)
	// (139 - 110) / 110
	assert.True(t, a.Change.Equal(26.36), "change = %v", a.Change)
	require.Len(t, a.DailyChanges, 7)
	// 133 / 132 and 139 / 138
	assert.True(t, a.DailyChanges[0].Equal(0.76), "first daily change = %v", a.DailyChanges[0])
	assert.True(t, a.DailyChanges[6].Equal(0.72), "last daily change = %v", a.DailyChanges[6])
	assert.Greater(t, float64(a.AverageChange), 0.7)
	assert.Less(t, a.Volatility, 0.1)
	assert.Equal(t, 1, a.EarningsDays)
	assert.Equal(t, 80.0, a.DPI)
	assert.Equal(t, 0.3, a.AnalystMomentum)

	lines := a.Summary()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "upward momentum")
	assert.Contains(t, lines[0], "+26.36%")
	assert.Contains(t, lines[1], "accumulation")
}

func TestAnalyzeShortSeries(t *testing.T) {
	a := Analyze("X", barsOf(100, 90))
	require.Len(t, a.DailyChanges, 1)
	assert.True(t, a.Change.Equal(-10))
	assert.Equal(t, 0.0, a.Volatility)
	lines := a.Summary()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "downward pressure")

	empty := Analyze("X", nil)
	assert.Empty(t, empty.DailyChanges)
	assert.Equal(t, 0.0, empty.Price)
	assert.Equal(t, []string{"X is trading sideways, +0.00% over 30 days."}, empty.Summary())
}

func TestAnalyzeVolatile(t *testing.T) {
	var closes []float64
	for i := range 29 {
		closes = append(closes, 100+float64(i%2)*10)
	}
	a := Analyze("TSLA", barsOf(closes...))
	assert.Greater(t, a.Volatility, 3.0)
	lines := a.Summary()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "TSLA is trading sideways"))
	assert.Contains(t, lines[1], "highly volatile")
}

func TestCacheAnalyses(t *testing.T) {
	c := newTestCache(4)
	require.NoError(t, c.SetInitialPrice("AAPL", 190))
	analyses, err := c.Analyses(Stock{Ticker: "AAPL", Company: "Apple"}, Stock{Ticker: "MSFT"})
	require.NoError(t, err)
	require.Len(t, analyses, 2)
	assert.Equal(t, "Apple", analyses[0].Company)
	assert.Equal(t, CompanyName("MSFT"), analyses[1].Company)

	bars, _ := c.Series("MSFT")
	assert.Equal(t, bars[len(bars)-1].Close, analyses[1].Price)

	_, err = c.Analyses(Stock{Ticker: "bad ticker"})
	assert.ErrorIs(t, err, ErrInvalidTicker)
}
