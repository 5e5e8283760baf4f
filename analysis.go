package watchlist

import (
	"fmt"
	"math"

	"github.com/etnz/watchlist/synthetic"
	"github.com/shopspring/decimal"
)

// AnalysisWindow is the number of trailing bars Analyze looks at.
const AnalysisWindow = 30

// recentDays is the number of daily changes kept in Analysis.DailyChanges.
const recentDays = 7

// Analysis sums up the recent behavior of a series.
type Analysis struct {
	Ticker          string
	Company         string
	Price           float64   // last close
	Change          Percent   // from the first to the last close of the window
	DailyChanges    []Percent // close to close, last 7 days, oldest first
	AverageChange   Percent
	Volatility      float64 // population standard deviation of DailyChanges
	EarningsDays    int
	DPI             float64
	AnalystMomentum float64
}

// Analyze returns the analysis of the last AnalysisWindow bars of ticker.
func Analyze(ticker string, bars []synthetic.Bar) Analysis {
	a := Analysis{Ticker: ticker, Company: CompanyName(ticker)}
	if len(bars) == 0 {
		return a
	}
	if len(bars) > AnalysisWindow {
		bars = bars[len(bars)-AnalysisWindow:]
	}
	first, last := bars[0], bars[len(bars)-1]
	a.Price = last.Close
	a.DPI = last.DPI
	a.AnalystMomentum = last.AnalystMomentum
	a.Change = Change(first.Close, last.Close)

	for _, b := range bars {
		if b.IVEventFlag {
			a.EarningsDays++
		}
	}

	from := max(1, len(bars)-recentDays)
	for i := from; i < len(bars); i++ {
		a.DailyChanges = append(a.DailyChanges, Change(bars[i-1].Close, bars[i].Close))
	}
	if n := len(a.DailyChanges); n > 0 {
		var sum float64
		for _, c := range a.DailyChanges {
			sum += float64(c)
		}
		mean := sum / float64(n)
		var variance float64
		for _, c := range a.DailyChanges {
			variance += (float64(c) - mean) * (float64(c) - mean)
		}
		a.AverageChange = Percent(synthetic.Round(mean))
		a.Volatility = synthetic.Round(math.Sqrt(variance / float64(n)))
	}
	return a
}

// Change returns the change from from to to, in percent rounded to 2 decimals.
func Change(from, to float64) Percent {
	f := decimal.NewFromFloat(from)
	return percentOf(decimal.NewFromFloat(to).Sub(f), f)
}

// Summary returns up to 3 plain bullet points describing a.
func (a Analysis) Summary() []string {
	var lines []string
	switch {
	case a.Change > 5:
		lines = append(lines, fmt.Sprintf("%s shows strong upward momentum with %s gain over 30 days.", a.Ticker, signed(a.Change)))
	case a.Change < -5:
		lines = append(lines, fmt.Sprintf("%s faces downward pressure with %s decline over 30 days.", a.Ticker, signed(a.Change)))
	default:
		lines = append(lines, fmt.Sprintf("%s is trading sideways, %s over 30 days.", a.Ticker, signed(a.Change)))
	}
	if a.Volatility > 3 {
		lines = append(lines, fmt.Sprintf("%s is highly volatile, daily moves deviate by %.2f%%.", a.Ticker, a.Volatility))
	}
	switch {
	case a.DPI > 75:
		lines = append(lines, fmt.Sprintf("Dark pool accumulation on %s (DPI %.0f).", a.Ticker, a.DPI))
	case a.DPI < 25 && a.DPI > 0:
		lines = append(lines, fmt.Sprintf("Dark pool distribution on %s (DPI %.0f).", a.Ticker, a.DPI))
	}
	if len(lines) > 3 {
		lines = lines[:3]
	}
	return lines
}

func signed(p Percent) string { return fmt.Sprintf("%+.2f%%", float64(p)) }

// Analyses returns the analysis of each of stocks, in order. A stock company
// name wins over the registered one.
func (c *Cache) Analyses(stocks ...Stock) ([]Analysis, error) {
	analyses := make([]Analysis, 0, len(stocks))
	for _, s := range stocks {
		bars, err := c.Series(s.Ticker)
		if err != nil {
			return nil, err
		}
		a := Analyze(s.Ticker, bars)
		if s.Company != "" {
			a.Company = s.Company
		}
		analyses = append(analyses, a)
	}
	return analyses, nil
}
