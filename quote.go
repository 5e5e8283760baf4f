package watchlist

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/etnz/watchlist/date"
	"github.com/etnz/watchlist/synthetic"
	"github.com/shopspring/decimal"
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.\-]{0,9}$`)

// NormalizeTicker upper cases s and checks it looks like a ticker symbol.
func NormalizeTicker(s string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if !tickerPattern.MatchString(t) {
		return "", fmt.Errorf("%w %q", ErrInvalidTicker, s)
	}
	return t, nil
}

var companies = map[string]string{
	"AAPL":  "Apple Inc.",
	"GOOGL": "Alphabet Inc.",
	"MSFT":  "Microsoft Corporation",
	"AMZN":  "Amazon.com Inc.",
	"TSLA":  "Tesla Inc.",
	"META":  "Meta Platforms Inc.",
	"NVDA":  "NVIDIA Corporation",
	"NFLX":  "Netflix Inc.",
	"AMD":   "Advanced Micro Devices Inc.",
	"INTC":  "Intel Corporation",
}

// CompanyName returns a display name for ticker.
func CompanyName(ticker string) string {
	if name, ok := companies[strings.ToUpper(ticker)]; ok {
		return name
	}
	return strings.ToUpper(ticker) + " Corporation"
}

// Quote is the display summary of a single bar.
//
// Change is intraday: close minus open of the same bar, not the change from
// the previous close.
type Quote struct {
	Ticker          string
	Company         string
	Date            date.Date
	Open            Money
	Price           Money
	Change          Money
	ChangePercent   Percent
	DPI             float64
	AnalystMomentum float64
	EarningsDay     bool
}

// QuoteOf returns the quote of ticker for bar, prices in currency.
func QuoteOf(ticker string, bar synthetic.Bar, currency string) Quote {
	open := decimal.NewFromFloat(bar.Open)
	closing := decimal.NewFromFloat(bar.Close)
	change := closing.Sub(open)
	return Quote{
		Ticker:          ticker,
		Company:         CompanyName(ticker),
		Date:            bar.Date,
		Open:            M(open, currency),
		Price:           M(closing, currency),
		Change:          M(change, currency),
		ChangePercent:   percentOf(change, open),
		DPI:             bar.DPI,
		AnalystMomentum: bar.AnalystMomentum,
		EarningsDay:     bar.IVEventFlag,
	}
}

// MarshalJSON uses the field names of the quote endpoint.
func (q Quote) MarshalJSON() ([]byte, error) {
	var w jsonObject
	w.Field("ticker", q.Ticker).
		Field("company_name", q.Company).
		Field("date", q.Date).
		Field("currency", q.Price.Currency()).
		Field("open", q.Open.Float()).
		Field("current_price", q.Price.Float()).
		Field("change", q.Change.Float()).
		Field("change_percent", float64(q.ChangePercent)).
		Field("dpi", q.DPI).
		Field("analyst_momentum", q.AnalystMomentum).
		Field("iv_event_flag", q.EarningsDay)
	return w.MarshalJSON()
}

// ChartPeriod is a chart time window.
type ChartPeriod string

const (
	Period1D ChartPeriod = "1D"
	Period1W ChartPeriod = "1W"
	Period1M ChartPeriod = "1M"
	Period3M ChartPeriod = "3M"
	Period1Y ChartPeriod = "1Y"
)

// ChartPeriods lists the supported periods, shortest first.
func ChartPeriods() []ChartPeriod {
	return []ChartPeriod{Period1D, Period1W, Period1M, Period3M, Period1Y}
}

// Days returns the number of days covered by p.
func (p ChartPeriod) Days() int {
	switch p {
	case Period1D:
		return 1
	case Period1W:
		return 7
	case Period1M:
		return 30
	case Period3M:
		return 90
	case Period1Y:
		return 365
	default:
		return 0
	}
}

// ParseChartPeriod parses s case insensitively. The empty string means 1M.
func ParseChartPeriod(s string) (ChartPeriod, error) {
	if s == "" {
		return Period1M, nil
	}
	p := ChartPeriod(strings.ToUpper(s))
	if p.Days() == 0 {
		return "", fmt.Errorf("%w %q, want one of 1D, 1W, 1M, 3M, 1Y", ErrUnknownPeriod, s)
	}
	return p, nil
}

// Window returns the last bars covering p, all of them when the series is shorter.
func Window(bars []synthetic.Bar, p ChartPeriod) []synthetic.Bar {
	n := p.Days()
	if n >= len(bars) {
		return bars
	}
	return bars[len(bars)-n:]
}
