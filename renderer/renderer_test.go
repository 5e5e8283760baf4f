package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/agent"
	"github.com/etnz/watchlist/date"
	"github.com/etnz/watchlist/synthetic"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// outline counts the headings, table rows (header excluded) and list items of a markdown document.
type outline struct {
	headings, rows, items int
}

func parse(t *testing.T, src string) outline {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader([]byte(src)))
	var o outline
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			o.headings++
		case ast.KindListItem:
			o.items++
		case east.KindTableRow:
			o.rows++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return o
}

func series(n int) []synthetic.Bar {
	g := &synthetic.Generator{
		Params: synthetic.DefaultParams(),
		Rand:   synthetic.NewSource(3),
		Start:  date.New(2025, time.January, 1),
	}
	return g.Generate(n, 100)
}

func TestSeriesMarkdown(t *testing.T) {
	bars := series(70)
	got := SeriesMarkdown("AAPL", bars)
	o := parse(t, got)
	if o.headings != 1 || o.rows != 70 {
		t.Errorf("got %d headings and %d rows, want 1 and 70:\n%s", o.headings, o.rows, got)
	}
	if !strings.Contains(got, "# AAPL (Apple Inc.)") {
		t.Errorf("missing title:\n%s", got)
	}
	if strings.Count(got, "| earnings |") != 1 {
		t.Errorf("want exactly one earnings row:\n%s", got)
	}
	if !strings.Contains(got, "| 2025-01-01 | 100.00 |") {
		t.Errorf("missing first row:\n%s", got)
	}

	if got := SeriesMarkdown("X", nil); !strings.Contains(got, "No data.") {
		t.Errorf("empty series: %q", got)
	}
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		values []float64
		want   string
	}{
		{nil, ""},
		{[]float64{1, 1, 1}, "▄▄▄"},
		{[]float64{0, 7}, "▁█"},
		{[]float64{0, 1, 2, 3, 4, 5, 6, 7}, "▁▂▃▄▅▆▇█"},
		{[]float64{10, 5, 10}, "█▁█"},
	}
	for _, tc := range tests {
		if got := Sparkline(tc.values); got != tc.want {
			t.Errorf("Sparkline(%v) = %q, want %q", tc.values, got, tc.want)
		}
	}
}

func TestSample(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}
	got := sample(values, 10)
	if len(got) != 10 || got[0] != 0 || got[9] != 99 {
		t.Errorf("sample = %v", got)
	}
	if got := sample(values[:5], 10); len(got) != 5 {
		t.Errorf("short sample = %v", got)
	}
}

func TestChartMarkdown(t *testing.T) {
	bars := series(200)
	got := ChartMarkdown("MSFT", watchlist.Period3M, bars)
	o := parse(t, got)
	if o.headings != 1 || o.rows != 1 {
		t.Errorf("got %d headings and %d rows:\n%s", o.headings, o.rows, got)
	}
	if !strings.Contains(got, "# MSFT 3M") {
		t.Errorf("missing title:\n%s", got)
	}
	if !strings.Contains(got, bars[110].Date.String()) || !strings.Contains(got, bars[199].Date.String()) {
		t.Errorf("want the last 90 days:\n%s", got)
	}
	spark := strings.Split(got, "`")[1]
	if n := len([]rune(spark)); n != ChartWidth {
		t.Errorf("sparkline has %d points, want %d", n, ChartWidth)
	}
}

func TestQuotesMarkdown(t *testing.T) {
	bars := series(3)
	quotes := []watchlist.Quote{
		watchlist.QuoteOf("AAPL", bars[2], "USD"),
		watchlist.QuoteOf("MSFT", bars[1], "USD"),
	}
	got := QuotesMarkdown("Tech", quotes)
	if o := parse(t, got); o.rows != 2 {
		t.Errorf("got %d rows:\n%s", o.rows, got)
	}
	if !strings.Contains(got, "| AAPL | Apple Inc. |") {
		t.Errorf("missing AAPL row:\n%s", got)
	}
	if got := QuotesMarkdown("Empty", nil); !strings.Contains(got, "No stocks.") {
		t.Errorf("empty quotes: %q", got)
	}
}

func TestWatchlistsMarkdown(t *testing.T) {
	b := &watchlist.Book{Watchlists: []*watchlist.Watchlist{
		{Name: "Tech", Stocks: []watchlist.Stock{{Ticker: "AAPL"}, {Ticker: "MSFT"}}},
		{Name: "Cars", Primary: true, Stocks: []watchlist.Stock{{Ticker: "TSLA"}}},
	}}
	got := WatchlistsMarkdown(b)
	if o := parse(t, got); o.rows != 2 {
		t.Errorf("got %d rows:\n%s", o.rows, got)
	}
	if !strings.Contains(got, "| Cars (primary) |") || !strings.Contains(got, "| AAPL, MSFT |") {
		t.Errorf("unexpected table:\n%s", got)
	}
}

func TestAlertsMarkdown(t *testing.T) {
	high, low := 210.0, 150.0
	a1, _ := watchlist.NewAlert("AAPL", &high, &low, "me@example.com")
	a2, _ := watchlist.NewAlert("MSFT", nil, &low, "")
	a2.Check(149, time.Now())

	got := AlertsMarkdown([]watchlist.Alert{*a1, *a2})
	if o := parse(t, got); o.headings != 1 || o.rows != 2 {
		t.Errorf("got %d headings and %d rows:\n%s", o.headings, o.rows, got)
	}
	for _, want := range []string{
		"| AAPL | 210.00 | 150.00 | me@example.com | active |",
		"| MSFT | - | 150.00 |  | low at 149.00 |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}

	if got := strings.TrimSpace(AlertsMarkdown(nil)); got != "# Price alerts\n\nNo alerts." {
		t.Errorf("no alerts: %q", got)
	}
}

func TestBriefingMarkdown(t *testing.T) {
	b := agent.Briefing{
		Watchlist: "Tech",
		Date:      time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC),
		Summary:   []string{"- AAPL is up", "- MSFT is flat"},
		Analyses: []watchlist.Analysis{
			{Ticker: "AAPL", Price: 190, Change: 6.5, DPI: 80},
			{Ticker: "MSFT", Price: 400, Change: -0.25, DPI: 50},
		},
	}
	got := BriefingMarkdown(b)
	o := parse(t, got)
	if o.headings != 1 || o.items != 2 || o.rows != 2 {
		t.Errorf("got %+v:\n%s", o, got)
	}
	for _, want := range []string{
		"# Daily briefing: Tech",
		"*Monday, June 2, 2025, local summary*",
		"| AAPL | 190.00 | +6.50% |",
		"| MSFT | 400.00 | -0.25% |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}

	empty := BriefingMarkdown(agent.Briefing{Watchlist: "Empty", Generated: true, Summary: []string{"No stocks in watchlist to analyze."}})
	if !strings.Contains(empty, "\n- No stocks in watchlist to analyze.") {
		t.Errorf("empty briefing:\n%s", empty)
	}
	if strings.Contains(empty, "local summary") || strings.Contains(empty, "| Ticker |") {
		t.Errorf("empty briefing:\n%s", empty)
	}
}
