package renderer

import (
	"bytes"
	"fmt"
	"math"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/synthetic"
	md "github.com/nao1215/markdown"
)

// SeriesMarkdown renders bars as a table, one row per day.
func SeriesMarkdown(ticker string, bars []synthetic.Bar) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("%s (%s)", ticker, watchlist.CompanyName(ticker)))
	doc.PlainText("")
	if len(bars) == 0 {
		doc.PlainText("No data.")
		return doc.String()
	}
	span := synthetic.Span(bars)
	doc.PlainText(fmt.Sprintf("%d days from %s to %s.", span.Len(), span.From, span.To))
	doc.PlainText("")

	rows := make([][]string, len(bars))
	for i, b := range bars {
		event := ""
		if b.IVEventFlag {
			event = "earnings"
		}
		rows[i] = []string{
			b.Date.String(),
			fmt.Sprintf("%.2f", b.Open),
			fmt.Sprintf("%.2f", b.High),
			fmt.Sprintf("%.2f", b.Low),
			fmt.Sprintf("%.2f", b.Close),
			intraday(b).SignedString(),
			fmt.Sprintf("%.2f", b.DPI),
			fmt.Sprintf("%+.2f", b.AnalystMomentum),
			event,
		}
	}
	doc.Table(md.TableSet{
		Header:    []string{"Date", "Open", "High", "Low", "Close", "Change", "DPI", "Momentum", "Event"},
		Rows:      rows,
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft},
	})
	return doc.String()
}

// intraday returns the open to close change of b.
func intraday(b synthetic.Bar) watchlist.Percent { return watchlist.Change(b.Open, b.Close) }

var blocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values with unicode blocks, lowest to highest.
// A flat series is drawn with the middle block.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	line := make([]rune, len(values))
	for i, v := range values {
		if hi == lo {
			line[i] = blocks[len(blocks)/2-1]
			continue
		}
		line[i] = blocks[int(math.Round((v-lo)/(hi-lo)*float64(len(blocks)-1)))]
	}
	return string(line)
}

// sample returns at most n values evenly picked in values, the last one included.
func sample(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	out := make([]float64, n)
	for i := range n {
		out[i] = values[i*(len(values)-1)/(n-1)]
	}
	return out
}

// ChartWidth is the largest number of points drawn by ChartMarkdown.
const ChartWidth = 60

// ChartMarkdown renders the close prices of the period as a sparkline and its statistics.
func ChartMarkdown(ticker string, period watchlist.ChartPeriod, bars []synthetic.Bar) string {
	bars = watchlist.Window(bars, period)
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("%s %s", ticker, period))
	doc.PlainText("")
	if len(bars) == 0 {
		doc.PlainText("No data.")
		return doc.String()
	}
	closes := synthetic.Closes(bars)
	doc.PlainText("`" + Sparkline(sample(closes, ChartWidth)) + "`")
	doc.PlainText("")

	lo, hi := closes[0], closes[0]
	for _, c := range closes {
		lo, hi = min(lo, c), max(hi, c)
	}
	first, last := bars[0], bars[len(bars)-1]
	change := watchlist.Change(first.Open, last.Close)
	doc.Table(md.TableSet{
		Header: []string{"From", "To", "Open", "Close", "Low", "High", "Change"},
		Rows: [][]string{{
			first.Date.String(),
			last.Date.String(),
			fmt.Sprintf("%.2f", first.Open),
			fmt.Sprintf("%.2f", last.Close),
			fmt.Sprintf("%.2f", lo),
			fmt.Sprintf("%.2f", hi),
			change.SignedString(),
		}},
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
	})
	return doc.String()
}
