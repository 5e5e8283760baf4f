package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/watchlist"
	md "github.com/nao1215/markdown"
)

// QuotesMarkdown renders quotes as a table under title.
func QuotesMarkdown(title string, quotes []watchlist.Quote) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)
	doc.PlainText("")
	if len(quotes) == 0 {
		doc.PlainText("No stocks.")
		return doc.String()
	}

	rows := make([][]string, len(quotes))
	for i, q := range quotes {
		event := ""
		if q.EarningsDay {
			event = "earnings"
		}
		rows[i] = []string{
			q.Ticker,
			q.Company,
			q.Date.String(),
			q.Price.String(),
			q.Change.SignedString(),
			q.ChangePercent.SignedString(),
			fmt.Sprintf("%.2f", q.DPI),
			fmt.Sprintf("%+.2f", q.AnalystMomentum),
			event,
		}
	}
	doc.Table(md.TableSet{
		Header:    []string{"Ticker", "Company", "Date", "Price", "Change", "Change %", "DPI", "Momentum", "Event"},
		Rows:      rows,
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft},
	})
	return doc.String()
}

// WatchlistsMarkdown renders the watchlists of a book.
func WatchlistsMarkdown(b *watchlist.Book) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Watchlists")
	doc.PlainText("")
	if len(b.Watchlists) == 0 {
		doc.PlainText("No watchlists.")
		return doc.String()
	}
	primary := b.Primary()
	rows := make([][]string, len(b.Watchlists))
	for i, w := range b.Watchlists {
		name := w.Name
		if w == primary {
			name += " (primary)"
		}
		rows[i] = []string{name, w.Description, fmt.Sprint(len(w.Stocks)), strings.Join(w.Tickers(), ", ")}
	}
	doc.Table(md.TableSet{
		Header:    []string{"Name", "Description", "Stocks", "Tickers"},
		Rows:      rows,
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
	})
	return doc.String()
}
