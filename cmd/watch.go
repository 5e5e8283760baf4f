package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/feed"
	"github.com/google/subcommands"
)

type watchCmd struct {
	seriesFlags
	interval time.Duration
	count    int
	window   int
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "follow live synthetic prices" }
func (*watchCmd) Usage() string {
	return `wls watch [-interval <d>] [-n <ticks>] [-window <bars>] [<ticker>...]

  Extends the series of each ticker by one bar every interval and prints
  the new bars, with the alerts they trigger. Without tickers, watches every
  ticker of the watchlists. Stops after -n bars, or on interrupt.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	c.seriesFlags.SetFlags(f)
	f.DurationVar(&c.interval, "interval", 3*time.Second, "Time between two bars")
	f.IntVar(&c.count, "n", 0, "Number of bars to print, 0 for no limit")
	f.IntVar(&c.window, "window", defaultWindow, "Bars kept per ticker")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := DecodeBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading watchlists %q: %v\n", WatchlistsPath(), err)
		return subcommands.ExitFailure
	}
	tickers := f.Args()
	if len(tickers) == 0 {
		tickers = book.Tickers()
	}
	if len(tickers) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no ticker given and no watchlist to watch")
		return subcommands.ExitUsageError
	}
	cache, err := c.Cache(book)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	for _, t := range tickers {
		if _, err := cache.Series(t); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	fd, err := newFeed(&c.seriesFlags, c.interval, c.window, cache, book.Alerts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ticks, unsubscribe := fd.Subscribe("", len(tickers))
	defer unsubscribe()
	go fd.Run(ctx)

	for n := 0; c.count == 0 || n < c.count; n++ {
		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case tick := <-ticks:
			printTick(tick, cache.Currency)
		}
	}
	return subcommands.ExitSuccess
}

func printTick(tick feed.Tick, currency string) {
	q := watchlist.QuoteOf(tick.Ticker, tick.Bar, currency)
	event := ""
	if q.EarningsDay {
		event = " earnings"
	}
	fmt.Fprintf(stdout, "%s %-6s %10s %10s %8s dpi=%.2f momentum=%+.2f%s\n",
		q.Date, q.Ticker, q.Price, q.Change.SignedString(), q.ChangePercent.SignedString(), q.DPI, q.AnalystMomentum, event)
	for _, a := range tick.Triggered {
		fmt.Fprintf(stdout, "  alert %s\n", a)
	}
}
