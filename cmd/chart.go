package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/renderer"
	"github.com/google/subcommands"
)

type chartCmd struct {
	seriesFlags
	period string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw the price chart of tickers" }
func (*chartCmd) Usage() string {
	return `wls chart [-period 1D|1W|1M|3M|1Y] [-seed <s>] <ticker>...

  Draws the close prices of each ticker over the period as a sparkline,
  with the period open, close, low, high and change.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	c.seriesFlags.SetFlags(f)
	f.StringVar(&c.period, "period", string(watchlist.Period1M), "Chart period: 1D, 1W, 1M, 3M or 1Y")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one ticker is required")
		return subcommands.ExitUsageError
	}
	period, err := watchlist.ParseChartPeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	book, err := DecodeBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading watchlists %q: %v\n", WatchlistsPath(), err)
		return subcommands.ExitFailure
	}
	cache, err := c.Cache(book)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	for _, t := range f.Args() {
		bars, err := cache.Series(t)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		ticker, _ := watchlist.NormalizeTicker(t)
		printMarkdown(renderer.ChartMarkdown(ticker, period, bars))
	}
	return subcommands.ExitSuccess
}
