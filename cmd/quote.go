package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/watchlist/renderer"
	"github.com/google/subcommands"
)

type quoteCmd struct {
	seriesFlags
	json bool
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "show the latest quote of tickers" }
func (*quoteCmd) Usage() string {
	return `wls quote [-json] [-seed <s>] [<ticker>...]

  Shows the last bar of each ticker: price, intraday change, dark pool index,
  analyst momentum and earnings event. Without tickers, quotes every ticker
  of the watchlists.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	c.seriesFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "Print quotes as JSON")
}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		fmt.Fprintln(os.Stderr, "Error: no ticker given and no watchlist to quote")
		return subcommands.ExitUsageError
	}
	cache, err := c.Cache(book)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	quotes, err := cache.Quotes(tickers...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(quotes); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding quotes: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.QuotesMarkdown("Quotes", quotes))
	return subcommands.ExitSuccess
}
