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

type showCmd struct {
	seriesFlags
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show the quotes of a watchlist" }
func (*showCmd) Usage() string {
	return `wls show [-seed <s>] [<watchlist>]

  Shows the latest quote of every stock in the watchlist, the primary
  watchlist by default.
`
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := DecodeBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading watchlists %q: %v\n", WatchlistsPath(), err)
		return subcommands.ExitFailure
	}
	w, err := pickWatchlist(book, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cache, err := c.Cache(book)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	quotes, err := cache.Quotes(w.Tickers()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.QuotesMarkdown(w.Name, quotes))
	return subcommands.ExitSuccess
}

// pickWatchlist returns the watchlist called name, or the primary one when name is empty.
func pickWatchlist(book *watchlist.Book, name string) (*watchlist.Watchlist, error) {
	if name != "" {
		return book.Get(name)
	}
	if w := book.Primary(); w != nil {
		return w, nil
	}
	return nil, fmt.Errorf("%w: no watchlist in %q", watchlist.ErrUnknownWatchlist, WatchlistsPath())
}
