package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/watchlist/export"
	"github.com/etnz/watchlist/logger"
	"github.com/google/subcommands"
)

type exportCmd struct {
	seriesFlags
	format    string
	dir       string
	watchlist string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the series of tickers to files" }
func (*exportCmd) Usage() string {
	return `wls export [-format csv|json|jsonl|parquet] [-dir <dir>] [-w <watchlist>] [<ticker>...]

  Writes the series of each ticker to <dir>/<TICKER>.<format>. Without
  tickers, exports the stocks of the watchlist given by -w, or of every
  watchlist.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.seriesFlags.SetFlags(f)
	f.StringVar(&c.format, "format", "csv", "Output format")
	f.StringVar(&c.dir, "dir", ".", "Output directory")
	f.StringVar(&c.watchlist, "w", "", "Watchlist to export")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := export.New(c.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	book, err := DecodeBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading watchlists %q: %v\n", WatchlistsPath(), err)
		return subcommands.ExitFailure
	}
	tickers := f.Args()
	switch {
	case len(tickers) > 0:
	case c.watchlist != "":
		wl, err := book.Get(c.watchlist)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		tickers = wl.Tickers()
	default:
		tickers = book.Tickers()
	}
	if len(tickers) == 0 {
		fmt.Fprintln(os.Stderr, "Error: nothing to export")
		return subcommands.ExitUsageError
	}

	cache, err := c.Cache(book)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.dir, err)
		return subcommands.ExitFailure
	}
	log := logger.Get().WithComponent("export")
	for _, t := range tickers {
		bars, err := cache.Series(t)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		path := filepath.Join(c.dir, strings.ToUpper(t)+"."+w.Extension())
		if err := export.WriteFile(path, w, bars); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", path, err)
			return subcommands.ExitFailure
		}
		log.WithFields(logger.Fields{"ticker": t, "path": path, "bars": len(bars)}).Info("exported")
	}
	return subcommands.ExitSuccess
}
