package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/renderer"
	"github.com/google/subcommands"
)

type alertsCmd struct {
	seriesFlags
}

func (*alertsCmd) Name() string     { return "alerts" }
func (*alertsCmd) Synopsis() string { return "check the price alerts against the last close" }
func (*alertsCmd) Usage() string {
	return `wls alerts [-seed <s>]

  Checks every alert of the watchlists file against the last close of its
  ticker and shows the alerts with their status.
`
}

func (c *alertsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	now := time.Now()
	alerts := make([]watchlist.Alert, 0, len(book.Alerts))
	for _, a := range book.Alerts {
		q, err := cache.Quote(a.Ticker)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		a.Check(q.Price.Float(), now)
		alerts = append(alerts, *a)
	}
	printMarkdown(renderer.AlertsMarkdown(alerts))
	return subcommands.ExitSuccess
}
