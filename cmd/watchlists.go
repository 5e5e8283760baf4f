package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/watchlist/renderer"
	"github.com/google/subcommands"
)

type watchlistsCmd struct{}

func (*watchlistsCmd) Name() string     { return "watchlists" }
func (*watchlistsCmd) Synopsis() string { return "list the watchlists" }
func (*watchlistsCmd) Usage() string {
	return `wls watchlists

  Lists the watchlists of the watchlists file, the primary one first marked.
`
}

func (c *watchlistsCmd) SetFlags(f *flag.FlagSet) {}

func (c *watchlistsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := DecodeBook()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading watchlists %q: %v\n", WatchlistsPath(), err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.WatchlistsMarkdown(book))
	return subcommands.ExitSuccess
}
