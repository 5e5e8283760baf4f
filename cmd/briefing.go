package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/watchlist/agent"
	"github.com/etnz/watchlist/logger"
	"github.com/etnz/watchlist/renderer"
	"github.com/google/subcommands"
)

type briefingCmd struct {
	seriesFlags
	json  bool
	model string
	local bool
}

func (*briefingCmd) Name() string     { return "briefing" }
func (*briefingCmd) Synopsis() string { return "write the daily briefing of a watchlist" }
func (*briefingCmd) Usage() string {
	return `wls briefing [-json] [-model <model>] [-local] [<watchlist>]

  Analyzes the last 30 days of every stock in the watchlist, the primary
  one by default, and writes a short market briefing. The briefing is
  written by Gemini when GEMINI_API_KEY is set, and from the analyses
  otherwise.
`
}

func (c *briefingCmd) SetFlags(f *flag.FlagSet) {
	c.seriesFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "Print the briefing as JSON")
	f.StringVar(&c.model, "model", agent.DefaultModel, "Gemini model")
	f.BoolVar(&c.local, "local", false, "Never call Gemini")
}

func (c *briefingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	analyses, err := cache.Analyses(w.Stocks...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	briefer := &agent.Briefer{Model: c.model}
	if !c.local {
		client, err := agent.NewClient(ctx)
		if err != nil {
			logger.Get().WithComponent("briefing").WithError(err).Warn("cannot create the Gemini client")
		}
		briefer.Client = client
	}
	b := briefer.Brief(ctx, w.Name, analyses)

	if c.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(b); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding briefing: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.BriefingMarkdown(b))
	return subcommands.ExitSuccess
}
