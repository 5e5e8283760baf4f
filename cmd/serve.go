package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/watchlist/agent"
	"github.com/etnz/watchlist/feed"
	"github.com/etnz/watchlist/logger"
	"github.com/etnz/watchlist/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	seriesFlags
	addr     string
	interval time.Duration
	debug    bool
	maxDays  int
	window   int
	model    string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the watchlists over HTTP" }
func (*serveCmd) Usage() string {
	return `wls serve [-addr <host:port>] [-interval <d>] [-window <bars>] [-model <model>] [-debug]

  Serves the watchlists, quotes, charts, synthetic series and alerts as a
  JSON API, and the live feed over websockets. Set -interval to 0 to
  disable the live feed. The feed keeps the last -window bars of each
  ticker.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	c.seriesFlags.SetFlags(f)
	f.StringVar(&c.addr, "addr", ":8080", "Address to listen on")
	f.DurationVar(&c.interval, "interval", 3*time.Second, "Time between two live bars, 0 disables the live feed")
	f.IntVar(&c.window, "window", defaultWindow, "Bars kept per ticker by the live feed")
	f.StringVar(&c.model, "model", agent.DefaultModel, "Gemini model of /api/ai-briefing")
	f.BoolVar(&c.debug, "debug", false, "Run the router in debug mode")
	f.IntVar(&c.maxDays, "max-days", 5000, "Largest series served by /api/synthetic")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	// the feed extends cached series only.
	for _, t := range book.Tickers() {
		if _, err := cache.Series(t); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var fd *feed.Feed
	if c.interval > 0 {
		fd, err = newFeed(&c.seriesFlags, c.interval, c.window, cache, book.Alerts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		go fd.Run(ctx)
	}
	briefer := &agent.Briefer{Model: c.model}
	client, err := agent.NewClient(ctx)
	if err != nil {
		logger.Get().WithComponent("serve").WithError(err).Warn("cannot create the Gemini client, briefings are local")
	}
	briefer.Client = client

	srv := server.New(server.Config{Debug: c.debug, MaxDays: c.maxDays, Briefer: briefer}, book, cache, fd)
	if err := srv.Run(ctx, c.addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
