package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etnz/watchlist/export"
	"github.com/etnz/watchlist/logger"
	"github.com/etnz/watchlist/renderer"
	"github.com/etnz/watchlist/synthetic"
	"github.com/google/subcommands"
)

// generateCmd holds the flags for the 'generate' subcommand.
type generateCmd struct {
	seriesFlags
	ticker string
	format string
	output string
}

func (*generateCmd) Name() string     { return "generate" }
func (*generateCmd) Synopsis() string { return "generate a synthetic price series" }
func (*generateCmd) Usage() string {
	return `wls generate [-days <n>] [-price <p>] [-seed <s>] [-start <date>] [-format <fmt>] [-o <file>]

  Generates a daily OHLC series with earnings events, dark pool index and
  analyst momentum. The series is printed as markdown unless a format or an
  output file is given.

  Formats: md, ` + strings.Join(export.Formats(), ", ") + `.
`
}

func (c *generateCmd) SetFlags(f *flag.FlagSet) {
	c.seriesFlags.SetFlags(f)
	f.StringVar(&c.ticker, "ticker", "SYN", "Ticker shown in the markdown title")
	f.StringVar(&c.format, "format", "", "Output format, defaults to md or the extension of -o")
	f.StringVar(&c.output, "o", "", "Output file, defaults to stdout")
}

func (c *generateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.days < 0 {
		fmt.Fprintf(os.Stderr, "Error: -days must not be negative, got %d\n", c.days)
		return subcommands.ExitUsageError
	}
	if c.price <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -price must be positive, got %v\n", c.price)
		return subcommands.ExitUsageError
	}
	g, err := c.Generator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	start := time.Now()
	bars := g.Generate(c.days, c.price)
	logger.Get().WithComponent("generate").WithFields(logger.Fields{"days": c.days, "seed": c.seed}).Timed("generate", start)

	format := c.format
	if format == "" && c.output != "" {
		if w, err := export.ForPath(c.output); err == nil {
			format = w.Extension()
		}
	}
	if format == "" || format == "md" {
		if c.output == "" {
			printMarkdown(renderer.SeriesMarkdown(c.ticker, bars))
			return subcommands.ExitSuccess
		}
		if err := os.WriteFile(c.output, []byte(renderer.SeriesMarkdown(c.ticker, bars)), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	w, err := export.New(format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := writeSeries(c.output, w, bars); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing series: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// writeSeries writes bars to path, or to stdout when path is empty.
func writeSeries(path string, w export.Writer, bars []synthetic.Bar) error {
	if path == "" {
		return w.Write(stdout, bars)
	}
	return export.WriteFile(path, w, bars)
}
