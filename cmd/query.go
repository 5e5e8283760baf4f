package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/watchlist/synthetic"
	"github.com/google/subcommands"
)

type queryCmd struct {
	seriesFlags
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query a series with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `wls query [-days <n>] [-seed <s>] <ticker> <jsonpath>

  Evaluates the JSONPath expression over the JSON series of ticker and
  prints the result as JSON. For instance, the dates of the earnings days:

    wls query AAPL '$[?(@.iv_event_flag)].date'
`
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: want a ticker and a JSONPath expression")
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
	bars, err := cache.Series(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	result, err := Query(bars, f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// Query evaluates the JSONPath expression path over the JSON form of bars.
func Query(bars []synthetic.Bar, path string) (interface{}, error) {
	data, err := json.Marshal(bars)
	if err != nil {
		return nil, err
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	result, err := jsonpath.Get(path, v)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", path, err)
	}
	return result, nil
}
