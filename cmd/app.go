// Package cmd implements the wls command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/logger"
	"github.com/etnz/watchlist/synthetic"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Commands lists every wls subcommand with its group.
var Commands = []struct {
	Cmd   subcommands.Command
	Group string
}{
	{&generateCmd{}, "series"},
	{&chartCmd{}, "series"},
	{&exportCmd{}, "series"},
	{&queryCmd{}, "series"},

	{&quoteCmd{}, "watchlists"},
	{&watchlistsCmd{}, "watchlists"},
	{&showCmd{}, "watchlists"},
	{&alertsCmd{}, "watchlists"},
	{&briefingCmd{}, "watchlists"},

	{&watchCmd{}, "live"},
	{&serveCmd{}, "live"},

	{&topicCmd{}, "help"},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range Commands {
		c.Register(e.Cmd, e.Group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	watchlistsFile = flag.String("watchlists", "", "Path to the watchlists YAML file (defaults to $"+EnvWatchlists+" or watchlists.yaml)")
	currencyFlag   = flag.String("currency", "", "Currency of the prices (defaults to $"+EnvCurrency+", the watchlists currency or USD)")
	Verbose        = flag.Bool("v", false, "Verbose output, same as -log-level debug")
	logLevel       = flag.String("log-level", "info", "Log level (panic, fatal, error, warn, info, debug, trace)")
	logFormat      = flag.String("log-format", "text", "Log format (text or json)")
	logFile        = flag.String("log-file", "stderr", "Log output: stderr, stdout or a file path")
	logMaxAge      = flag.Int("log-max-age", 0, "Days to keep rotated log files, 0 disables rotation")
)

// Setup loads the .env file and configures the logger from the global flags.
// It must be called after the flags are parsed.
func Setup() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load .env: %w", err)
	}
	level := *logLevel
	if *Verbose {
		level = "debug"
	}
	return logger.Get().Configure(level, *logFormat, *logFile, *logMaxAge)
}

// WatchlistsPath returns the path of the watchlists file.
func WatchlistsPath() string {
	if *watchlistsFile != "" {
		return *watchlistsFile
	}
	if env := os.Getenv(EnvWatchlists); env != "" {
		return env
	}
	return "watchlists.yaml"
}

// DecodeBook loads the watchlists file. A missing file gives an empty book.
func DecodeBook() (*watchlist.Book, error) {
	path := WatchlistsPath()
	b, err := watchlist.LoadBook(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Get().WithComponent("cmd").WithFields(logger.Fields{"path": path}).Debug("no watchlists file, using an empty book")
		b, err = &watchlist.Book{Currency: "USD"}, nil
	}
	if err != nil {
		return nil, err
	}
	b.Currency = Currency(b)
	return b, nil
}

// Currency returns the currency to display prices in.
func Currency(b *watchlist.Book) string {
	switch {
	case *currencyFlag != "":
		return *currencyFlag
	case os.Getenv(EnvCurrency) != "":
		return os.Getenv(EnvCurrency)
	case b != nil && b.Currency != "":
		return b.Currency
	default:
		return "USD"
	}
}

// seriesFlags are the generator flags shared by commands producing series.
type seriesFlags struct {
	days  int
	price float64
	seed  uint64
	start string
}

func (s *seriesFlags) SetFlags(f *flag.FlagSet) {
	f.IntVar(&s.days, "days", synthetic.DefaultDays, "Number of trading days to generate")
	f.Float64Var(&s.price, "price", synthetic.DefaultInitialPrice, "Initial price")
	f.Uint64Var(&s.seed, "seed", 0, "Random seed for a reproducible series, 0 for a random one")
	f.StringVar(&s.start, "start", "", "Date of the first bar (defaults to today)")
}

// Generator returns the generator described by the flags.
func (s *seriesFlags) Generator() (*synthetic.Generator, error) {
	g := synthetic.New()
	if s.seed != 0 {
		g.Rand = synthetic.NewSource(s.seed)
	}
	if s.start != "" {
		on, err := parseDate(s.start)
		if err != nil {
			return nil, err
		}
		g.Start = on
	}
	return g, nil
}

// Cache returns a cache over the generator described by the flags. Tickers
// start at the book price, or at -price when the book has none.
func (s *seriesFlags) Cache(b *watchlist.Book) (*watchlist.Cache, error) {
	g, err := s.Generator()
	if err != nil {
		return nil, err
	}
	c := watchlist.NewCache(g, Currency(b))
	c.Days = s.days
	c.DefaultPrice = s.price
	if err := b.Configure(c); err != nil {
		return nil, err
	}
	return c, nil
}
