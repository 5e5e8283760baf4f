package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/watchlist/export"
	"github.com/google/subcommands"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBook = `
currency: USD
watchlists:
  - name: Tech
    description: big tech
    stocks:
      - ticker: AAPL
        initial_price: 190
      - ticker: MSFT
  - name: Cars
    primary: true
    stocks:
      - ticker: TSLA
alerts:
  - ticker: AAPL
    high: 1
    email: me@example.com
`

// useBook points the -watchlists flag to a file holding content.
func useBook(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watchlists.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	setFlag(t, "watchlists", path)
	setFlag(t, "currency", "")
	t.Setenv(EnvCurrency, "")
}

// run executes c with args and returns what it printed.
func run(t *testing.T, c subcommands.Command, args ...string) (string, subcommands.ExitStatus) {
	t.Helper()
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)
	require.NoError(t, fs.Parse(args))

	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	defer func() { stdout = old }()
	status := c.Execute(context.Background(), fs)
	return buf.String(), status
}

func TestGenerateCSV(t *testing.T) {
	out, status := run(t, &generateCmd{}, "-days", "5", "-seed", "1", "-start", "2025-01-01", "-format", "csv")
	require.Equal(t, subcommands.ExitSuccess, status)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "date,open,high,low,close,iv_event_flag,dpi,analyst_momentum", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2025-01-01,150,"), lines[1])
}

func TestGenerateIsReproducible(t *testing.T) {
	a, _ := run(t, &generateCmd{}, "-days", "20", "-seed", "7", "-start", "2025-01-01", "-format", "jsonl")
	b, _ := run(t, &generateCmd{}, "-days", "20", "-seed", "7", "-start", "2025-01-01", "-format", "jsonl")
	assert.Equal(t, a, b)
}

func TestGenerateMarkdown(t *testing.T) {
	out, status := run(t, &generateCmd{}, "-days", "3", "-ticker", "XYZ")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "XYZ")
}

func TestGenerateParquetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.parquet")
	_, status := run(t, &generateCmd{}, "-days", "10", "-seed", "3", "-o", path)
	require.Equal(t, subcommands.ExitSuccess, status)

	rows, err := parquet.ReadFile[export.Row](path)
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.Equal(t, 150.0, rows[0].Open)
}

func TestGenerateNoDays(t *testing.T) {
	out, status := run(t, &generateCmd{}, "-days", "0", "-format", "csv")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "date,open,high,low,close,iv_event_flag,dpi,analyst_momentum", strings.TrimSpace(out))

	out, status = run(t, &generateCmd{}, "-days", "0", "-ticker", "XYZ")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "No data.")
}

func TestGenerateUsageErrors(t *testing.T) {
	tests := [][]string{
		{"-days", "-1"},
		{"-price", "-1"},
		{"-start", "yesterday"},
		{"-format", "xml"},
	}
	for _, args := range tests {
		_, status := run(t, &generateCmd{}, args...)
		assert.Equal(t, subcommands.ExitUsageError, status, "generate %v", args)
	}
}

func TestQuoteJSON(t *testing.T) {
	useBook(t, testBook)
	out, status := run(t, &quoteCmd{}, "-json", "-seed", "1", "aapl")
	require.Equal(t, subcommands.ExitSuccess, status)

	var quotes []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &quotes))
	require.Len(t, quotes, 1)
	assert.Equal(t, "AAPL", quotes[0]["ticker"])
	assert.Equal(t, "Apple Inc.", quotes[0]["company_name"])
	assert.Equal(t, "USD", quotes[0]["currency"])
}

func TestQuoteDefaultsToBook(t *testing.T) {
	useBook(t, testBook)
	out, status := run(t, &quoteCmd{}, "-seed", "1")
	require.Equal(t, subcommands.ExitSuccess, status)
	for _, ticker := range []string{"AAPL", "MSFT", "TSLA"} {
		assert.Contains(t, out, ticker)
	}
}

func TestQuoteInvalidTicker(t *testing.T) {
	useBook(t, testBook)
	_, status := run(t, &quoteCmd{}, "not a ticker")
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestMissingBookIsEmpty(t *testing.T) {
	setFlag(t, "watchlists", filepath.Join(t.TempDir(), "missing.yaml"))
	out, status := run(t, &watchlistsCmd{})
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "No watchlists.")
}

func TestWatchlists(t *testing.T) {
	useBook(t, testBook)
	out, status := run(t, &watchlistsCmd{})
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "Cars (primary)")
	assert.Contains(t, out, "AAPL, MSFT")
}

func TestShow(t *testing.T) {
	useBook(t, testBook)
	out, status := run(t, &showCmd{}, "-seed", "2")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "# Cars")
	assert.Contains(t, out, "TSLA")

	out, status = run(t, &showCmd{}, "Tech")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "MSFT")

	_, status = run(t, &showCmd{}, "Unknown")
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestChart(t *testing.T) {
	useBook(t, testBook)
	out, status := run(t, &chartCmd{}, "-period", "1w", "-seed", "4", "AAPL")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "# AAPL 1W")

	_, status = run(t, &chartCmd{}, "-period", "2Y", "AAPL")
	assert.Equal(t, subcommands.ExitUsageError, status)
	_, status = run(t, &chartCmd{})
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestQueryInitialPrice(t *testing.T) {
	useBook(t, testBook)
	out, status := run(t, &queryCmd{}, "-seed", "5", "AAPL", "$[0].open")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "190", strings.TrimSpace(out))

	out, status = run(t, &queryCmd{}, "-seed", "5", "-days", "130", "MSFT", "$[?(@.iv_event_flag)].open")
	require.Equal(t, subcommands.ExitSuccess, status)
	var opens []float64
	require.NoError(t, json.Unmarshal([]byte(out), &opens))
	assert.Len(t, opens, 2, "earnings days 63 and 126")
}

func TestQueryPrice(t *testing.T) {
	useBook(t, testBook)
	out, status := run(t, &queryCmd{}, "-price", "42", "SYN", "$[0].open")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "42", strings.TrimSpace(out))

	out, status = run(t, &queryCmd{}, "-price", "42", "AAPL", "$[0].open")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "190", strings.TrimSpace(out), "the book price wins over -price")
}

func TestQueryErrors(t *testing.T) {
	useBook(t, testBook)
	_, status := run(t, &queryCmd{}, "AAPL")
	assert.Equal(t, subcommands.ExitUsageError, status)
	_, status = run(t, &queryCmd{}, "AAPL", "$[")
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestExport(t *testing.T) {
	useBook(t, testBook)
	dir := t.TempDir()
	_, status := run(t, &exportCmd{}, "-dir", dir, "-w", "Tech", "-days", "12", "-format", "json")
	require.Equal(t, subcommands.ExitSuccess, status)
	for _, ticker := range []string{"AAPL", "MSFT"} {
		data, err := os.ReadFile(filepath.Join(dir, ticker+".json"))
		require.NoError(t, err)
		var rows []export.Row
		require.NoError(t, json.Unmarshal(data, &rows))
		assert.Len(t, rows, 12)
	}
	assert.NoFileExists(t, filepath.Join(dir, "TSLA.json"))
}

func TestAlerts(t *testing.T) {
	useBook(t, testBook)
	out, status := run(t, &alertsCmd{}, "-seed", "1")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "# Price alerts")
	assert.Contains(t, out, "high at ")
}

func TestBriefingLocal(t *testing.T) {
	useBook(t, testBook)
	out, status := run(t, &briefingCmd{}, "-local", "-json", "-seed", "1", "Tech")
	require.Equal(t, subcommands.ExitSuccess, status)

	var b struct {
		Name      string   `json:"watchlist_name"`
		Summary   []string `json:"summary"`
		Tickers   []string `json:"stocks_analyzed"`
		Generated bool     `json:"ai_generated"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	assert.Equal(t, "Tech", b.Name)
	assert.Equal(t, []string{"AAPL", "MSFT"}, b.Tickers)
	assert.False(t, b.Generated)
	assert.NotEmpty(t, b.Summary)
}

func TestBriefingMarkdown(t *testing.T) {
	useBook(t, testBook)
	out, status := run(t, &briefingCmd{}, "-local")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "# Daily briefing: Cars")
}

func TestTopic(t *testing.T) {
	out, status := run(t, &topicCmd{})
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.True(t, strings.HasPrefix(out, "# wls\n"), "the readme is the default topic")

	out, status = run(t, &topicCmd{}, "server", "generator")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Less(t, strings.Index(out, "/api/watchlists"), strings.Index(out, "earnings"), "topics keep their order")

	_, status = run(t, &topicCmd{}, "no-such-topic")
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestTopicList(t *testing.T) {
	out, status := run(t, &topicCmd{}, "-list")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "readme\ngenerator\nserver\nwatchlists\n", out)

	_, status = run(t, &topicCmd{}, "-list", "server")
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestCurrencyResolution(t *testing.T) {
	setFlag(t, "currency", "")
	t.Setenv(EnvCurrency, "")
	assert.Equal(t, "USD", Currency(nil))

	t.Setenv(EnvCurrency, "EUR")
	assert.Equal(t, "EUR", Currency(nil))

	setFlag(t, "currency", "GBP")
	assert.Equal(t, "GBP", Currency(nil))
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, e := range Commands {
		assert.Contains(t, c.Sub, e.Cmd.Name())
	}
	assert.Contains(t, c.Sub["generate"].Flags, "days")
	assert.Contains(t, c.Sub["chart"].Flags, "period")
	assert.Contains(t, c.Flags, "watchlists")
	assert.NotNil(t, c.Sub["topic"].Args)
}
