package watchlist

import (
	"sync"
	"testing"
	"time"

	"github.com/etnz/watchlist/date"
	"github.com/etnz/watchlist/synthetic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(seed uint64) *Cache {
	return NewCache(&synthetic.Generator{
		Params: synthetic.DefaultParams(),
		Rand:   synthetic.NewSource(seed),
		Start:  date.New(2025, time.January, 1),
	}, "USD")
}

func TestCacheSeries(t *testing.T) {
	c := newTestCache(1)
	bars, err := c.Series("aapl")
	require.NoError(t, err)
	assert.Len(t, bars, synthetic.DefaultDays)
	assert.Equal(t, synthetic.DefaultInitialPrice, bars[0].Open)

	again, err := c.Series("AAPL")
	require.NoError(t, err)
	assert.Equal(t, bars, again, "a cached series must be stable")

	bars[0].Close = -1
	again, _ = c.Series("AAPL")
	assert.NotEqual(t, -1.0, again[0].Close, "Series must return a copy")

	assert.Equal(t, []string{"AAPL"}, c.Tickers())
}

func TestCacheInvalidTicker(t *testing.T) {
	c := newTestCache(1)
	_, err := c.Series("not a ticker")
	assert.ErrorIs(t, err, ErrInvalidTicker)
	assert.ErrorIs(t, c.SetInitialPrice("", 10), ErrInvalidTicker)
}

func TestCacheInitialPrice(t *testing.T) {
	c := newTestCache(2)
	require.NoError(t, c.SetInitialPrice("msft", 300))
	assert.Equal(t, 300.0, c.InitialPrice("MSFT"))
	assert.Equal(t, synthetic.DefaultInitialPrice, c.InitialPrice("AAPL"))

	bars, err := c.Series("MSFT")
	require.NoError(t, err)
	assert.Equal(t, 300.0, bars[0].Open)
}

func TestCacheDefaultPrice(t *testing.T) {
	c := newTestCache(2)
	c.DefaultPrice = 42
	require.NoError(t, c.SetInitialPrice("MSFT", 300))
	assert.Equal(t, 300.0, c.InitialPrice("MSFT"), "a ticker price wins over the default")
	assert.Equal(t, 42.0, c.InitialPrice("AAPL"))

	bars, err := c.Series("AAPL")
	require.NoError(t, err)
	assert.Equal(t, 42.0, bars[0].Open)
}

func TestCacheRegenerateAndDrop(t *testing.T) {
	c := newTestCache(3)
	first, err := c.Series("TSLA")
	require.NoError(t, err)
	second, err := c.Regenerate("TSLA")
	require.NoError(t, err)
	assert.NotEqual(t, synthetic.Closes(first), synthetic.Closes(second))

	cached, _ := c.Series("TSLA")
	assert.Equal(t, second, cached)

	c.Drop("tsla")
	assert.Empty(t, c.Tickers())
}

func TestCacheQuote(t *testing.T) {
	c := newTestCache(4)
	c.Days = 10
	q, err := c.Quote("nvda")
	require.NoError(t, err)
	bars, _ := c.Series("NVDA")
	require.Len(t, bars, 10)
	assert.Equal(t, "NVDA", q.Ticker)
	assert.Equal(t, "NVIDIA Corporation", q.Company)
	assert.Equal(t, bars[9].Close, q.Price.Float())
	assert.Equal(t, bars[9].Date, q.Date)

	quotes, err := c.Quotes("NVDA", "AMD")
	require.NoError(t, err)
	assert.Len(t, quotes, 2)
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := newTestCache(5)
	tickers := []string{"AAPL", "MSFT", "GOOGL", "AMZN"}
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			bars, err := c.Series(ticker)
			assert.NoError(t, err)
			assert.Len(t, bars, synthetic.DefaultDays)
		}(tickers[i%len(tickers)])
	}
	wg.Wait()
	assert.Equal(t, []string{"AAPL", "AMZN", "GOOGL", "MSFT"}, c.Tickers())
}
