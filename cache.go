package watchlist

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/etnz/watchlist/synthetic"
)

// Cache maps tickers to their generated series.
//
// A series is generated on first access and kept until it is regenerated
// or dropped. Cache is safe for concurrent use.
type Cache struct {
	Currency string
	Days     int // length of generated series, synthetic.DefaultDays when 0

	// DefaultPrice is the starting price of tickers without their own,
	// synthetic.DefaultInitialPrice when 0.
	DefaultPrice float64

	mu     sync.RWMutex
	gen    *synthetic.Generator
	series map[string][]synthetic.Bar
	prices map[string]float64
}

// NewCache returns an empty cache generating series with gen, or with the
// default generator when gen is nil.
func NewCache(gen *synthetic.Generator, currency string) *Cache {
	if gen == nil {
		gen = synthetic.New()
	}
	return &Cache{
		Currency: currency,
		gen:      gen,
		series:   make(map[string][]synthetic.Bar),
		prices:   make(map[string]float64),
	}
}

// SetInitialPrice sets the starting price used the next time ticker is generated.
func (c *Cache) SetInitialPrice(ticker string, price float64) error {
	t, err := NormalizeTicker(ticker)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices[t] = price
	return nil
}

// InitialPrice returns the starting price of ticker.
func (c *Cache) InitialPrice(ticker string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialPrice(ticker)
}

func (c *Cache) initialPrice(t string) float64 {
	if p, ok := c.prices[t]; ok && p > 0 {
		return p
	}
	if c.DefaultPrice > 0 {
		return c.DefaultPrice
	}
	return synthetic.DefaultInitialPrice
}

func (c *Cache) days() int {
	if c.Days > 0 {
		return c.Days
	}
	return synthetic.DefaultDays
}

// Series returns a copy of the series of ticker, generating it if needed.
func (c *Cache) Series(ticker string) ([]synthetic.Bar, error) {
	t, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	bars, ok := c.series[t]
	c.mu.RUnlock()
	if ok {
		return slices.Clone(bars), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// another caller may have generated it meanwhile.
	if bars, ok := c.series[t]; ok {
		return slices.Clone(bars), nil
	}
	bars = c.generate(t)
	return slices.Clone(bars), nil
}

// generate replaces the series of t. c.mu must be held for writing.
func (c *Cache) generate(t string) []synthetic.Bar {
	bars := c.gen.Generate(c.days(), c.initialPrice(t))
	c.series[t] = bars
	return bars
}

// Regenerate replaces the series of ticker with a fresh one and returns a copy.
func (c *Cache) Regenerate(ticker string) ([]synthetic.Bar, error) {
	t, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.generate(t)), nil
}

// Put replaces the series of ticker with bars.
func (c *Cache) Put(ticker string, bars []synthetic.Bar) error {
	t, err := NormalizeTicker(ticker)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.series[t] = slices.Clone(bars)
	return nil
}

// Drop forgets the series of ticker.
func (c *Cache) Drop(ticker string) {
	t, err := NormalizeTicker(ticker)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.series, t)
}

// Tickers returns the cached tickers, sorted.
func (c *Cache) Tickers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tickers := make([]string, 0, len(c.series))
	for t := range c.series {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// Quote returns the quote of the last bar of ticker.
func (c *Cache) Quote(ticker string) (Quote, error) {
	bars, err := c.Series(ticker)
	if err != nil {
		return Quote{}, err
	}
	if len(bars) == 0 {
		return Quote{}, fmt.Errorf("no data for %s", ticker)
	}
	t, _ := NormalizeTicker(ticker)
	return QuoteOf(t, bars[len(bars)-1], c.Currency), nil
}

// Quotes returns the quotes of tickers, in order.
func (c *Cache) Quotes(tickers ...string) ([]Quote, error) {
	quotes := make([]Quote, 0, len(tickers))
	for _, t := range tickers {
		q, err := c.Quote(t)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}
