package watchlist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// Stock is a ticker followed by a watchlist.
type Stock struct {
	Ticker       string  `yaml:"ticker" json:"ticker"`
	Company      string  `yaml:"company,omitempty" json:"company_name"`
	InitialPrice float64 `yaml:"initial_price,omitempty" json:"initial_price,omitempty"`
}

// Watchlist is a named list of stocks.
type Watchlist struct {
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Primary     bool    `yaml:"primary,omitempty" json:"is_primary"`
	Stocks      []Stock `yaml:"stocks" json:"stocks"`
}

// index returns the position of ticker in w, -1 if absent.
func (w *Watchlist) index(ticker string) int {
	return slices.IndexFunc(w.Stocks, func(s Stock) bool { return s.Ticker == ticker })
}

// Add appends ticker to w.
func (w *Watchlist) Add(ticker string) (Stock, error) {
	t, err := NormalizeTicker(ticker)
	if err != nil {
		return Stock{}, err
	}
	if w.index(t) >= 0 {
		return Stock{}, fmt.Errorf("%w: %s in %q", ErrDuplicateTicker, t, w.Name)
	}
	s := Stock{Ticker: t, Company: CompanyName(t)}
	w.Stocks = append(w.Stocks, s)
	return s, nil
}

// Remove removes ticker from w.
func (w *Watchlist) Remove(ticker string) error {
	t, err := NormalizeTicker(ticker)
	if err != nil {
		return err
	}
	i := w.index(t)
	if i < 0 {
		return fmt.Errorf("%w: %s in %q", ErrUnknownTicker, t, w.Name)
	}
	w.Stocks = slices.Delete(w.Stocks, i, i+1)
	return nil
}

// Tickers returns the tickers of w in order.
func (w *Watchlist) Tickers() []string {
	tickers := make([]string, len(w.Stocks))
	for i, s := range w.Stocks {
		tickers[i] = s.Ticker
	}
	return tickers
}

// Book holds the watchlists and alerts of a user.
type Book struct {
	Currency   string
	Watchlists []*Watchlist
	Alerts     []*Alert
}

// Get returns the watchlist called name.
func (b *Book) Get(name string) (*Watchlist, error) {
	for _, w := range b.Watchlists {
		if w.Name == name {
			return w, nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownWatchlist, name)
}

// Primary returns the first primary watchlist, or the first one, or nil.
func (b *Book) Primary() *Watchlist {
	for _, w := range b.Watchlists {
		if w.Primary {
			return w
		}
	}
	if len(b.Watchlists) > 0 {
		return b.Watchlists[0]
	}
	return nil
}

// Tickers returns every ticker of every watchlist, unique and sorted.
func (b *Book) Tickers() []string {
	seen := make(map[string]bool)
	var tickers []string
	for _, w := range b.Watchlists {
		for _, s := range w.Stocks {
			if !seen[s.Ticker] {
				seen[s.Ticker] = true
				tickers = append(tickers, s.Ticker)
			}
		}
	}
	sort.Strings(tickers)
	return tickers
}

// Validate checks names are set and unique, tickers are valid and unique
// within their watchlist, and initial prices are not negative.
//
// Tickers are normalized in place.
func (b *Book) Validate() error {
	var errs []error
	if b.Currency != "" && !IsCurrency(b.Currency) {
		errs = append(errs, fmt.Errorf("unknown currency %q", b.Currency))
	}
	names := make(map[string]bool)
	for i, w := range b.Watchlists {
		if w.Name == "" {
			errs = append(errs, fmt.Errorf("watchlist #%d has no name", i+1))
		} else if names[w.Name] {
			errs = append(errs, fmt.Errorf("watchlist %q is defined twice", w.Name))
		}
		names[w.Name] = true

		seen := make(map[string]bool)
		for j := range w.Stocks {
			s := &w.Stocks[j]
			t, err := NormalizeTicker(s.Ticker)
			if err != nil {
				errs = append(errs, fmt.Errorf("watchlist %q: %w", w.Name, err))
				continue
			}
			s.Ticker = t
			if seen[t] {
				errs = append(errs, fmt.Errorf("watchlist %q: %w: %s", w.Name, ErrDuplicateTicker, t))
			}
			seen[t] = true
			if s.Company == "" {
				s.Company = CompanyName(t)
			}
			if s.InitialPrice < 0 {
				errs = append(errs, fmt.Errorf("watchlist %q: %s: negative initial price %v", w.Name, t, s.InitialPrice))
			}
		}
	}
	return errors.Join(errs...)
}

// Configure applies the initial prices of b to c.
func (b *Book) Configure(c *Cache) error {
	for _, w := range b.Watchlists {
		for _, s := range w.Stocks {
			if s.InitialPrice <= 0 {
				continue
			}
			if err := c.SetInitialPrice(s.Ticker, s.InitialPrice); err != nil {
				return err
			}
		}
	}
	return nil
}

// bookFile is the YAML layout of a Book.
type bookFile struct {
	Currency   string       `yaml:"currency"`
	Watchlists []*Watchlist `yaml:"watchlists"`
	Alerts     []alertSpec  `yaml:"alerts"`
}

type alertSpec struct {
	Ticker string   `yaml:"ticker"`
	High   *float64 `yaml:"high"`
	Low    *float64 `yaml:"low"`
	Email  string   `yaml:"email"`
}

// DecodeBook reads a YAML book from r and validates it.
func DecodeBook(r io.Reader) (*Book, error) {
	var f bookFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot decode watchlists: %w", err)
	}
	b := &Book{Currency: f.Currency, Watchlists: f.Watchlists}
	if b.Currency == "" {
		b.Currency = "USD"
	}
	for i, a := range f.Alerts {
		alert, err := NewAlert(a.Ticker, a.High, a.Low, a.Email)
		if err != nil {
			return nil, fmt.Errorf("alert #%d: %w", i+1, err)
		}
		b.Alerts = append(b.Alerts, alert)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid watchlists: %w", err)
	}
	return b, nil
}

// LoadBook reads the YAML book at path.
func LoadBook(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open watchlists: %w", err)
	}
	defer f.Close()
	return DecodeBook(f)
}
