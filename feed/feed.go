// Package feed extends cached series with one new bar per tick, as a
// live market would, and checks price alerts on every new bar.
package feed

import (
	"context"
	"sync"
	"time"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/date"
	"github.com/etnz/watchlist/logger"
	"github.com/etnz/watchlist/synthetic"
	"golang.org/x/time/rate"
)

// Config holds the feed settings. Zero values mean the defaults.
type Config struct {
	Interval  time.Duration        // between two ticks, 3s by default
	Window    int                  // bars kept per ticker, 365 by default
	Burst     int                  // ticks allowed back to back, 1 by default
	Generator *synthetic.Generator // nil means synthetic.New()
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = 3 * time.Second
	}
	if c.Window <= 0 {
		c.Window = 365
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	if c.Generator == nil {
		c.Generator = synthetic.New()
	}
	return c
}

// Tick is a new bar on a ticker.
type Tick struct {
	Ticker    string             `json:"ticker"`
	Bar       synthetic.Bar      `json:"bar"`
	Triggered []*watchlist.Alert `json:"triggered_alerts,omitempty"`
}

type subscriber struct {
	ticker string
	ch     chan Tick
}

// Feed extends every series of a cache on each tick.
//
// The extended window is written back to the cache, so quotes and charts
// follow the feed.
type Feed struct {
	cfg   Config
	cache *watchlist.Cache
	log   *logger.Entry

	mu      sync.Mutex
	alerts  []*watchlist.Alert
	walkers map[string]*synthetic.Walker
	history map[string]*date.History[synthetic.Bar]
	subs    map[int]subscriber
	nextSub int
}

// New returns a feed over cache checking alerts.
func New(cfg Config, cache *watchlist.Cache, alerts []*watchlist.Alert) *Feed {
	return &Feed{
		cfg:     cfg.withDefaults(),
		cache:   cache,
		log:     logger.Get().WithComponent("feed"),
		alerts:  alerts,
		walkers: make(map[string]*synthetic.Walker),
		history: make(map[string]*date.History[synthetic.Bar]),
		subs:    make(map[int]subscriber),
	}
}

// Run ticks until ctx is done.
func (f *Feed) Run(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Every(f.cfg.Interval), f.cfg.Burst)
	f.log.WithFields(logger.Fields{"interval": f.cfg.Interval.String(), "window": f.cfg.Window}).Info("feed started")
	for {
		if err := limiter.Wait(ctx); err != nil {
			f.log.Info("feed stopped")
			return nil
		}
		f.Step()
	}
}

// Step extends every cached ticker by one bar and publishes the ticks.
func (f *Feed) Step() []Tick {
	start := time.Now()
	var ticks []Tick
	for _, t := range f.cache.Tickers() {
		tick, err := f.step(t)
		if err != nil {
			f.log.WithError(err).WithFields(logger.Fields{"ticker": t}).Warn("cannot extend series")
			continue
		}
		ticks = append(ticks, tick)
	}
	f.log.Timed("step", start)
	return ticks
}

func (f *Feed) step(ticker string) (Tick, error) {
	f.mu.Lock()
	w, ok := f.walkers[ticker]
	if !ok {
		bars, err := f.cache.Series(ticker)
		if err != nil {
			f.mu.Unlock()
			return Tick{}, err
		}
		h := &date.History[synthetic.Bar]{Max: f.cfg.Window}
		for _, b := range bars {
			h.Append(b.Date, b)
		}
		w = f.cfg.Generator.Continue(bars)
		f.walkers[ticker] = w
		f.history[ticker] = h
	}
	bar := w.Next()
	h := f.history[ticker]
	h.Append(bar.Date, bar)
	window := h.Slice()

	tick := Tick{Ticker: ticker, Bar: bar}
	for _, a := range watchlist.CheckAlerts(f.alerts, ticker, bar.Close, time.Now()) {
		f.log.WithFields(logger.Fields{"ticker": ticker, "alert": a.ID.String(), "price": bar.Close}).Info("alert triggered: " + a.String())
		c := *a
		tick.Triggered = append(tick.Triggered, &c)
	}
	f.publish(tick)
	f.mu.Unlock()

	return tick, f.cache.Put(ticker, window)
}

// publish sends tick to its subscribers without blocking. f.mu must be held.
func (f *Feed) publish(tick Tick) {
	for _, s := range f.subs {
		if s.ticker != "" && s.ticker != tick.Ticker {
			continue
		}
		select {
		case s.ch <- tick:
		default:
			f.log.WithFields(logger.Fields{"ticker": tick.Ticker}).Debug("slow subscriber, tick dropped")
		}
	}
}

// Subscribe returns a channel of the ticks of ticker, all tickers when empty,
// and a function to unsubscribe. The channel is closed on unsubscribe.
//
// Ticks are dropped when the channel buffer is full.
func (f *Feed) Subscribe(ticker string, buf int) (<-chan Tick, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextSub
	f.nextSub++
	ch := make(chan Tick, max(buf, 0))
	f.subs[id] = subscriber{ticker: ticker, ch: ch}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs, id)
			close(ch)
		})
	}
}

// History returns the rolling window of ticker, nil before its first tick.
func (f *Feed) History(ticker string) []synthetic.Bar {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.history[ticker]
	if !ok {
		return nil
	}
	return h.Slice()
}

// Alerts returns a copy of the alerts checked by the feed.
func (f *Feed) Alerts() []watchlist.Alert {
	f.mu.Lock()
	defer f.mu.Unlock()
	alerts := make([]watchlist.Alert, len(f.alerts))
	for i, a := range f.alerts {
		alerts[i] = *a
	}
	return alerts
}

// AddAlert starts checking a.
func (f *Feed) AddAlert(a *watchlist.Alert) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, a)
}
