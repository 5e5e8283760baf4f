package cmd

import (
	"time"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/feed"
)

// defaultWindow is the number of bars kept per ticker by the live feed.
const defaultWindow = 365

// newFeed returns a live feed over cache, continuing series with the
// generator described by s.
func newFeed(s *seriesFlags, interval time.Duration, window int, cache *watchlist.Cache, alerts []*watchlist.Alert) (*feed.Feed, error) {
	g, err := s.Generator()
	if err != nil {
		return nil, err
	}
	return feed.New(feed.Config{Interval: interval, Window: window, Generator: g}, cache, alerts), nil
}
