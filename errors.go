package watchlist

import "errors"

var (
	ErrInvalidTicker    = errors.New("invalid ticker")
	ErrUnknownWatchlist = errors.New("unknown watchlist")
	ErrUnknownPeriod    = errors.New("unknown chart period")
	ErrInvalidAlert     = errors.New("invalid price alert")
	ErrDuplicateTicker  = errors.New("ticker already in watchlist")
	ErrUnknownTicker    = errors.New("ticker not in watchlist")
)
