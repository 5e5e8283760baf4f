// Package watchlist is the domain layer of the wls tool: stock watchlists
// whose prices come from the synthetic generator, quotes derived from
// generated bars, price alerts, and the statistics fed to the daily
// briefing.
//
// The price history of a ticker lives in a Cache, generated on first use and
// held in memory only. Watchlists and alerts are read from a YAML Book; they
// are never written back.
package watchlist
