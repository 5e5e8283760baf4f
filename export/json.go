package export

import (
	"encoding/json"
	"io"

	"github.com/etnz/watchlist/synthetic"
)

// JSON writes the series as an indented array.
type JSON struct{}

func (JSON) Extension() string { return "json" }

func (JSON) Write(w io.Writer, bars []synthetic.Bar) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(bars)
}

// JSONLines writes one bar per line.
type JSONLines struct{}

func (JSONLines) Extension() string { return "jsonl" }

func (JSONLines) Write(w io.Writer, bars []synthetic.Bar) error {
	enc := json.NewEncoder(w)
	for _, b := range bars {
		if err := enc.Encode(b); err != nil {
			return err
		}
	}
	return nil
}
