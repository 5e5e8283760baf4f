package export

import (
	"io"

	"github.com/etnz/watchlist/synthetic"
	"github.com/parquet-go/parquet-go"
)

// Parquet writes the series as a parquet file of Row.
type Parquet struct{}

func (Parquet) Extension() string { return "parquet" }

func (Parquet) Write(w io.Writer, bars []synthetic.Bar) error {
	return parquet.Write(w, Rows(bars))
}
