// Package export writes generated series to files.
package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/etnz/watchlist/synthetic"
)

// Writer encodes a series in one file format.
type Writer interface {
	Write(w io.Writer, bars []synthetic.Bar) error
	Extension() string
}

var writers = map[string]Writer{
	"json":    JSON{},
	"jsonl":   JSONLines{},
	"csv":     CSV{},
	"parquet": Parquet{},
}

// Formats returns the supported format names, sorted.
func Formats() []string {
	formats := make([]string, 0, len(writers))
	for f := range writers {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// New returns the writer of format.
func New(format string) (Writer, error) {
	w, ok := writers[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("unsupported format %q (use one of %s)", format, strings.Join(Formats(), ", "))
	}
	return w, nil
}

// ForPath returns the writer matching the extension of path.
func ForPath(path string) (Writer, error) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return nil, fmt.Errorf("no extension in %q", path)
	}
	return New(path[i+1:])
}

// WriteFile writes bars to path using w.
func WriteFile(path string, w Writer, bars []synthetic.Bar) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return w.Write(f, bars)
}

// Row is the flat record of a bar in tabular formats.
type Row struct {
	Date            string  `json:"date" parquet:"date"`
	Open            float64 `json:"open" parquet:"open"`
	High            float64 `json:"high" parquet:"high"`
	Low             float64 `json:"low" parquet:"low"`
	Close           float64 `json:"close" parquet:"close"`
	IVEventFlag     bool    `json:"iv_event_flag" parquet:"iv_event_flag"`
	DPI             float64 `json:"dpi" parquet:"dpi"`
	AnalystMomentum float64 `json:"analyst_momentum" parquet:"analyst_momentum"`
}

// Rows converts bars to rows.
func Rows(bars []synthetic.Bar) []Row {
	rows := make([]Row, len(bars))
	for i, b := range bars {
		rows[i] = Row{
			Date:            b.Date.String(),
			Open:            b.Open,
			High:            b.High,
			Low:             b.Low,
			Close:           b.Close,
			IVEventFlag:     b.IVEventFlag,
			DPI:             b.DPI,
			AnalystMomentum: b.AnalystMomentum,
		}
	}
	return rows
}
