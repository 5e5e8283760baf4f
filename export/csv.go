package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/etnz/watchlist/synthetic"
)

// CSV writes the series with a header line.
type CSV struct{}

func (CSV) Extension() string { return "csv" }

func (CSV) Write(w io.Writer, bars []synthetic.Bar) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "open", "high", "low", "close", "iv_event_flag", "dpi", "analyst_momentum"}); err != nil {
		return err
	}
	for _, r := range Rows(bars) {
		if err := cw.Write([]string{
			r.Date,
			floatStr(r.Open),
			floatStr(r.High),
			floatStr(r.Low),
			floatStr(r.Close),
			strconv.FormatBool(r.IVEventFlag),
			floatStr(r.DPI),
			floatStr(r.AnalystMomentum),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
