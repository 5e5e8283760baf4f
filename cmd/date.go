package cmd

import (
	"fmt"

	"github.com/etnz/watchlist/date"
)

func parseDate(s string) (date.Date, error) {
	on, err := date.Parse(s)
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return on, nil
}
