package agent

import (
	"fmt"
	"strings"

	"github.com/etnz/watchlist"
)

// Prompt returns the model prompt describing analyses.
func Prompt(analyses []watchlist.Analysis) string {
	tickers := make([]string, len(analyses))
	var data strings.Builder
	for i, a := range analyses {
		tickers[i] = a.Ticker
		fmt.Fprintf(&data, "Stock: %s - Current Price: %.2f, 30-day Change: %.2f%%, Avg Daily Change: %.2f%%, Volatility: %.2f%%, Earnings days: %d, Dark Pool Index: %.2f, Analyst Momentum: %.2f\n",
			a.Ticker, a.Price, float64(a.Change), float64(a.AverageChange), a.Volatility, a.EarningsDays, a.DPI, a.AnalystMomentum)
	}

	return fmt.Sprintf(`Analyze the following stock data for these tickers: %s

Stock Performance Data:
%s
The series are synthetic. The Dark Pool Index above 75 means accumulation,
below 25 distribution. Analyst momentum above zero means upgrades dominate.

Based on this data, provide a concise bullet point analysis focusing on:
- Key price movements and trends
- Volatility and risk assessment
- Dark pool activity and analyst sentiment
- Overall sentiment for these stocks

Format as bullet points, each starting with a dash (-). Be specific about the numbers and trends.
`, strings.Join(tickers, ", "), data.String())
}
