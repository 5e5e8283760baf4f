package renderer

import (
	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/agent"
)

// BriefingMarkdown renders a daily briefing.
func BriefingMarkdown(b agent.Briefing) string {
	return renderTemplate("briefing.md", b)
}

// AlertsMarkdown renders a table of alerts.
func AlertsMarkdown(alerts []watchlist.Alert) string {
	return renderTemplate("alerts.md", alerts)
}
