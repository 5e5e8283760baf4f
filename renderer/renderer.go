// Package renderer turns series, quotes, alerts and briefings into markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/watchlist"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templates embed.FS

var funcs = template.FuncMap{
	"signed": func(p watchlist.Percent) string { return fmt.Sprintf("%+.2f%%", float64(p)) },
	"bullet": func(s string) string {
		if strings.HasPrefix(s, "-") {
			return s
		}
		return "- " + s
	},
	"threshold": func(d decimal.NullDecimal) string {
		if !d.Valid {
			return "-"
		}
		return d.Decimal.StringFixed(2)
	},
	"status": func(a watchlist.Alert) string {
		switch {
		case a.Triggered():
			return fmt.Sprintf("%s at %s", a.TriggerType, a.TriggeredPrice.StringFixed(2))
		case a.Active:
			return "active"
		default:
			return "inactive"
		}
	},
}

// renderTemplate executes the template file with data.
func renderTemplate(file string, data any) string {
	content, err := fs.ReadFile(templates, "templates/"+file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}
	tmpl, err := template.New(file).Funcs(funcs).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", file, err)
	}
	return b.String()
}
