// Package agent writes the daily briefing of a watchlist with Gemini.
package agent

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/etnz/watchlist"
	"github.com/etnz/watchlist/logger"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when Briefer.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// MaxLines is the number of bullet points in a briefing.
const MaxLines = 3

// Briefing is the daily summary of a watchlist.
type Briefing struct {
	Watchlist string               `json:"watchlist_name"`
	Date      time.Time            `json:"date"`
	Summary   []string             `json:"summary"`
	Tickers   []string             `json:"stocks_analyzed"`
	Generated bool                 `json:"ai_generated"` // false when Summary is the fallback
	Analyses  []watchlist.Analysis `json:"-"`
}

// Briefer writes briefings. Without a Client it always uses the fallback summary.
type Briefer struct {
	Client *genai.Client
	Model  string

	// generate replaces the Gemini call in tests.
	generate func(ctx context.Context, prompt string) (string, error)
}

// NewClient returns a Gemini client using GEMINI_API_KEY, or nil when it is not set.
func NewClient(ctx context.Context) (*genai.Client, error) {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return nil, nil
	}
	return genai.NewClient(ctx, &genai.ClientConfig{APIKey: key, Backend: genai.BackendGeminiAPI})
}

func (b *Briefer) model() string {
	if b.Model != "" {
		return b.Model
	}
	return DefaultModel
}

func (b *Briefer) ask(ctx context.Context, prompt string) (string, error) {
	if b.generate != nil {
		return b.generate(ctx, prompt)
	}
	if b.Client == nil {
		return "", errors.New("no Gemini client")
	}
	resp, err := b.Client.Models.GenerateContent(ctx, b.model(), genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Brief returns the briefing of the watchlist name over analyses.
//
// It never fails: when the model is unavailable, fails, or answers without
// bullet points, the summary is built from the analyses themselves.
func (b *Briefer) Brief(ctx context.Context, name string, analyses []watchlist.Analysis) Briefing {
	br := Briefing{Watchlist: name, Date: time.Now(), Analyses: analyses, Tickers: []string{}}
	for _, a := range analyses {
		br.Tickers = append(br.Tickers, a.Ticker)
	}
	if len(analyses) == 0 {
		br.Summary = []string{"No stocks in watchlist to analyze."}
		return br
	}

	log := logger.Get().WithComponent("agent").WithFields(logger.Fields{"watchlist": name, "model": b.model()})
	if b.Client != nil || b.generate != nil {
		start := time.Now()
		text, err := b.ask(ctx, Prompt(analyses))
		log.Timed("generate", start)
		if err != nil {
			log.WithError(err).Warn("briefing falls back to the local summary")
		} else if lines := bullets(text); len(lines) > 0 {
			br.Summary, br.Generated = lines, true
			return br
		} else {
			log.Warn("no bullet point in the model answer")
		}
	}
	br.Summary = Fallback(analyses)
	return br
}

// bullets returns the first MaxLines lines of text starting with a dash.
func bullets(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") {
			continue
		}
		lines = append(lines, line)
		if len(lines) == MaxLines {
			break
		}
	}
	return lines
}

// Fallback returns the local summary of analyses, at most MaxLines lines.
func Fallback(analyses []watchlist.Analysis) []string {
	var lines []string
	for _, a := range analyses {
		for _, s := range a.Summary() {
			lines = append(lines, "- "+s)
		}
	}
	if len(lines) > MaxLines {
		lines = lines[:MaxLines]
	}
	return lines
}
