// Package synthetic generates illustrative daily price series.
//
// The price path is a geometric Brownian motion with drift, overlaid with
// three independent effects, each one a small additive drift nudge or a
// volatility change:
//
//   - a quarterly earnings cycle: a ±8% shock every 63 days, with doubled
//     volatility the day before and halved volatility on the day itself,
//   - a dark pool index (DPI), a bounded random walk in [10, 90] that nudges
//     the drift when it leaves the [25, 75] band,
//   - an analyst momentum, a mean reverting score bumped by rare, mostly
//     positive revisions.
//
// The generator is a fold over an explicit State: every call owns its
// state, so concurrent calls are safe as long as they do not share a
// non thread-safe Source.
package synthetic

import (
	"math"
	"math/rand/v2"

	"github.com/etnz/watchlist/date"
	"github.com/shopspring/decimal"
)

// Source is a uniform random source in [0,1).
//
// *rand.Rand from math/rand/v2 implements it.
type Source interface {
	Float64() float64
}

// systemSource draws from the top level math/rand/v2 generator, which is safe for concurrent use.
type systemSource struct{}

func (systemSource) Float64() float64 { return rand.Float64() }

// NewSource returns a deterministic Source for seed. It is not safe for concurrent use.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Bar is one synthesized trading day.
type Bar struct {
	Date            date.Date `json:"date"`
	Open            float64   `json:"open"`
	High            float64   `json:"high"`
	Low             float64   `json:"low"`
	Close           float64   `json:"close"`
	IVEventFlag     bool      `json:"iv_event_flag"`
	DPI             float64   `json:"dpi"`
	AnalystMomentum float64   `json:"analyst_momentum"`
}

// State is the running state carried from one bar to the next.
//
// It is never rounded.
type State struct {
	Price           float64
	DarkPoolIndex   float64
	AnalystMomentum float64
}

// Initial returns the state before the first bar.
func (p Params) Initial(price float64) State {
	return State{Price: price, DarkPoolIndex: p.DPIStart}
}

// Step computes the i-th bar dated on, from state s, and returns the state for bar i+1.
//
// Random draws are taken from r in a fixed order: earnings coin flip (earnings
// days only), DPI perturbation, revision trigger, revision size (when
// triggered), price noise, high wick, low wick.
func (p Params) Step(r Source, s State, i int, on date.Date) (Bar, State) {
	dailyDrift := p.AnnualDrift / float64(p.TradingDays)
	dailyVol := p.AnnualVolatility / math.Sqrt(float64(p.TradingDays))

	earnings := p.isEarningsDay(i)
	var shock float64
	switch {
	case earnings:
		direction := -1.0
		if r.Float64() > 0.5 {
			direction = 1
		}
		shock = direction * s.Price * p.EarningsShock
		dailyVol *= p.PostEarningsVolFactor
	case p.isEarningsEve(i):
		dailyVol *= p.PreEarningsVolFactor
	}

	s.DarkPoolIndex += (r.Float64() - 0.5) * p.DPIStep
	s.DarkPoolIndex = max(p.DPIMin, min(p.DPIMax, s.DarkPoolIndex))
	var dpiEffect float64
	switch {
	case s.DarkPoolIndex > p.DPIHigh:
		dpiEffect = p.DPIDrift
	case s.DarkPoolIndex < p.DPILow:
		dpiEffect = -p.DPIDrift
	}

	if r.Float64() < p.RevisionProbability {
		s.AnalystMomentum += r.Float64() - p.RevisionBias
	}
	s.AnalystMomentum *= p.MomentumDecay
	momentumEffect := s.AnalystMomentum * p.MomentumDrift

	noise := (r.Float64() - 0.5) * 2 * dailyVol
	drift := dailyDrift + dpiEffect + momentumEffect
	change := s.Price*(drift+noise) + shock

	open := s.Price
	closing := open + change
	high := max(open, closing) + math.Abs(change)*r.Float64()
	low := min(open, closing) - math.Abs(change)*r.Float64()

	bar := Bar{
		Date:            on,
		Open:            Round(open),
		High:            Round(high),
		Low:             Round(low),
		Close:           Round(closing),
		IVEventFlag:     earnings,
		DPI:             Round(s.DarkPoolIndex),
		AnalystMomentum: Round(s.AnalystMomentum),
	}
	s.Price = closing
	return bar, s
}

// Round rounds x half away from zero to 2 decimals.
//
// Every float emitted in a Bar goes through Round. NaN and infinities are
// returned unchanged.
func Round(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

// Generator produces series with configurable parameters, random source and start date.
// Its zero value is not ready to use, see New.
type Generator struct {
	Params Params
	Rand   Source    // nil means the system source
	Start  date.Date // zero means today
}

// New returns a Generator with the default parameters, the system random source, starting today.
func New() *Generator { return &Generator{Params: DefaultParams()} }

// Generate returns exactly days bars starting at initialPrice, using the default model.
//
// A fresh call gives a different series: the random source is the system one.
// days <= 0 returns an empty series.
func Generate(days int, initialPrice float64) []Bar {
	return New().Generate(days, initialPrice)
}

// Generate returns exactly days bars starting at initialPrice.
func (g *Generator) Generate(days int, initialPrice float64) []Bar {
	bars := make([]Bar, 0, max(days, 0))
	w := g.Walker(initialPrice)
	for range max(days, 0) {
		bars = append(bars, w.Next())
	}
	return bars
}

// Walker returns a Walker positioned before the first bar.
func (g *Generator) Walker(initialPrice float64) *Walker {
	r := g.Rand
	if r == nil {
		r = systemSource{}
	}
	start := g.Start
	if start.IsZero() {
		start = date.Today()
	}
	return &Walker{params: g.Params, rand: r, start: start, state: g.Params.Initial(initialPrice)}
}

// Continue returns a Walker positioned after the last of bars, resuming
// from their rounded values. An empty series starts a new one at
// DefaultInitialPrice.
func (g *Generator) Continue(bars []Bar) *Walker {
	if len(bars) == 0 {
		return g.Walker(DefaultInitialPrice)
	}
	w := g.Walker(bars[0].Open)
	last := bars[len(bars)-1]
	w.start = bars[0].Date
	w.i = len(bars)
	w.state = State{Price: last.Close, DarkPoolIndex: last.DPI, AnalystMomentum: last.AnalystMomentum}
	return w
}

// Walker extends a series one bar at a time.
//
// A Walker is not safe for concurrent use.
type Walker struct {
	params Params
	rand   Source
	start  date.Date
	state  State
	i      int
}

// Next returns the next bar.
func (w *Walker) Next() Bar {
	var bar Bar
	bar, w.state = w.params.Step(w.rand, w.state, w.i, w.start.Add(w.i))
	w.i++
	return bar
}

// Index returns the index of the next bar.
func (w *Walker) Index() int { return w.i }

// State returns the current running state.
func (w *Walker) State() State { return w.state }

// Span returns the date range covered by bars, the zero Range when empty.
func Span(bars []Bar) date.Range {
	if len(bars) == 0 {
		return date.Range{}
	}
	return date.Range{From: bars[0].Date, To: bars[len(bars)-1].Date}
}

// Closes returns the close prices of bars.
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
