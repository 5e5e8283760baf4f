package synthetic

// Defaults used by Generate.
const (
	DefaultDays         = 252
	DefaultInitialPrice = 150.0
)

// Params holds the constants of the price model.
//
// They are illustrative values for a demo series, none of them is derived
// from a real financial model.
type Params struct {
	AnnualDrift      float64 // yearly upward trend
	AnnualVolatility float64 // baseline yearly volatility
	TradingDays      int     // trading days in a year

	EarningsCycle         int     // days between two earnings events
	EarningsShock         float64 // one-off move on an earnings day, as a fraction of price
	PostEarningsVolFactor float64 // volatility multiplier on the earnings day
	PreEarningsVolFactor  float64 // volatility multiplier on the day before

	DPIStart float64 // initial dark pool index
	DPIStep  float64 // width of the daily uniform perturbation
	DPIMin   float64
	DPIMax   float64
	DPIHigh  float64 // above: accumulation
	DPILow   float64 // below: distribution
	DPIDrift float64 // drift nudge when above DPIHigh or below DPILow

	RevisionProbability float64 // daily probability of an analyst revision
	RevisionBias        float64 // revision is uniform in [-bias, 1-bias)
	MomentumDecay       float64 // daily momentum multiplier
	MomentumDrift       float64 // drift per unit of momentum
}

// DefaultParams returns the parameters of the reference model.
func DefaultParams() Params {
	return Params{
		AnnualDrift:      0.15,
		AnnualVolatility: 0.30,
		TradingDays:      252,

		EarningsCycle:         63,
		EarningsShock:         0.08,
		PostEarningsVolFactor: 0.5,
		PreEarningsVolFactor:  2.0,

		DPIStart: 50,
		DPIStep:  5,
		DPIMin:   10,
		DPIMax:   90,
		DPIHigh:  75,
		DPILow:   25,
		DPIDrift: 0.001,

		RevisionProbability: 0.05,
		RevisionBias:        0.45,
		MomentumDecay:       0.99,
		MomentumDrift:       0.0005,
	}
}

// isEarningsDay reports whether the i-th bar carries an earnings event.
func (p Params) isEarningsDay(i int) bool {
	return p.EarningsCycle > 0 && i > 0 && i%p.EarningsCycle == 0
}

// isEarningsEve reports whether the i-th bar is the day before an earnings event.
func (p Params) isEarningsEve(i int) bool {
	return p.EarningsCycle > 0 && i > 0 && i%p.EarningsCycle == p.EarningsCycle-1
}
