package watchlist

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trigger types.
const (
	TriggerHigh = "high"
	TriggerLow  = "low"
)

// Alert fires once when a ticker price crosses one of its thresholds.
type Alert struct {
	ID        uuid.UUID
	Ticker    string
	High      decimal.NullDecimal
	Low       decimal.NullDecimal
	Email     string
	Active    bool
	CreatedAt time.Time

	TriggeredAt    time.Time
	TriggeredPrice decimal.Decimal
	TriggerType    string // TriggerHigh, TriggerLow or "" while pending
}

// NewAlert returns an active alert on ticker. At least one of high and low
// must be set, and low must be below high when both are.
func NewAlert(ticker string, high, low *float64, email string) (*Alert, error) {
	t, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	a := &Alert{
		ID:        uuid.New(),
		Ticker:    t,
		Email:     email,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if high != nil {
		a.High = decimal.NewNullDecimal(decimal.NewFromFloat(*high))
	}
	if low != nil {
		a.Low = decimal.NewNullDecimal(decimal.NewFromFloat(*low))
	}
	switch {
	case !a.High.Valid && !a.Low.Valid:
		return nil, fmt.Errorf("%w on %s: no threshold", ErrInvalidAlert, t)
	case a.High.Valid && a.Low.Valid && !a.Low.Decimal.LessThan(a.High.Decimal):
		return nil, fmt.Errorf("%w on %s: low %s is not below high %s", ErrInvalidAlert, t, a.Low.Decimal, a.High.Decimal)
	}
	return a, nil
}

// Triggered reports whether a already fired.
func (a *Alert) Triggered() bool { return a.TriggerType != "" }

// Check fires a if it is active, untriggered and price crossed a threshold.
// When both thresholds are crossed the low one wins.
//
// A fired alert is deactivated.
func (a *Alert) Check(price float64, at time.Time) bool {
	if !a.Active || a.Triggered() {
		return false
	}
	p := decimal.NewFromFloat(price)
	var kind string
	if a.High.Valid && p.GreaterThanOrEqual(a.High.Decimal) {
		kind = TriggerHigh
	}
	if a.Low.Valid && p.LessThanOrEqual(a.Low.Decimal) {
		kind = TriggerLow
	}
	if kind == "" {
		return false
	}
	a.TriggerType = kind
	a.TriggeredAt = at
	a.TriggeredPrice = p
	a.Active = false
	return true
}

// CheckAlerts checks the alerts on ticker against price and returns the ones that fired.
func CheckAlerts(alerts []*Alert, ticker string, price float64, at time.Time) []*Alert {
	var fired []*Alert
	for _, a := range alerts {
		if a.Ticker != ticker {
			continue
		}
		if a.Check(price, at) {
			fired = append(fired, a)
		}
	}
	return fired
}

// String returns a one line description of a.
func (a *Alert) String() string {
	switch {
	case a.Triggered():
		return fmt.Sprintf("%s %s at %s on %s", a.Ticker, a.TriggerType, a.TriggeredPrice.StringFixed(2), a.TriggeredAt.Format(time.DateTime))
	case a.High.Valid && a.Low.Valid:
		return fmt.Sprintf("%s outside [%s, %s]", a.Ticker, a.Low.Decimal.StringFixed(2), a.High.Decimal.StringFixed(2))
	case a.High.Valid:
		return fmt.Sprintf("%s >= %s", a.Ticker, a.High.Decimal.StringFixed(2))
	default:
		return fmt.Sprintf("%s <= %s", a.Ticker, a.Low.Decimal.StringFixed(2))
	}
}

// MarshalJSON uses the field names of the alerts endpoint.
func (a *Alert) MarshalJSON() ([]byte, error) {
	var w jsonObject
	w.Field("id", a.ID.String()).
		Field("stock_ticker", a.Ticker)
	if a.High.Valid {
		w.Field("high_price", a.High.Decimal.InexactFloat64())
	} else {
		w.Field("high_price", nil)
	}
	if a.Low.Valid {
		w.Field("low_price", a.Low.Decimal.InexactFloat64())
	} else {
		w.Field("low_price", nil)
	}
	w.Field("email", a.Email).
		Field("is_active", a.Active).
		Field("created_at", a.CreatedAt)
	if a.Triggered() {
		w.Field("triggered_at", a.TriggeredAt).
			Field("triggered_price", a.TriggeredPrice.InexactFloat64()).
			Field("trigger_type", a.TriggerType)
	}
	return w.MarshalJSON()
}
