package autotrade

// Action is the classified trading decision for one instrument.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
	Hold Action = "HOLD"
)

// Decision is one per-instrument result of an automated trading run.
type Decision struct {
	Stock       string
	Code        string
	ActionScore float64
	Reward      *float64
	Action      Action
}

// Classify maps a model action score to a trading action. The thresholds
// are strict inequalities: a score of exactly ±0.3 is HOLD.
func Classify(score float64) Action {
	switch {
	case score > 0.3:
		return Buy
	case score < -0.3:
		return Sell
	default:
		return Hold
	}
}
