package models

// Verdict classifies the outcome of a trend evaluation.
type Verdict string

const (
	VerdictBullish          Verdict = "BULLISH"
	VerdictBearish          Verdict = "BEARISH"
	VerdictInsufficientData Verdict = "INSUFFICIENT_DATA"
	VerdictError            Verdict = "ERROR"
)

// Recommendation is the result of a moving-average trend evaluation
// for a single symbol.
type Recommendation struct {
	Symbol        string
	Market        Market
	Verdict       Verdict
	LatestClose   float64
	MovingAverage float64
	Observations  int
	Advice        string // user-facing text, also written to the audit log
}
