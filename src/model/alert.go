package model

// RiskLevel classifies a predictive alert by its probability
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// RiskLevelFor buckets an alert probability using the given cutoffs
func RiskLevelFor(probability, highCutoff, mediumCutoff float64) RiskLevel {
	switch {
	case probability > highCutoff:
		return RiskHigh
	case probability > mediumCutoff:
		return RiskMedium
	default:
		return RiskLow
	}
}

// TimelineFor maps a risk level to a coarse textual bucket. This is a
// presentation convention, not a calibrated forecast.
func TimelineFor(level RiskLevel) string {
	switch level {
	case RiskHigh:
		return "days"
	case RiskMedium:
		return "weeks"
	default:
		return "months"
	}
}

// PredictiveAlert is a probability-scored forecast of a future defect class,
// derived from risk-pattern matching over extracted code-health signals.
// Alerts live only in the run's Report unless explicitly saved.
type PredictiveAlert struct {
	ID                string    `json:"id"`
	RiskLevel         RiskLevel `json:"risk_level"`
	PredictedError    string    `json:"predicted_error"`
	Probability       float64   `json:"probability"`
	MatchedConditions []string  `json:"matched_conditions"`
	PreventionActions []string  `json:"prevention_actions"`
	Timeline          string    `json:"timeline"`
}
