package analyses

// RiskLevel classifies the overall risk of a contract to the consumer.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "HIGH"
	RiskMedium RiskLevel = "MEDIUM"
	RiskLow    RiskLevel = "LOW"
)

// Known reports whether the level is one of the enumerated values.
func (r RiskLevel) Known() bool {
	switch r {
	case RiskHigh, RiskMedium, RiskLow:
		return true
	default:
		return false
	}
}

// RedFlag pairs a verbatim contract excerpt with a plain-language
// explanation of why it hurts the consumer.
type RedFlag struct {
	Clause      string `json:"clause"`
	Explanation string `json:"explanation"`
}

// Result is the structured risk assessment returned to the client. Produced
// fresh per request, never persisted.
type Result struct {
	RiskLevel  RiskLevel `json:"riskLevel"`
	Summary    string    `json:"summary"`
	RedFlags   []RedFlag `json:"redFlags"`
	GoodPoints []string  `json:"goodPoints"`
}
