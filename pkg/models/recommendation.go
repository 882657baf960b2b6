package models

// Action is a discrete recommendation level. The scoring table only
// ever emits Buy, Hold, or Sell; the strong variants exist for callers
// that grade externally sourced recommendations.
type Action string

const (
	ActionStrongBuy  Action = "strong_buy"
	ActionBuy        Action = "buy"
	ActionHold       Action = "hold"
	ActionSell       Action = "sell"
	ActionStrongSell Action = "strong_sell"
)

// Confidence grades how firmly a recommendation is held.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Recommendation is the actionable output derived from an overall
// score: what to do, how sure, and how to size the position.
type Recommendation struct {
	Action       Action     `json:"recommendation"`
	Confidence   Confidence `json:"confidence"`
	Score        float64    `json:"score"`
	Rationale    string     `json:"rationale"`
	TimeHorizon  string     `json:"time_horizon"`
	PositionSize string     `json:"position_size"`
}
