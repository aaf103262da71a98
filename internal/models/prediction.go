// internal/models/prediction.go
package models

import "encoding/json"

// Prediction is the parsed body of a successful scoring call. Value keeps
// the raw JSON so that labels outside the known set survive untouched.
type Prediction struct {
	Value json.RawMessage `json:"prediction"`
	Proba json.RawMessage `json:"proba,omitempty"`
}

// Tier is the risk classification shown to the user.
type Tier string

const (
	TierGood         Tier = "good"
	TierRegular      Tier = "regular"
	TierPoor         Tier = "poor"
	TierUnrecognized Tier = "unrecognized"
)

// Confidence is one row of the confidence section.
type Confidence struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
	Display string  `json:"display"`
}

// ResultView is everything a surface needs to render one outcome.
type ResultView struct {
	SubmissionID string          `json:"submissionId"`
	Tier         Tier            `json:"tier"`
	Message      string          `json:"message"`
	RawValue     json.RawMessage `json:"rawValue"`
	Confidence   []Confidence    `json:"confidence,omitempty"`
	Payload      RequestEnvelope `json:"payload"`
	RawResponse  *Prediction     `json:"rawResponse"`
}
