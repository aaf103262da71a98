package creditscore

import "credit-score-client/internal/models"

// Input is read from the process variables. Form carries the same fields
// as the HTTP score form.
type Input struct {
	RequestID string          `json:"requestId"`
	Form      models.RawInput `json:"form"`
}

// Output is merged back into the process. CreditTier is duplicated at the
// top level so gateways can route on it directly.
type Output struct {
	RequestID    string             `json:"requestId,omitempty"`
	CreditTier   models.Tier        `json:"creditTier"`
	CreditResult *models.ResultView `json:"creditResult"`
}
