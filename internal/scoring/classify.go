package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"credit-score-client/internal/models"
)

// ConfidenceLabels name the positions of the proba triple.
var ConfidenceLabels = [3]string{"Poor", "Regular", "Good"}

// Classify maps a raw prediction value to a risk tier. Only the numbers 1,
// 0 and -1 are known; anything else, including strings and booleans, is
// unrecognized and displayed as-is.
func Classify(value json.RawMessage) models.Tier {
	n, ok := number(value)
	if !ok {
		return models.TierUnrecognized
	}
	switch n {
	case 1:
		return models.TierGood
	case 0:
		return models.TierRegular
	case -1:
		return models.TierPoor
	default:
		return models.TierUnrecognized
	}
}

// TierMessage is the headline shown for a tier.
func TierMessage(tier models.Tier, value json.RawMessage) string {
	switch tier {
	case models.TierGood:
		return "SCORE: GOOD - risco baixo de inadimplência."
	case models.TierRegular:
		return "SCORE: REGULAR - risco moderado."
	case models.TierPoor:
		return "SCORE: POOR - alto risco de inadimplência."
	default:
		return fmt.Sprintf("Resultado bruto do modelo: %s", bytes.TrimSpace(value))
	}
}

// ConfidenceFrom reads the proba triple as (poor, regular, good)
// percentages rounded to one decimal. Anything but exactly three numbers
// yields nil, meaning the confidence section is omitted.
func ConfidenceFrom(proba json.RawMessage) []models.Confidence {
	if isNull(proba) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(proba, &items); err != nil || len(items) != len(ConfidenceLabels) {
		return nil
	}

	out := make([]models.Confidence, len(items))
	for i, item := range items {
		p, ok := number(item)
		if !ok {
			return nil
		}
		pct := math.Round(p*1000) / 10
		out[i] = models.Confidence{
			Label:   ConfidenceLabels[i],
			Percent: pct,
			Display: strconv.FormatFloat(pct, 'f', 1, 64) + "%",
		}
	}
	return out
}

// Render assembles the view of one successful submission.
func Render(submissionID string, fs models.FeatureSet, pred *models.Prediction) *models.ResultView {
	tier := Classify(pred.Value)
	return &models.ResultView{
		SubmissionID: submissionID,
		Tier:         tier,
		Message:      TierMessage(tier, pred.Value),
		RawValue:     pred.Value,
		Confidence:   ConfidenceFrom(pred.Proba),
		Payload:      models.RequestEnvelope{Data: fs},
		RawResponse:  pred,
	}
}

// number decodes a JSON number literal. Strings, booleans, null and
// composite values are not numbers.
func number(raw json.RawMessage) (float64, bool) {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 || !(t[0] == '-' || (t[0] >= '0' && t[0] <= '9')) {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(t, &n); err != nil {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
