package scoring

import (
	"credit-score-client/internal/common/validation"
	"credit-score-client/internal/models"
)

// Header names of the outbound request.
const (
	HeaderContentType = "Content-Type"
	HeaderAPIKey      = "x-api-key"
	ContentTypeJSON   = "application/json"
)

// FeatureKey is one key of the wire FeatureSet with its JSON schema type.
type FeatureKey struct {
	Name string
	Type string
	Flag bool
}

// FeatureKeys lists the wire keys in serialization order.
var FeatureKeys = func() []FeatureKey {
	keys := []FeatureKey{
		{Name: "Age", Type: "integer"},
		{Name: "Annual_Income", Type: "number"},
		{Name: "Num_Bank_Accounts", Type: "integer"},
		{Name: "Num_Credit_Card", Type: "integer"},
		{Name: "Num_of_Delayed_Payment", Type: "integer"},
		{Name: "Credit_Utilization_Ratio", Type: "number"},
		{Name: "Payment_of_Min_Amount", Type: "integer", Flag: true},
		{Name: "Total_EMI_per_month", Type: "number"},
		{Name: "Credit_History_Age_Formated", Type: "integer"},
		{Name: "Missed_Payment_Day", Type: "integer", Flag: true},
	}
	for _, lt := range models.LoanTypes {
		keys = append(keys, FeatureKey{Name: string(lt), Type: "integer", Flag: true})
	}
	return keys
}()

// EnvelopeSchema describes {"data": FeatureSet}: every key required, no
// extra keys, flags restricted to 0 and 1.
func EnvelopeSchema() map[string]interface{} {
	props := make(map[string]interface{}, len(FeatureKeys))
	required := make([]string, 0, len(FeatureKeys))
	for _, k := range FeatureKeys {
		prop := map[string]interface{}{"type": k.Type}
		if k.Flag {
			prop["enum"] = []int{0, 1}
		}
		props[k.Name] = prop
		required = append(required, k.Name)
	}

	return map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"data"},
		"properties": map[string]interface{}{
			"data": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": false,
				"required":             required,
				"properties":           props,
			},
		},
	}
}

var envelopeSchema = validation.MustCompile(EnvelopeSchema())
