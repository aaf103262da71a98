package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pointSchema = map[string]interface{}{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []string{"data"},
	"properties": map[string]interface{}{
		"data": map[string]interface{}{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []string{"x", "flag"},
			"properties": map[string]interface{}{
				"x":    map[string]interface{}{"type": "number"},
				"flag": map[string]interface{}{"type": "integer", "enum": []int{0, 1}},
			},
		},
	},
}

func TestSchema_ValidateJSON(t *testing.T) {
	schema := MustCompile(pointSchema)

	tests := []struct {
		name       string
		doc        string
		valid      bool
		errorField string
	}{
		{"valid", `{"data":{"x":1.5,"flag":1}}`, true, ""},
		{"missing nested key", `{"data":{"x":1.5}}`, false, "data.flag"},
		{"missing envelope", `{}`, false, "data"},
		{"extra key", `{"data":{"x":1,"flag":0,"y":2}}`, false, "data"},
		{"flag out of enum", `{"data":{"x":1,"flag":2}}`, false, "data.flag"},
		{"wrong type", `{"data":{"x":"one","flag":0}}`, false, "data.x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := schema.ValidateJSON([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid, result.GetErrorMessages())
			if tt.errorField != "" {
				assert.True(t, result.HasErrors(tt.errorField), result.GetErrorMessages())
				assert.NotEmpty(t, result.GetErrorsForField("data"))
			}
		})
	}
}

func TestSchema_ValidateValue(t *testing.T) {
	schema := MustCompile(pointSchema)

	type data struct {
		X    float64 `json:"x"`
		Flag int     `json:"flag"`
	}
	result, err := schema.ValidateValue(map[string]interface{}{"data": data{X: 2, Flag: 1}})
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestSchema_ValidateJSON_NotJSON(t *testing.T) {
	schema := MustCompile(pointSchema)
	_, err := schema.ValidateJSON([]byte("not json"))
	assert.Error(t, err)
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile(map[string]interface{}{"type": 42})
	assert.Error(t, err)
}
