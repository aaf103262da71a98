package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigurationMissingError_NamesSetting(t *testing.T) {
	err := NewConfigurationMissingError("scoring endpoint", []string{"API_ENDPOINT", "API-ENDPOINT"})

	assert.Equal(t, ErrCodeConfigurationMissing, err.Code)
	assert.Contains(t, err.Error(), "scoring endpoint")
	assert.Contains(t, err.Error(), "API_ENDPOINT, API-ENDPOINT")
	assert.Equal(t, "CONFIGURATION", GetErrorCategory(err.Code))
}

func TestTransportFamily(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transport bool
		input     bool
	}{
		{"transport", NewTransportError(fmt.Errorf("connection refused")), true, false},
		{"timeout", NewScoringTimeoutError(10*time.Second, context.DeadlineExceeded), true, false},
		{"status", NewUnexpectedStatusError(503, "busy"), true, false},
		{"malformed", NewMalformedResponseError("not json"), true, false},
		{"wrapped transport", fmt.Errorf("submit: %w", NewTransportError(fmt.Errorf("eof"))), true, false},
		{"loan", NewUnknownLoanTypeError("Boat_Loan"), false, true},
		{"choice", NewInvalidChoiceLabelError("Payment_of_Min_Amount", "Maybe"), false, true},
		{"config", NewConfigurationMissingError("api key", []string{"API_KEY"}), false, false},
		{"plain", fmt.Errorf("boom"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.transport, IsTransport(tt.err))
			assert.Equal(t, tt.input, IsInput(tt.err))
		})
	}
}

func TestTimeoutError_UnwrapsCause(t *testing.T) {
	err := NewScoringTimeoutError(time.Second, context.DeadlineExceeded)
	assert.True(t, stderrors.Is(err, context.DeadlineExceeded))
}

func TestUnexpectedStatus_RetryableOnlyForServerErrors(t *testing.T) {
	assert.True(t, NewUnexpectedStatusError(502, "").Retryable)
	assert.False(t, NewUnexpectedStatusError(403, "").Retryable)
}

func TestUserMessage(t *testing.T) {
	err := NewUnexpectedStatusError(500, "")
	assert.Equal(t, "scoring API returned an error status: status 500", err.UserMessage())

	bare := &StandardError{Code: "X", Message: "only message"}
	assert.Equal(t, "only message", bare.UserMessage())
}

func TestConvertToBPMNError_NeverRetries(t *testing.T) {
	stdErr := NewTransportError(fmt.Errorf("dial tcp: refused"))
	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, string(ErrCodeScoringTransportFailed), bpmnErr.Code)
	assert.Equal(t, 0, bpmnErr.Retries)
	vars := bpmnErr.ToErrorVariables()
	assert.Equal(t, string(ErrCodeScoringTransportFailed), vars["originalErrorCode"])
	assert.Equal(t, true, vars["retryable"])
}

func TestNormalize(t *testing.T) {
	wrapped := fmt.Errorf("ctx: %w", NewUnknownLoanTypeError("x"))
	got := Normalize(wrapped)
	assert.Equal(t, ErrCodeUnknownLoanType, got.Code)

	plain := Normalize(fmt.Errorf("boom"))
	require.NotNil(t, plain)
	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), plain.Code)
	assert.Equal(t, "INTERNAL", GetErrorCategory(plain.Code))
}
