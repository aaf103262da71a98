// Package errors provides the standardized error taxonomy of the scoring client.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Configuration errors abort startup.
const (
	ErrCodeConfigurationMissing ErrorCode = "CONFIGURATION_MISSING"
	ErrCodeConfigurationInvalid ErrorCode = "CONFIGURATION_INVALID"
)

// Transport errors are per call and never crash the process.
const (
	ErrCodeScoringTransportFailed   ErrorCode = "SCORING_TRANSPORT_FAILED"
	ErrCodeScoringTimeout           ErrorCode = "SCORING_TIMEOUT"
	ErrCodeScoringUnexpectedStatus  ErrorCode = "SCORING_UNEXPECTED_STATUS"
	ErrCodeScoringMalformedResponse ErrorCode = "SCORING_MALFORMED_RESPONSE"
)

// Input errors are raised before anything is sent.
const (
	ErrCodeInvalidFeatureInput ErrorCode = "INVALID_FEATURE_INPUT"
	ErrCodeInvalidChoiceLabel  ErrorCode = "INVALID_CHOICE_LABEL"
	ErrCodeUnknownLoanType     ErrorCode = "UNKNOWN_LOAN_TYPE"
	ErrCodeInvalidFeatureSet   ErrorCode = "INVALID_FEATURE_SET"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// UserMessage is the text shown on the form when a call fails.
func (e *StandardError) UserMessage() string {
	if e.Details == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewConfigurationMissingError reports a logical setting none of whose names resolved.
func NewConfigurationMissingError(setting string, candidates []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationMissing,
		Message:   fmt.Sprintf("missing required setting %q", setting),
		Details:   fmt.Sprintf("tried keys: %s", strings.Join(candidates, ", ")),
		Retryable: false,
		Metadata: map[string]interface{}{
			"setting":    setting,
			"candidates": candidates,
		},
		Timestamp: time.Now().UTC(),
	}
}

func NewConfigurationInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationInvalid,
		Message:   "invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTransportError wraps a connection level failure talking to the scoring API.
func NewTransportError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringTransportFailed,
		Message:   "scoring API request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewScoringTimeoutError(timeout time.Duration, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringTimeout,
		Message:   "scoring API did not answer in time",
		Details:   fmt.Sprintf("timeout %s", timeout),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewUnexpectedStatusError(status int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringUnexpectedStatus,
		Message:   "scoring API returned an error status",
		Details:   fmt.Sprintf("status %d", status),
		Retryable: status >= 500,
		Metadata: map[string]interface{}{
			"status": status,
			"body":   body,
		},
		Timestamp: time.Now().UTC(),
	}
}

func NewMalformedResponseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringMalformedResponse,
		Message:   "scoring API returned an unreadable response",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidFeatureInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFeatureInput,
		Message:   "feature input is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidChoiceLabelError(field, label string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidChoiceLabel,
		Message:   "unrecognized choice label",
		Details:   fmt.Sprintf("field %s: %q", field, label),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

func NewUnknownLoanTypeError(label string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownLoanType,
		Message:   "unknown loan type",
		Details:   fmt.Sprintf("%q", label),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidFeatureSetError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFeatureSet,
		Message:   "feature set does not match the scoring contract",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// GetRetryCount returns the job retry count for a code. Scoring calls are
// single attempt, so every code maps to zero.
func GetRetryCount(code ErrorCode) int {
	return 0
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   GetRetryCount(stdErr.Code),
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// CodeOf returns the code of the first StandardError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code, true
	}
	return "", false
}

// IsTransport reports whether err belongs to the per-call transport family.
func IsTransport(err error) bool {
	code, ok := CodeOf(err)
	if !ok {
		return false
	}
	return GetErrorCategory(code) == "TRANSPORT"
}

// IsInput reports whether err was caused by the submitted form values.
func IsInput(err error) bool {
	code, ok := CodeOf(err)
	if !ok {
		return false
	}
	return GetErrorCategory(code) == "VALIDATION"
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "CONFIGURATION"):
		return "CONFIGURATION"
	case strings.HasPrefix(codeStr, "SCORING"):
		return "TRANSPORT"
	case strings.HasPrefix(codeStr, "INVALID") || strings.HasPrefix(codeStr, "UNKNOWN"):
		return "VALIDATION"
	default:
		return "INTERNAL"
	}
}
