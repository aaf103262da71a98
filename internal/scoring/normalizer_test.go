package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "credit-score-client/internal/common/errors"
	"credit-score-client/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestRawInput() models.RawInput {
	return models.RawInput{
		Age:                    30,
		AnnualIncome:           60000,
		NumBankAccounts:        3,
		NumCreditCards:         2,
		NumDelayedPayments:     1,
		CreditUtilizationRatio: 35.5,
		PaidMinimumAmount:      models.ChoiceNo,
		TotalEMIPerMonth:       500,
		CreditHistoryMonths:    120,
		MissedPayment:          models.ChoiceNo,
		Loans:                  []string{},
	}
}

func keysOf(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

// ==========================
// Choice Labels
// ==========================

func TestParseChoice(t *testing.T) {
	tests := []struct {
		label string
		want  models.Flag
	}{
		{"Sim", models.FlagYes},
		{"sim", models.FlagYes},
		{" Yes ", models.FlagYes},
		{"Não", models.FlagNo},
		{"NAO", models.FlagNo},
		{"no", models.FlagNo},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseChoice("Missed_Payment_Day", tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChoice_RejectsUnknownLabel(t *testing.T) {
	_, err := ParseChoice("Missed_Payment_Day", "Talvez")
	require.Error(t, err)

	code, ok := apperrors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidChoiceLabel, code)
	assert.Contains(t, err.Error(), "Missed_Payment_Day")
}

// ==========================
// Loan Types
// ==========================

func TestParseLoanType(t *testing.T) {
	tests := []struct {
		label string
		want  models.LoanType
	}{
		{"Auto_Loan", models.AutoLoan},
		{"auto loan", models.AutoLoan},
		{"Credit-Builder_Loan", models.CreditBuilderLoan},
		{"credit-builder loan", models.CreditBuilderLoan},
		{" Payday_Loan ", models.PaydayLoan},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseLoanType(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLoanType_Unknown(t *testing.T) {
	_, err := ParseLoanType("Boat_Loan")
	require.Error(t, err)

	code, _ := apperrors.CodeOf(err)
	assert.Equal(t, apperrors.ErrCodeUnknownLoanType, code)
	assert.True(t, apperrors.IsInput(err))
}

// ==========================
// Normalize
// ==========================

func TestNormalize_AlwaysEmitsEveryKey(t *testing.T) {
	fs, err := Normalize(createTestRawInput())
	require.NoError(t, err)

	m := keysOf(t, fs)
	assert.Len(t, m, len(FeatureKeys))
	for _, k := range FeatureKeys {
		assert.Contains(t, m, k.Name)
	}
	for _, lt := range models.LoanTypes {
		assert.EqualValues(t, 0, m[string(lt)], string(lt))
	}
}

func TestNormalize_MapsChoicesAndLoans(t *testing.T) {
	raw := createTestRawInput()
	raw.PaidMinimumAmount = models.ChoiceYes
	raw.MissedPayment = models.ChoiceNo
	raw.Loans = []string{"Auto_Loan", "Payday_Loan"}

	fs, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, models.FlagYes, fs.PaymentOfMinAmount)
	assert.Equal(t, models.FlagNo, fs.MissedPayment)
	assert.Equal(t, []models.LoanType{models.AutoLoan, models.PaydayLoan}, fs.SelectedLoans())
	assert.Equal(t, models.FlagNo, fs.MortgageLoan)
	assert.Equal(t, 30, fs.Age)
	assert.Equal(t, 120, fs.CreditHistoryMonths)
	assert.InDelta(t, 35.5, fs.CreditUtilizationRatio, 1e-9)
}

func TestNormalize_DuplicateLoanIsIdempotent(t *testing.T) {
	raw := createTestRawInput()
	raw.Loans = []string{"Student_Loan", "student loan"}

	fs, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, []models.LoanType{models.StudentLoan}, fs.SelectedLoans())
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.RawInput)
		code   apperrors.ErrorCode
	}{
		{
			name:   "bad minimum payment label",
			mutate: func(r *models.RawInput) { r.PaidMinimumAmount = "maybe" },
			code:   apperrors.ErrCodeInvalidChoiceLabel,
		},
		{
			name:   "bad missed payment label",
			mutate: func(r *models.RawInput) { r.MissedPayment = "" },
			code:   apperrors.ErrCodeInvalidChoiceLabel,
		},
		{
			name:   "unknown loan",
			mutate: func(r *models.RawInput) { r.Loans = []string{"Auto_Loan", "Boat_Loan"} },
			code:   apperrors.ErrCodeUnknownLoanType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := createTestRawInput()
			tt.mutate(&raw)

			_, err := Normalize(raw)
			require.Error(t, err)
			code, _ := apperrors.CodeOf(err)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestFeatureSet_RoundTrip(t *testing.T) {
	raw := createTestRawInput()
	raw.Loans = []string{"Mortgage_Loan", "Debt_Consolidation_Loan"}
	fs, err := Normalize(raw)
	require.NoError(t, err)

	b, err := json.Marshal(models.RequestEnvelope{Data: fs})
	require.NoError(t, err)

	var back models.RequestEnvelope
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, fs, back.Data)
}

// ==========================
// Input Validation
// ==========================

func TestValidateInput(t *testing.T) {
	require.NoError(t, ValidateInput(createTestRawInput()))

	raw := createTestRawInput()
	raw.Age = 17
	raw.CreditUtilizationRatio = 100.5

	err := ValidateInput(raw)
	require.Error(t, err)

	stdErr := apperrors.Normalize(err)
	assert.Equal(t, apperrors.ErrCodeInvalidFeatureInput, stdErr.Code)

	fields, ok := stdErr.Metadata["fields"].([]FieldError)
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "age", fields[0].Field)
	assert.Equal(t, "age must be at least 18", fields[0].Message)
	assert.Equal(t, "creditUtilizationRatio", fields[1].Field)
}

func TestValidateInput_Boundaries(t *testing.T) {
	raw := createTestRawInput()
	raw.Age = 100
	raw.AnnualIncome = 1_000_000
	raw.NumCreditCards = 12
	raw.CreditHistoryMonths = 600
	assert.NoError(t, ValidateInput(raw))

	raw.NumBankAccounts = 21
	assert.Error(t, ValidateInput(raw))
}
