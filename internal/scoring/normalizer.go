// Package scoring adapts raw form values to the remote credit scoring API
// and turns its answers into something a form can display.
package scoring

import (
	"strings"

	apperrors "credit-score-client/internal/common/errors"
	"credit-score-client/internal/models"
)

// choiceLabels maps every accepted binary label to its flag. Lookups are
// made on the trimmed, lower-cased label.
var choiceLabels = map[string]models.Flag{
	"sim": models.FlagYes,
	"yes": models.FlagYes,
	"não": models.FlagNo,
	"nao": models.FlagNo,
	"no":  models.FlagNo,
}

// loanKeys indexes loan types by their canonical lookup key.
var loanKeys = func() map[string]models.LoanType {
	m := make(map[string]models.LoanType, len(models.LoanTypes))
	for _, lt := range models.LoanTypes {
		m[loanKey(string(lt))] = lt
	}
	return m
}()

// loanKey folds case and treats spaces like underscores, so "Auto Loan",
// "auto_loan" and "Auto_Loan" are the same category.
func loanKey(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
}

// ParseChoice maps a binary choice label to 0/1. Unknown labels are
// rejected; there is no third state.
func ParseChoice(field, label string) (models.Flag, error) {
	flag, ok := choiceLabels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return models.FlagNo, apperrors.NewInvalidChoiceLabelError(field, label)
	}
	return flag, nil
}

// ParseLoanType resolves a multi-select label to one of the fixed loan types.
func ParseLoanType(label string) (models.LoanType, error) {
	lt, ok := loanKeys[loanKey(label)]
	if !ok {
		return "", apperrors.NewUnknownLoanTypeError(label)
	}
	return lt, nil
}

// Normalize builds the complete FeatureSet for one submission. Ranges are
// not re-checked here; the input layer owns them. Every loan flag is set,
// 0 for the categories that were not selected.
func Normalize(raw models.RawInput) (models.FeatureSet, error) {
	paidMin, err := ParseChoice("Payment_of_Min_Amount", raw.PaidMinimumAmount)
	if err != nil {
		return models.FeatureSet{}, err
	}
	missed, err := ParseChoice("Missed_Payment_Day", raw.MissedPayment)
	if err != nil {
		return models.FeatureSet{}, err
	}

	fs := models.FeatureSet{
		Age:                    raw.Age,
		AnnualIncome:           raw.AnnualIncome,
		NumBankAccounts:        raw.NumBankAccounts,
		NumCreditCard:          raw.NumCreditCards,
		NumDelayedPayment:      raw.NumDelayedPayments,
		CreditUtilizationRatio: raw.CreditUtilizationRatio,
		PaymentOfMinAmount:     paidMin,
		TotalEMIPerMonth:       raw.TotalEMIPerMonth,
		CreditHistoryMonths:    raw.CreditHistoryMonths,
		MissedPayment:          missed,
	}

	for _, label := range raw.Loans {
		lt, err := ParseLoanType(label)
		if err != nil {
			return models.FeatureSet{}, err
		}
		fs.SetLoan(lt, models.FlagYes)
	}

	return fs, nil
}
