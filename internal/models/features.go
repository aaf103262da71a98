// internal/models/features.go
package models

// Flag is a boolean carried as 0/1 on the wire.
type Flag int

const (
	FlagNo  Flag = 0
	FlagYes Flag = 1
)

func FlagOf(b bool) Flag {
	if b {
		return FlagYes
	}
	return FlagNo
}

// LoanType is one of the fixed loan categories, named by its wire key.
type LoanType string

const (
	AutoLoan              LoanType = "Auto_Loan"
	CreditBuilderLoan     LoanType = "Credit-Builder_Loan"
	PersonalLoan          LoanType = "Personal_Loan"
	HomeEquityLoan        LoanType = "Home_Equity_Loan"
	MortgageLoan          LoanType = "Mortgage_Loan"
	StudentLoan           LoanType = "Student_Loan"
	DebtConsolidationLoan LoanType = "Debt_Consolidation_Loan"
	PaydayLoan            LoanType = "Payday_Loan"
)

// LoanTypes lists every category in wire order.
var LoanTypes = []LoanType{
	AutoLoan,
	CreditBuilderLoan,
	PersonalLoan,
	HomeEquityLoan,
	MortgageLoan,
	StudentLoan,
	DebtConsolidationLoan,
	PaydayLoan,
}

// FeatureSet is the fixed-shape document the scoring API receives. Every
// field is always serialized; an unselected loan is an explicit 0.
type FeatureSet struct {
	Age                    int     `json:"Age"`
	AnnualIncome           float64 `json:"Annual_Income"`
	NumBankAccounts        int     `json:"Num_Bank_Accounts"`
	NumCreditCard          int     `json:"Num_Credit_Card"`
	NumDelayedPayment      int     `json:"Num_of_Delayed_Payment"`
	CreditUtilizationRatio float64 `json:"Credit_Utilization_Ratio"`
	PaymentOfMinAmount     Flag    `json:"Payment_of_Min_Amount"`
	TotalEMIPerMonth       float64 `json:"Total_EMI_per_month"`
	CreditHistoryMonths    int     `json:"Credit_History_Age_Formated"`
	MissedPayment          Flag    `json:"Missed_Payment_Day"`

	AutoLoan              Flag `json:"Auto_Loan"`
	CreditBuilderLoan     Flag `json:"Credit-Builder_Loan"`
	PersonalLoan          Flag `json:"Personal_Loan"`
	HomeEquityLoan        Flag `json:"Home_Equity_Loan"`
	MortgageLoan          Flag `json:"Mortgage_Loan"`
	StudentLoan           Flag `json:"Student_Loan"`
	DebtConsolidationLoan Flag `json:"Debt_Consolidation_Loan"`
	PaydayLoan            Flag `json:"Payday_Loan"`
}

// loanFlag returns the field backing a loan type, or nil for unknown types.
func (f *FeatureSet) loanFlag(lt LoanType) *Flag {
	switch lt {
	case AutoLoan:
		return &f.AutoLoan
	case CreditBuilderLoan:
		return &f.CreditBuilderLoan
	case PersonalLoan:
		return &f.PersonalLoan
	case HomeEquityLoan:
		return &f.HomeEquityLoan
	case MortgageLoan:
		return &f.MortgageLoan
	case StudentLoan:
		return &f.StudentLoan
	case DebtConsolidationLoan:
		return &f.DebtConsolidationLoan
	case PaydayLoan:
		return &f.PaydayLoan
	}
	return nil
}

// SetLoan marks a loan type as held. It reports false for unknown types.
func (f *FeatureSet) SetLoan(lt LoanType, v Flag) bool {
	p := f.loanFlag(lt)
	if p == nil {
		return false
	}
	*p = v
	return true
}

// Loan returns the flag for a loan type; unknown types read as 0.
func (f FeatureSet) Loan(lt LoanType) Flag {
	if p := f.loanFlag(lt); p != nil {
		return *p
	}
	return FlagNo
}

// SelectedLoans lists the held loan types in wire order.
func (f FeatureSet) SelectedLoans() []LoanType {
	var out []LoanType
	for _, lt := range LoanTypes {
		if f.Loan(lt) == FlagYes {
			out = append(out, lt)
		}
	}
	return out
}

// RequestEnvelope is the literal request body: {"data": FeatureSet}.
type RequestEnvelope struct {
	Data FeatureSet `json:"data"`
}
