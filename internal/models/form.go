// internal/models/form.go
package models

// Binary choice labels offered by the form.
const (
	ChoiceNo  = "Não"
	ChoiceYes = "Sim"
)

// RawInput is what the form surface submits, before normalization. Ranges
// are enforced here through the binding tags; the normalizer only shapes.
type RawInput struct {
	Age                    int      `json:"age" binding:"min=18,max=100"`
	AnnualIncome           float64  `json:"annualIncome" binding:"min=0,max=1000000"`
	NumBankAccounts        int      `json:"numBankAccounts" binding:"min=0,max=20"`
	NumCreditCards         int      `json:"numCreditCards" binding:"min=0,max=12"`
	NumDelayedPayments     int      `json:"numDelayedPayments" binding:"min=0,max=50"`
	CreditUtilizationRatio float64  `json:"creditUtilizationRatio" binding:"min=0,max=100"`
	PaidMinimumAmount      string   `json:"paidMinimumAmount" binding:"required"`
	TotalEMIPerMonth       float64  `json:"totalEmiPerMonth" binding:"min=0,max=10000"`
	CreditHistoryMonths    int      `json:"creditHistoryMonths" binding:"min=0,max=600"`
	MissedPayment          string   `json:"missedPayment" binding:"required"`
	Loans                  []string `json:"loans" binding:"dive,required"`
}

// FieldKind tells a form surface which widget to draw.
type FieldKind string

const (
	FieldInteger     FieldKind = "integer"
	FieldNumber      FieldKind = "number"
	FieldChoice      FieldKind = "choice"
	FieldMultiSelect FieldKind = "multiselect"
)

// FormField describes one input of the score form.
type FormField struct {
	Key     string      `json:"key"`
	Label   string      `json:"label"`
	Kind    FieldKind   `json:"kind"`
	Min     *float64    `json:"min,omitempty"`
	Max     *float64    `json:"max,omitempty"`
	Step    float64     `json:"step,omitempty"`
	Default interface{} `json:"default"`
	Options []string    `json:"options,omitempty"`
}

// FormDescriptor is served to form surfaces so they never hardcode fields.
type FormDescriptor struct {
	Title  string      `json:"title"`
	Fields []FormField `json:"fields"`
}

func bound(v float64) *float64 { return &v }

func loanOptions() []string {
	out := make([]string, len(LoanTypes))
	for i, lt := range LoanTypes {
		out[i] = string(lt)
	}
	return out
}

// ScoreForm mirrors the RawInput binding ranges.
func ScoreForm() FormDescriptor {
	return FormDescriptor{
		Title: "Credit Score",
		Fields: []FormField{
			{Key: "age", Label: "Idade", Kind: FieldInteger, Min: bound(18), Max: bound(100), Step: 1, Default: 30},
			{Key: "annualIncome", Label: "Renda Anual (R$)", Kind: FieldNumber, Min: bound(0), Max: bound(1_000_000), Step: 1000, Default: 0.0},
			{Key: "numBankAccounts", Label: "Nº de contas bancárias", Kind: FieldInteger, Min: bound(0), Max: bound(20), Step: 1, Default: 0},
			{Key: "numCreditCards", Label: "Nº de cartões de crédito", Kind: FieldInteger, Min: bound(0), Max: bound(12), Step: 1, Default: 0},
			{Key: "numDelayedPayments", Label: "Pagamentos atrasados", Kind: FieldInteger, Min: bound(0), Max: bound(50), Step: 1, Default: 0},
			{Key: "creditUtilizationRatio", Label: "Utilização do limite (%)", Kind: FieldNumber, Min: bound(0), Max: bound(100), Step: 0.1, Default: 0.0},
			{Key: "paidMinimumAmount", Label: "Pagou valor mínimo em algum cartão?", Kind: FieldChoice, Default: ChoiceNo, Options: []string{ChoiceNo, ChoiceYes}},
			{Key: "totalEmiPerMonth", Label: "EMI mensal (R$)", Kind: FieldNumber, Min: bound(0), Max: bound(10_000), Step: 10, Default: 0.0},
			{Key: "creditHistoryMonths", Label: "Histórico de crédito (meses)", Kind: FieldInteger, Min: bound(0), Max: bound(600), Step: 1, Default: 0},
			{Key: "loans", Label: "Tipos de empréstimo em aberto", Kind: FieldMultiSelect, Default: []string{}, Options: loanOptions()},
			{Key: "missedPayment", Label: "Perdeu algum pagamento nos últimos 12 meses?", Kind: FieldChoice, Default: ChoiceNo, Options: []string{ChoiceNo, ChoiceYes}},
		},
	}
}
