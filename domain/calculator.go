package domain

// PaymentQuery asks for the fixed monthly payment of an amortizing loan.
type PaymentQuery struct {
	Principal      float64 `json:"principal"`
	AnnualRate     float64 `json:"annualRate"`
	DurationMonths int     `json:"durationMonths"`
}

type PaymentResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}

// RateQuery asks for the annual rate implied by a payment and a term.
type RateQuery struct {
	LoanAmount     float64 `json:"loanAmount"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	DurationMonths int     `json:"durationMonths"`
}

type RateResult struct {
	AnnualRate float64 `json:"annualRate"`
}
