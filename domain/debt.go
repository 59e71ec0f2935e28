package domain

import "time"

// ZeroInterestMarker is the legacy rate value that marks zero-interest
// installment plans. Records imported from the old app store 1.2 instead
// of 0, so the engine must treat it as 0% APR.
const ZeroInterestMarker = 1.2

type Debt struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	TotalAmount    float64   `json:"totalAmount"`
	CurrentAmount  float64   `json:"currentAmount"`
	InterestRate   float64   `json:"interestRate"`
	DateStarted    time.Time `json:"dateStarted"`
	MonthlyPayment float64   `json:"monthlyPayment,omitempty"`
	Duration       int       `json:"duration,omitempty"`
	IncludeInTotal *bool     `json:"includeInTotal,omitempty"`
}

// Included reports whether the debt takes part in aggregates and
// simulations. Unset means included.
func (d Debt) Included() bool {
	return d.IncludeInTotal == nil || *d.IncludeInTotal
}

// EffectiveRate returns the annual rate with the zero-interest marker
// applied.
func (d Debt) EffectiveRate() float64 {
	if d.InterestRate == ZeroInterestMarker {
		return 0
	}
	return d.InterestRate
}

// MonthlyRate returns the effective rate as a monthly fraction.
func (d Debt) MonthlyRate() float64 {
	return d.EffectiveRate() / 100 / 12
}

// HasManualBalance reports whether currentAmount was entered by hand.
// Equality with totalAmount is the convention for "derive the balance
// from the payment history instead".
func (d Debt) HasManualBalance() bool {
	return d.CurrentAmount != d.TotalAmount
}
