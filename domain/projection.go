package domain

import "time"

// ProjectionPoint is one month of a payoff trajectory. RemainingDebt is
// non-increasing and TotalPaid/InterestPaid are non-decreasing across a
// single debt's sequence.
type ProjectionPoint struct {
	Month         int       `json:"month"`
	Date          time.Time `json:"date"`
	RemainingDebt float64   `json:"remainingDebt"`
	TotalPaid     float64   `json:"totalPaid"`
	InterestPaid  float64   `json:"interestPaid"`
}

// BalanceStatus is the result of reconstructing a debt's balance from its
// start date and payment history.
type BalanceStatus struct {
	CurrentBalance float64 `json:"currentBalance"`
	TotalPaid      float64 `json:"totalPaid"`
	InterestPaid   float64 `json:"interestPaid"`
	MonthsElapsed  int     `json:"monthsElapsed"`
}
