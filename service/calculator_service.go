package service

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"debt-planner/domain"
)

const (
	MaxLoanAmount   = 1_000_000_000.0 // 1 billón
	MaxInterestRate = 1000.0          // 1000% anual
	MaxTermMonths   = MaxPayoffMonths
)

// CalculatorService validates calculator requests at the API boundary and
// delegates to the amortization solvers, which themselves never fail.
type CalculatorService struct {
	log *logrus.Logger
}

func NewCalculatorService(log *logrus.Logger) *CalculatorService {
	return &CalculatorService{log: log}
}

// SolvePayment calculates the fixed monthly payment for a loan.
func (s *CalculatorService) SolvePayment(query domain.PaymentQuery) (domain.PaymentResult, error) {
	if query.Principal <= 0 {
		return domain.PaymentResult{}, errors.New("monto inválido")
	}
	if query.Principal > MaxLoanAmount {
		return domain.PaymentResult{}, fmt.Errorf("monto excede el máximo permitido de $%.2f", MaxLoanAmount)
	}
	if query.AnnualRate < 0 {
		return domain.PaymentResult{}, errors.New("tasa inválida")
	}
	if query.AnnualRate > MaxInterestRate {
		return domain.PaymentResult{}, fmt.Errorf("tasa de interés excede el máximo permitido de %.2f%%", MaxInterestRate)
	}
	if query.DurationMonths <= 0 {
		return domain.PaymentResult{}, errors.New("plazo inválido")
	}
	if query.DurationMonths > MaxTermMonths {
		return domain.PaymentResult{}, fmt.Errorf("plazo excede el máximo permitido de %d meses", MaxTermMonths)
	}

	payment := SolveForPayment(query.Principal, query.AnnualRate, query.DurationMonths)
	total := payment * float64(query.DurationMonths)

	return domain.PaymentResult{
		MonthlyPayment: roundTo2Decimals(payment),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(total - query.Principal),
	}, nil
}

// SolveRate finds the annual rate implied by the given loan terms.
func (s *CalculatorService) SolveRate(query domain.RateQuery) (domain.RateResult, error) {
	if query.LoanAmount <= 0 {
		return domain.RateResult{}, errors.New("monto inválido")
	}
	if query.MonthlyPayment <= 0 {
		return domain.RateResult{}, errors.New("pago mensual inválido")
	}
	if query.DurationMonths <= 0 {
		return domain.RateResult{}, errors.New("plazo inválido")
	}
	if query.DurationMonths > MaxTermMonths {
		return domain.RateResult{}, fmt.Errorf("plazo excede el máximo permitido de %d meses", MaxTermMonths)
	}
	rate := SolveForRate(query.LoanAmount, query.MonthlyPayment, query.DurationMonths)
	return domain.RateResult{AnnualRate: rate}, nil
}
