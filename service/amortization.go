package service

import "math"

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// SolveForPayment returns the fixed monthly payment that amortizes a
// principal at the given annual rate (percent) over the given term.
// Degenerate inputs never fail: they fall back to an equal split of the
// principal over the term, or 0 when there is nothing to amortize.
func SolveForPayment(principal, annualRate float64, durationMonths int) float64 {
	if principal <= 0 || durationMonths <= 0 {
		return 0
	}

	equalSplit := principal / float64(durationMonths)
	if annualRate == 0 {
		return equalSplit
	}

	monthlyRate := (annualRate / 100) / 12
	if monthlyRate < nearZeroRate {
		return equalSplit
	}

	pow := math.Pow(1+monthlyRate, float64(durationMonths))
	if pow-1 < nearZeroRate {
		return equalSplit
	}

	payment := principal * monthlyRate * pow / (pow - 1)
	if math.IsNaN(payment) || math.IsInf(payment, 0) || payment <= 0 {
		return equalSplit
	}
	return payment
}

// SolveForRate finds the annual rate (percent) implied by a loan amount,
// fixed monthly payment and term, via Newton-Raphson on the amortization
// formula payment = P·r(1+r)^n / ((1+r)^n − 1). The result is whatever
// estimate was reached at tolerance or at the iteration/derivative
// cutoff; the solver never reports an error.
func SolveForRate(loanAmount, monthlyPayment float64, durationMonths int) float64 {
	n := float64(durationMonths)
	rate := initialRateGuess

	for i := 0; i < maxSolverIterations; i++ {
		// la tasa aparece en el denominador, nunca evaluar en <= 0
		if rate <= 0 {
			rate = minSolverRate
		}

		pow := math.Pow(1+rate, n)
		residual := loanAmount*rate*pow/(pow-1) - monthlyPayment
		if math.Abs(residual) < solverTolerance {
			break
		}

		// d(payment)/d(rate) de la fórmula de anualidad
		dPow := n * pow / (1 + rate)
		derivative := loanAmount * (pow*(pow-1) - rate*dPow) / ((pow - 1) * (pow - 1))
		if math.Abs(derivative) < derivativeFloor {
			break
		}

		rate -= residual / derivative
		if rate > maxMonthlyRate {
			rate = maxMonthlyRate
		}
	}

	if rate <= 0 {
		rate = minSolverRate
	}
	return rate * 12 * 100
}
