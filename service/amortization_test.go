package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolveForPayment_StandardAmortization(t *testing.T) {
	// tasa mensual 1%, fórmula estándar de anualidad
	payment := SolveForPayment(120000, 12, 12)
	assert.InDelta(t, 10661.85, payment, 0.05)
}

func TestSolveForPayment_ZeroInterest(t *testing.T) {
	payment := SolveForPayment(1200, 0, 12)
	assert.Equal(t, 100.0, payment)
}

func TestSolveForPayment_NearZeroRateFallsBackToEqualSplit(t *testing.T) {
	payment := SolveForPayment(1200, 1e-11, 12)
	assert.Equal(t, 100.0, payment)
}

func TestSolveForPayment_DegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, SolveForPayment(0, 10, 12))
	assert.Equal(t, 0.0, SolveForPayment(-500, 10, 12))
	assert.Equal(t, 0.0, SolveForPayment(1000, 10, 0))
	assert.Equal(t, 0.0, SolveForPayment(1000, 10, -3))
}

func TestSolveForRate_RecoversKnownRate(t *testing.T) {
	rate := SolveForRate(120000, 10661.85, 12)
	assert.InDelta(t, 12.0, rate, 0.01)
}

func TestSolveForRate_RoundTripsWithSolveForPayment(t *testing.T) {
	cases := []struct {
		name      string
		principal float64
		rate      float64
		months    int
	}{
		{"car loan", 25000, 7.5, 60},
		{"mortgage", 300000, 4.2, 360},
		{"credit card", 5000, 24, 36},
		{"short personal loan", 1500, 15, 6},
		{"high rate", 10000, 48, 24},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payment := SolveForPayment(tc.principal, tc.rate, tc.months)
			recovered := SolveForRate(tc.principal, payment, tc.months)
			assert.InDelta(t, tc.rate, recovered, 1e-4)
		})
	}
}

func TestSolveForRate_ZeroInterestLoanStaysNearFloor(t *testing.T) {
	// un préstamo sin interés no tiene raíz positiva: el solver termina
	// entre cero y el piso anualizado de 0.1% mensual (1.2% anual)
	payment := SolveForPayment(1200, 0, 12)
	rate := SolveForRate(1200, payment, 12)
	assert.GreaterOrEqual(t, rate, 0.0)
	assert.LessOrEqual(t, rate, 1.2)
}

func TestSolveForRate_NeverPanicsOnHostileInputs(t *testing.T) {
	// el solver devuelve la mejor estimación alcanzada, nunca un error
	assert.NotPanics(t, func() {
		SolveForRate(1000, 1, 360)      // payment far below amortizing level
		SolveForRate(1000, 100000, 12)  // payment far above
		SolveForRate(1000, 83.33, 12)   // payment at the zero-rate boundary
	})
}
