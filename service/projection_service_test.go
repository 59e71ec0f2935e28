package service

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debt-planner/domain"
	"debt-planner/repository"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestProjectionService() *ProjectionService {
	return NewProjectionService(nil, testLogger())
}

var asOf = time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)

func TestReconstructBalance_ZeroInterestHistory(t *testing.T) {
	svc := newTestProjectionService()
	debt := domain.Debt{
		ID:             "d1",
		TotalAmount:    1000,
		CurrentAmount:  1000,
		InterestRate:   0,
		MonthlyPayment: 100,
		DateStarted:    asOf.AddDate(0, -3, 0),
	}

	status := svc.ReconstructBalance(debt, asOf)

	assert.Equal(t, 3, status.MonthsElapsed)
	assert.InDelta(t, 300.0, status.TotalPaid, 1e-9)
	assert.InDelta(t, 700.0, status.CurrentBalance, 1e-9)
	assert.Zero(t, status.InterestPaid)
}

func TestReconstructBalance_NoPaymentKeepsOriginalAmount(t *testing.T) {
	svc := newTestProjectionService()
	debt := domain.Debt{
		TotalAmount:   5000,
		CurrentAmount: 5000,
		InterestRate:  10,
		DateStarted:   asOf.AddDate(0, -12, 0),
	}

	status := svc.ReconstructBalance(debt, asOf)

	assert.Equal(t, 5000.0, status.CurrentBalance)
	assert.Zero(t, status.TotalPaid)
	assert.Equal(t, 12, status.MonthsElapsed)
}

func TestReconstructBalance_PartialMonthDoesNotCount(t *testing.T) {
	svc := newTestProjectionService()
	// started on the 20th, asOf is the 15th: the third month has not
	// fully elapsed yet
	debt := domain.Debt{
		TotalAmount:    1000,
		CurrentAmount:  1000,
		MonthlyPayment: 100,
		DateStarted:    time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC),
	}

	status := svc.ReconstructBalance(debt, asOf)
	assert.Equal(t, 2, status.MonthsElapsed)
	assert.InDelta(t, 800.0, status.CurrentBalance, 1e-9)
}

func TestReconstructBalance_PaymentBelowInterestStopsSimulation(t *testing.T) {
	svc := newTestProjectionService()
	// 12% anual sobre 10000 = 100 de interés mensual, igual al pago
	debt := domain.Debt{
		TotalAmount:    10000,
		CurrentAmount:  10000,
		InterestRate:   12,
		MonthlyPayment: 100,
		DateStarted:    asOf.AddDate(0, -24, 0),
	}

	status := svc.ReconstructBalance(debt, asOf)

	assert.Equal(t, 10000.0, status.CurrentBalance)
	assert.Zero(t, status.TotalPaid)
	assert.Zero(t, status.InterestPaid)
}

func TestReconstructBalance_StopsOnceBalanceIsPaid(t *testing.T) {
	svc := newTestProjectionService()
	debt := domain.Debt{
		TotalAmount:    300,
		CurrentAmount:  300,
		InterestRate:   0,
		MonthlyPayment: 100,
		DateStarted:    asOf.AddDate(0, -24, 0),
	}

	status := svc.ReconstructBalance(debt, asOf)

	assert.Zero(t, status.CurrentBalance)
	assert.InDelta(t, 300.0, status.TotalPaid, 1e-9)
}

func TestProjectDebt_NoPaymentMeansEmptyProjection(t *testing.T) {
	svc := newTestProjectionService()
	debt := domain.Debt{TotalAmount: 1000, CurrentAmount: 1000, DateStarted: asOf}

	assert.Empty(t, svc.ProjectDebt(debt, asOf))
}

func TestProjectDebt_PaymentBelowInterestMeansEmptyProjection(t *testing.T) {
	svc := newTestProjectionService()
	debt := domain.Debt{
		TotalAmount:    10000,
		CurrentAmount:  10000,
		InterestRate:   12,
		MonthlyPayment: 100, // exactly the monthly interest charge
		DateStarted:    asOf,
	}

	assert.Empty(t, svc.ProjectDebt(debt, asOf))
}

func TestProjectDebt_MonotonicTrajectory(t *testing.T) {
	svc := newTestProjectionService()
	debt := domain.Debt{
		TotalAmount:    8000,
		CurrentAmount:  8000,
		InterestRate:   14,
		MonthlyPayment: 250,
		DateStarted:    asOf,
	}

	points := svc.ProjectDebt(debt, asOf)
	require.NotEmpty(t, points)

	for i := 1; i < len(points); i++ {
		assert.LessOrEqual(t, points[i].RemainingDebt, points[i-1].RemainingDebt)
		assert.GreaterOrEqual(t, points[i].TotalPaid, points[i-1].TotalPaid)
		assert.GreaterOrEqual(t, points[i].InterestPaid, points[i-1].InterestPaid)
		assert.Equal(t, i+1, points[i].Month)
	}
	assert.Zero(t, points[len(points)-1].RemainingDebt)
}

func TestProjectDebt_ManualBalanceOverride(t *testing.T) {
	svc := newTestProjectionService()
	debt := domain.Debt{
		TotalAmount:    1000,
		CurrentAmount:  200, // manually entered, differs from totalAmount
		InterestRate:   0,
		MonthlyPayment: 100,
		DateStarted:    asOf.AddDate(0, -6, 0),
	}

	points := svc.ProjectDebt(debt, asOf)
	require.Len(t, points, 2)
	assert.InDelta(t, 100.0, points[0].RemainingDebt, 1e-9)
	assert.Zero(t, points[1].RemainingDebt)
}

func TestProjectDebt_ZeroInterestMarkerBehavesLikeZeroRate(t *testing.T) {
	svc := newTestProjectionService()
	base := domain.Debt{
		TotalAmount:    2400,
		CurrentAmount:  2400,
		MonthlyPayment: 200,
		DateStarted:    asOf,
	}

	marker := base
	marker.InterestRate = domain.ZeroInterestMarker
	zero := base
	zero.InterestRate = 0

	assert.Equal(t, svc.ProjectDebt(zero, asOf), svc.ProjectDebt(marker, asOf))
}

func TestProjectDebt_Idempotent(t *testing.T) {
	svc := newTestProjectionService()
	debt := domain.Debt{
		ID:             "d1",
		TotalAmount:    8000,
		CurrentAmount:  8000,
		InterestRate:   14,
		MonthlyPayment: 250,
		DateStarted:    asOf.AddDate(0, -2, 0),
	}

	first := svc.ProjectDebt(debt, asOf)
	second := svc.ProjectDebt(debt, asOf)
	assert.Equal(t, first, second)
}

func TestProjectDebt_CachedResultMatchesFresh(t *testing.T) {
	debt := domain.Debt{
		ID:             "d1",
		TotalAmount:    8000,
		CurrentAmount:  8000,
		InterestRate:   14,
		MonthlyPayment: 250,
		DateStarted:    asOf.AddDate(0, -2, 0),
	}

	fresh := newTestProjectionService().ProjectDebt(debt, asOf)

	cached := NewProjectionService(repository.NewMemoryCache(), testLogger())
	first := cached.ProjectDebt(debt, asOf)
	second := cached.ProjectDebt(debt, asOf) // served from cache

	assert.Equal(t, fresh, first)
	assert.Equal(t, fresh, second)
}

func TestProjectDebt_TruncatesAtSafetyCap(t *testing.T) {
	svc := newTestProjectionService()
	// el pago apenas supera el interés: no se salda en 50 años
	debt := domain.Debt{
		TotalAmount:    1_000_000,
		CurrentAmount:  1_000_000,
		InterestRate:   12,
		MonthlyPayment: 10_010,
		DateStarted:    asOf,
	}

	points := svc.ProjectDebt(debt, asOf)
	require.Len(t, points, MaxPayoffMonths)
	assert.Greater(t, points[len(points)-1].RemainingDebt, 0.0)
}

func TestAggregateProjections_CarriesForwardFinishedDebts(t *testing.T) {
	svc := newTestProjectionService()
	short := domain.Debt{
		ID: "short", TotalAmount: 300, CurrentAmount: 300,
		MonthlyPayment: 100, DateStarted: asOf,
	}
	long := domain.Debt{
		ID: "long", TotalAmount: 1200, CurrentAmount: 1200,
		MonthlyPayment: 100, DateStarted: asOf,
	}

	points := svc.AggregateProjections([]domain.Debt{short, long}, asOf)
	require.Len(t, points, 12)

	// month 4: the short debt is done but its 300 paid stays in the total
	assert.InDelta(t, 700.0, points[3].TotalPaid, 1e-9)
	assert.InDelta(t, 800.0, points[3].RemainingDebt, 1e-9)

	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i].TotalPaid, points[i-1].TotalPaid)
		assert.LessOrEqual(t, points[i].RemainingDebt, points[i-1].RemainingDebt)
	}
	assert.Zero(t, points[len(points)-1].RemainingDebt)
}

func TestAggregateProjections_SkipsExcludedDebts(t *testing.T) {
	svc := newTestProjectionService()
	excluded := false
	points := svc.AggregateProjections([]domain.Debt{
		{ID: "in", TotalAmount: 200, CurrentAmount: 200, MonthlyPayment: 100, DateStarted: asOf},
		{ID: "out", TotalAmount: 9000, CurrentAmount: 9000, MonthlyPayment: 100, DateStarted: asOf, IncludeInTotal: &excluded},
	}, asOf)

	require.Len(t, points, 2)
	assert.InDelta(t, 100.0, points[0].RemainingDebt, 1e-9)
}
