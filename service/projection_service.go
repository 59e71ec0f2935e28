package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"debt-planner/domain"
	"debt-planner/repository"
)

// ProjectionService builds payoff trajectories for single debts and for
// independently-projected portfolios. Every call recomputes from the raw
// Debt snapshot; the cache is a pure memoization keyed on the snapshot's
// content, so cached and fresh results are interchangeable.
type ProjectionService struct {
	cache repository.CacheRepository
	log   *logrus.Logger
}

// NewProjectionService creates a ProjectionService. cache may be nil to
// disable memoization entirely.
func NewProjectionService(cache repository.CacheRepository, log *logrus.Logger) *ProjectionService {
	return &ProjectionService{cache: cache, log: log}
}

// monthsBetween returns the number of whole calendar months elapsed from
// start to asOf. A month counts only once its day-of-month has passed.
func monthsBetween(start, asOf time.Time) int {
	months := (asOf.Year()-start.Year())*12 + int(asOf.Month()) - int(start.Month())
	if asOf.Day() < start.Day() {
		months--
	}
	return months
}

// ReconstructBalance derives how much of a debt remains at asOf by
// replaying every monthly payment since DateStarted. Without a monthly
// payment, or before a full month has elapsed, the balance is simply the
// original amount.
func (s *ProjectionService) ReconstructBalance(debt domain.Debt, asOf time.Time) domain.BalanceStatus {
	elapsed := monthsBetween(debt.DateStarted, asOf)
	status := domain.BalanceStatus{
		CurrentBalance: debt.TotalAmount,
		MonthsElapsed:  elapsed,
	}
	if debt.MonthlyPayment <= 0 || elapsed <= 0 {
		return status
	}

	monthlyRate := debt.MonthlyRate()
	balance := debt.TotalAmount

	for month := 0; month < elapsed; month++ {
		interest := balance * monthlyRate
		principal := debt.MonthlyPayment - interest
		if principal <= 0 {
			// el pago no cubre el interés, la deuda no avanza
			break
		}
		if principal > balance {
			principal = balance
		}

		balance -= principal
		status.TotalPaid += principal + interest
		status.InterestPaid += interest

		if balance <= BalanceTolerance {
			balance = 0
			break
		}
	}

	if balance < 0 {
		balance = 0
	}
	status.CurrentBalance = balance
	return status
}

// startingBalance is the balance a forward projection begins from: the
// manual override when one was entered, otherwise the reconstructed
// balance.
func (s *ProjectionService) startingBalance(debt domain.Debt, asOf time.Time) float64 {
	if debt.HasManualBalance() {
		return debt.CurrentAmount
	}
	return s.ReconstructBalance(debt, asOf).CurrentBalance
}

// ProjectDebt returns the month-by-month trajectory of one debt from asOf
// to payoff. An empty result means no projection is possible: no payment
// defined, already paid off, or the payment does not cover the interest.
// A result that still carries a balance after MaxPayoffMonths months
// signals a debt that will not pay off within a human horizon.
func (s *ProjectionService) ProjectDebt(debt domain.Debt, asOf time.Time) []domain.ProjectionPoint {
	if debt.MonthlyPayment <= 0 {
		return nil
	}

	key := projectionCacheKey(debt, asOf)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			var points []domain.ProjectionPoint
			if err := json.Unmarshal([]byte(cached), &points); err == nil {
				return points
			}
		}
	}

	monthlyRate := debt.MonthlyRate()
	balance := s.startingBalance(debt, asOf)

	var points []domain.ProjectionPoint
	var totalPaid, interestPaid float64

	for month := 1; month <= MaxPayoffMonths && balance > BalanceTolerance; month++ {
		interest := balance * monthlyRate
		principal := debt.MonthlyPayment - interest
		if principal <= 0 {
			break
		}
		if principal > balance {
			principal = balance
		}

		balance -= principal
		totalPaid += principal + interest
		interestPaid += interest
		if balance <= BalanceTolerance {
			balance = 0
		}

		points = append(points, domain.ProjectionPoint{
			Month:         month,
			Date:          asOf.AddDate(0, month, 0),
			RemainingDebt: balance,
			TotalPaid:     totalPaid,
			InterestPaid:  interestPaid,
		})
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(points); err == nil {
			if err := s.cache.Set(key, string(encoded)); err != nil {
				s.log.Warnf("failed to cache projection for debt %s: %v", debt.ID, err)
			}
		}
	}
	return points
}

// AggregateProjections sums independent per-debt projections into one
// portfolio trajectory. Once a debt's own projection ends, its final paid
// totals are carried forward (and it contributes nothing to the remaining
// balance) so the portfolio's cumulative figures never decrease.
func (s *ProjectionService) AggregateProjections(debts []domain.Debt, asOf time.Time) []domain.ProjectionPoint {
	var projections [][]domain.ProjectionPoint
	maxMonths := 0
	for _, debt := range debts {
		if !debt.Included() {
			continue
		}
		points := s.ProjectDebt(debt, asOf)
		if len(points) == 0 {
			continue
		}
		projections = append(projections, points)
		if len(points) > maxMonths {
			maxMonths = len(points)
		}
	}

	var aggregate []domain.ProjectionPoint
	for month := 1; month <= maxMonths; month++ {
		point := domain.ProjectionPoint{
			Month: month,
			Date:  asOf.AddDate(0, month, 0),
		}
		for _, points := range projections {
			if month <= len(points) {
				current := points[month-1]
				point.RemainingDebt += current.RemainingDebt
				point.TotalPaid += current.TotalPaid
				point.InterestPaid += current.InterestPaid
			} else {
				final := points[len(points)-1]
				point.TotalPaid += final.TotalPaid
				point.InterestPaid += final.InterestPaid
			}
		}
		aggregate = append(aggregate, point)
		if point.RemainingDebt == 0 {
			break
		}
	}
	return aggregate
}

// projectionCacheKey hashes the full debt snapshot plus the as-of day, so
// any edit to the record produces a fresh computation.
func projectionCacheKey(debt domain.Debt, asOf time.Time) string {
	h := xxhash.New()
	fmt.Fprintf(h, "%s|%s|%.4f|%.4f|%.6f|%s|%.4f|%d|%t",
		debt.ID,
		debt.Name,
		debt.TotalAmount,
		debt.CurrentAmount,
		debt.InterestRate,
		debt.DateStarted.Format("2006-01-02"),
		debt.MonthlyPayment,
		debt.Duration,
		debt.Included(),
	)
	fmt.Fprintf(h, "|%s", asOf.Format("2006-01-02"))
	return fmt.Sprintf("projection:%016x", h.Sum64())
}
