package service

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"debt-planner/domain"
)

// StrategyService simulates a shared monthly budget being allocated
// across several debts under a payoff-ordering strategy.
type StrategyService struct {
	projections *ProjectionService
	log         *logrus.Logger
}

func NewStrategyService(projections *ProjectionService, log *logrus.Logger) *StrategyService {
	return &StrategyService{projections: projections, log: log}
}

// debtState is the simulator's working record for one debt. The simulator
// owns these exclusively; the input Debt snapshots are never mutated.
type debtState struct {
	debt        domain.Debt
	monthlyRate float64
	balance     float64
}

// orderFunc returns the comparator a strategy sorts the active set with,
// or nil for StrategyNone (no reallocation, input order kept).
func orderFunc(strategy domain.Strategy, smartThreshold float64) func(a, b *debtState) bool {
	switch strategy {
	case domain.StrategySnowball:
		return func(a, b *debtState) bool {
			return a.balance < b.balance
		}
	case domain.StrategyAvalanche:
		return func(a, b *debtState) bool {
			return a.debt.EffectiveRate() > b.debt.EffectiveRate()
		}
	case domain.StrategyCashflow:
		return func(a, b *debtState) bool {
			return a.debt.MonthlyPayment > b.debt.MonthlyPayment
		}
	case domain.StrategySmart:
		// el grupo de tasa alta se ataca completo antes que el de tasa baja
		return func(a, b *debtState) bool {
			aHigh := a.debt.EffectiveRate() >= smartThreshold
			bHigh := b.debt.EffectiveRate() >= smartThreshold
			if aHigh != bHigh {
				return aHigh
			}
			if aHigh {
				return a.debt.EffectiveRate() > b.debt.EffectiveRate()
			}
			return a.balance < b.balance
		}
	default:
		return nil
	}
}

// Simulate runs a payoff simulation over the given debts and returns the
// merged portfolio trajectory. FromStart selects staggered-activation
// mode; otherwise all qualifying debts are active from month one.
func (s *StrategyService) Simulate(input domain.SimulationInput, asOf time.Time) []domain.ProjectionPoint {
	if input.FromStart {
		return s.simulateFromStart(input)
	}
	return s.simulateFixed(input, asOf)
}

// simulateFixed simulates the fixed cohort: debts that are included, have
// a positive payment and still carry a balance, all active from month 1.
func (s *StrategyService) simulateFixed(input domain.SimulationInput, asOf time.Time) []domain.ProjectionPoint {
	var states []*debtState
	var minimumPayments float64
	for _, debt := range input.Debts {
		if !debt.Included() || debt.MonthlyPayment <= 0 {
			continue
		}
		balance := s.projections.startingBalance(debt, asOf)
		if balance <= BalanceTolerance {
			continue
		}
		states = append(states, &debtState{
			debt:        debt,
			monthlyRate: debt.MonthlyRate(),
			balance:     balance,
		})
		minimumPayments += debt.MonthlyPayment
	}
	if len(states) == 0 {
		return nil
	}

	// nunca simular por debajo de los pagos mínimos contractuales
	budget := input.MonthlyBudget
	if budget < minimumPayments {
		budget = minimumPayments
	}
	less := orderFunc(input.Strategy, smartThreshold(input))

	var points []domain.ProjectionPoint
	var totalPaid, interestPaid float64

	for month := 1; month <= MaxPayoffMonths && len(states) > 0; month++ {
		// re-sort every month, balances change
		if less != nil {
			sort.SliceStable(states, func(i, j int) bool {
				return less(states[i], states[j])
			})
		}

		remaining := budget
		for i, state := range states {
			available := state.debt.MonthlyPayment
			if less != nil {
				if i == 0 {
					// la deuda enfocada recibe todo el presupuesto restante
					available = remaining
				} else if available > remaining {
					available = remaining
				}
			}

			interest := state.balance * state.monthlyRate
			principal := available - interest
			if principal <= 0 {
				// sin progreso este mes, el presupuesto no se consume
				continue
			}
			if principal > state.balance {
				principal = state.balance
			}

			state.balance -= principal
			totalPaid += principal + interest
			interestPaid += interest
			if less != nil {
				remaining -= principal + interest
			}
			if state.balance <= BalanceTolerance {
				state.balance = 0
			}
		}

		// las deudas saldadas salen del set activo del próximo mes
		next := states[:0]
		var remainingTotal float64
		for _, state := range states {
			if state.balance > 0 {
				next = append(next, state)
				remainingTotal += state.balance
			}
		}
		states = next

		points = append(points, domain.ProjectionPoint{
			Month:         month,
			Date:          asOf.AddDate(0, month, 0),
			RemainingDebt: remainingTotal,
			TotalPaid:     totalPaid,
			InterestPaid:  interestPaid,
		})
	}
	return points
}

// simulateFromStart replays the whole portfolio from the earliest debt's
// start date. A debt joins the allocation only once the simulation clock
// reaches its own start date, but the clock runs from month one for
// everyone.
func (s *StrategyService) simulateFromStart(input domain.SimulationInput) []domain.ProjectionPoint {
	var states []*debtState
	var minimumPayments float64
	var start time.Time
	for _, debt := range input.Debts {
		if !debt.Included() {
			continue
		}
		states = append(states, &debtState{
			debt:        debt,
			monthlyRate: debt.MonthlyRate(),
			balance:     debt.TotalAmount,
		})
		minimumPayments += debt.MonthlyPayment
		if start.IsZero() || debt.DateStarted.Before(start) {
			start = debt.DateStarted
		}
	}
	if len(states) == 0 {
		return nil
	}

	budget := input.MonthlyBudget
	if budget < minimumPayments {
		budget = minimumPayments
	}
	less := orderFunc(input.Strategy, smartThreshold(input))

	var points []domain.ProjectionPoint
	var totalPaid, interestPaid float64

	for month := 1; month <= MaxPayoffMonths; month++ {
		clock := start.AddDate(0, month-1, 0)

		var active []*debtState
		for _, state := range states {
			if state.balance > BalanceTolerance && !clock.Before(state.debt.DateStarted) {
				active = append(active, state)
			}
		}
		if less != nil {
			sort.SliceStable(active, func(i, j int) bool {
				return less(active[i], active[j])
			})
		}

		remaining := budget
		for i, state := range active {
			available := state.debt.MonthlyPayment
			if less != nil {
				if i == 0 {
					available = remaining
				} else if available > remaining {
					available = remaining
				}
			}

			interest := state.balance * state.monthlyRate
			principal := available - interest
			if principal <= 0 {
				continue
			}
			if principal > state.balance {
				principal = state.balance
			}

			state.balance -= principal
			totalPaid += principal + interest
			interestPaid += interest
			if less != nil {
				remaining -= principal + interest
			}
			if state.balance <= BalanceTolerance {
				state.balance = 0
			}
		}

		var remainingTotal float64
		for _, state := range states {
			remainingTotal += state.balance
		}

		points = append(points, domain.ProjectionPoint{
			Month:         month,
			Date:          start.AddDate(0, month, 0),
			RemainingDebt: remainingTotal,
			TotalPaid:     totalPaid,
			InterestPaid:  interestPaid,
		})

		if remainingTotal <= BalanceTolerance {
			break
		}
	}
	return points
}

func smartThreshold(input domain.SimulationInput) float64 {
	if input.SmartThreshold > 0 {
		return input.SmartThreshold
	}
	return domain.DefaultSmartThreshold
}
