package domain

import "fmt"

// Strategy selects the order in which the simulator attacks debts.
type Strategy string

const (
	// StrategyNone pays each debt its own fixed payment, no reallocation.
	StrategyNone Strategy = "none"
	// StrategySnowball attacks the smallest balance first.
	StrategySnowball Strategy = "snowball"
	// StrategyAvalanche attacks the highest interest rate first.
	StrategyAvalanche Strategy = "avalanche"
	// StrategyCashflow attacks the largest monthly payment first.
	StrategyCashflow Strategy = "cashflow"
	// StrategySmart attacks high-rate debts avalanche-style, then the
	// rest snowball-style, split at a rate threshold.
	StrategySmart Strategy = "smart"
)

// DefaultSmartThreshold is the annual rate (percent) that separates the
// smart strategy's avalanche group from its snowball group.
const DefaultSmartThreshold = 5.0

// ParseStrategy maps a wire string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyNone, StrategySnowball, StrategyAvalanche, StrategyCashflow, StrategySmart:
		return Strategy(s), nil
	case "":
		return StrategyNone, nil
	default:
		return "", fmt.Errorf("unknown strategy: %q", s)
	}
}

// SimulationInput describes one strategy simulation run.
type SimulationInput struct {
	Debts []Debt `json:"-"`

	Strategy Strategy `json:"strategy"`
	// MonthlyBudget is the shared budget. Values below the sum of the
	// debts' minimum payments are raised to that floor.
	MonthlyBudget float64 `json:"monthlyBudget,omitempty"`
	// SmartThreshold overrides DefaultSmartThreshold for StrategySmart.
	SmartThreshold float64 `json:"smartThreshold,omitempty"`
	// FromStart switches to staggered-activation mode: every debt is
	// simulated from the earliest start date and joins the allocation
	// only once the clock reaches its own start date.
	FromStart bool `json:"fromStart,omitempty"`
}
