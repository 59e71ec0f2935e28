package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebt_EffectiveRate(t *testing.T) {
	assert.Equal(t, 12.5, Debt{InterestRate: 12.5}.EffectiveRate())
	assert.Zero(t, Debt{InterestRate: ZeroInterestMarker}.EffectiveRate())
	assert.Zero(t, Debt{InterestRate: 0}.EffectiveRate())
}

func TestDebt_Included(t *testing.T) {
	yes, no := true, false
	assert.True(t, Debt{}.Included())
	assert.True(t, Debt{IncludeInTotal: &yes}.Included())
	assert.False(t, Debt{IncludeInTotal: &no}.Included())
}

func TestDebt_HasManualBalance(t *testing.T) {
	assert.False(t, Debt{TotalAmount: 1000, CurrentAmount: 1000}.HasManualBalance())
	assert.True(t, Debt{TotalAmount: 1000, CurrentAmount: 400}.HasManualBalance())
}

func TestParseStrategy(t *testing.T) {
	for _, name := range []string{"none", "snowball", "avalanche", "cashflow", "smart"} {
		strategy, err := ParseStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, Strategy(name), strategy)
	}

	strategy, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyNone, strategy)

	_, err = ParseStrategy("tornado")
	assert.Error(t, err)
}
