package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebitNeverGoesNegative(t *testing.T) {
	l := New(1)

	require.NoError(t, l.Debit(1))
	assert.Equal(t, 0, l.Balance())

	err := l.Debit(1)
	assert.ErrorIs(t, err, ErrInsufficientCredit)
	assert.Equal(t, 0, l.Balance(), "failed debit must leave balance untouched")
}

func TestCreditAndDebitSequence(t *testing.T) {
	l := New(StartingBalance)
	require.Equal(t, 3, l.Balance())

	require.NoError(t, l.Credit(2))
	require.NoError(t, l.Debit(4))
	assert.Equal(t, 1, l.Balance())
	assert.True(t, l.CanAfford(1))
	assert.False(t, l.CanAfford(2))
}

func TestNegativeAmountsRejected(t *testing.T) {
	l := New(5)
	assert.ErrorIs(t, l.Debit(-1), ErrNegativeAmount)
	assert.ErrorIs(t, l.Credit(-1), ErrNegativeAmount)
	assert.Equal(t, 5, l.Balance())
}

func TestNewClampsNegativePersistedBalance(t *testing.T) {
	l := New(-7)
	assert.Equal(t, 0, l.Balance())
}

func TestAwardForCompletion(t *testing.T) {
	cfg := DefaultAwardConfig()

	cases := []struct {
		name   string
		total  int
		streak int
		want   int
	}{
		{"no bonus on first completion", 1, 1, 0},
		{"milestone multiple", 2, 1, 1},
		{"milestone at four", 4, 2, 1},
		{"streak threshold only", 11, 10, 1},
		{"milestone and streak together", 10, 10, 2},
		{"past the streak threshold", 12, 11, 1},
		{"zero total", 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AwardForCompletion(cfg, tc.total, tc.streak))
		})
	}
}

func TestAwardForCompletionHistoricDivisor(t *testing.T) {
	cfg := AwardConfig{MilestoneDivisor: 5, StreakThreshold: 10}
	assert.Equal(t, 0, AwardForCompletion(cfg, 4, 4))
	assert.Equal(t, 1, AwardForCompletion(cfg, 5, 5))
	assert.Equal(t, 2, AwardForCompletion(cfg, 10, 10))
}

func TestAwardForCompletionDisabledBonuses(t *testing.T) {
	cfg := AwardConfig{}
	assert.Equal(t, 0, AwardForCompletion(cfg, 10, 10))
}
