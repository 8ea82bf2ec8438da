// Package ledger tracks the skip-credit balance and the completion bonuses
// that feed it. The ledger itself never touches storage; the session persists
// the balance after every change.
package ledger

import "errors"

var (
	ErrInsufficientCredit = errors.New("ledger: insufficient credit")
	ErrNegativeAmount     = errors.New("ledger: amount must be non-negative")
)

// StartingBalance is granted on first use, before any completions.
const StartingBalance = 3

// AwardConfig controls the completion bonuses.
type AwardConfig struct {
	// MilestoneDivisor awards one credit whenever the completed total is an
	// exact multiple of it. Historically 5, now 2.
	MilestoneDivisor int
	// StreakThreshold awards one credit exactly when the streak hits it.
	StreakThreshold int
}

func DefaultAwardConfig() AwardConfig {
	return AwardConfig{
		MilestoneDivisor: 2,
		StreakThreshold:  10,
	}
}

// Ledger holds a non-negative credit balance.
type Ledger struct {
	balance int
}

// New clamps negative persisted balances to zero rather than trusting them.
func New(balance int) *Ledger {
	if balance < 0 {
		balance = 0
	}
	return &Ledger{balance: balance}
}

func (l *Ledger) Balance() int {
	return l.balance
}

func (l *Ledger) CanAfford(cost int) bool {
	return l.balance >= cost
}

// Debit reduces the balance by cost. The balance never goes negative; an
// unaffordable debit fails fast and leaves the balance untouched.
func (l *Ledger) Debit(cost int) error {
	if cost < 0 {
		return ErrNegativeAmount
	}
	if l.balance < cost {
		return ErrInsufficientCredit
	}
	l.balance -= cost
	return nil
}

func (l *Ledger) Credit(amount int) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	l.balance += amount
	return nil
}

// AwardForCompletion computes the bonus for a completion that brought the
// completed total and streak to the given values. Both bonuses are additive
// and can fire on the same completion. Pure; the caller applies the result
// via Credit.
func AwardForCompletion(cfg AwardConfig, newTotalCompleted, newStreak int) int {
	award := 0
	if cfg.MilestoneDivisor > 0 && newTotalCompleted > 0 && newTotalCompleted%cfg.MilestoneDivisor == 0 {
		award++
	}
	if cfg.StreakThreshold > 0 && newStreak == cfg.StreakThreshold {
		award++
	}
	return award
}
