// Package domain defines the snapshot and series types shared by the loader,
// the series derivation and the chart composer.
package domain

import "github.com/shopspring/decimal"

// BalanceSnapshot is the state recorded by the fuzz harness after one round.
// Amounts are kept as decimals so text and number inputs compare equal.
type BalanceSnapshot struct {
	Round                 uint64            `json:"round"`
	ContractBalance       decimal.Decimal   `json:"contractBalance"`
	TotalBalance          decimal.Decimal   `json:"totalBalance"`
	AddressBalances       []decimal.Decimal `json:"addressBalances"`
	CumulativeRewardsPaid decimal.Decimal   `json:"cumulativeRewardsPaid"`
	RewardsPaidThisRound  decimal.Decimal   `json:"rewardsPaidThisRound"`
}

// NewBalanceSnapshot creates a new BalanceSnapshot.
func NewBalanceSnapshot(
	round uint64,
	contractBalance decimal.Decimal,
	totalBalance decimal.Decimal,
	addressBalances []decimal.Decimal,
	cumulativeRewardsPaid decimal.Decimal,
	rewardsPaidThisRound decimal.Decimal,
) BalanceSnapshot {
	return BalanceSnapshot{
		Round:                 round,
		ContractBalance:       contractBalance,
		TotalBalance:          totalBalance,
		AddressBalances:       addressBalances,
		CumulativeRewardsPaid: cumulativeRewardsPaid,
		RewardsPaidThisRound:  rewardsPaidThisRound,
	}
}

// AverageAddressBalance returns the arithmetic mean of AddressBalances.
// The second return value is false when there are no addresses.
func (s BalanceSnapshot) AverageAddressBalance() (decimal.Decimal, bool) {
	if len(s.AddressBalances) == 0 {
		return decimal.Zero, false
	}

	return decimal.Avg(s.AddressBalances[0], s.AddressBalances[1:]...), true
}

// HasReward reports whether a reward was paid out in this round.
func (s BalanceSnapshot) HasReward() bool {
	return s.RewardsPaidThisRound.IsPositive()
}
