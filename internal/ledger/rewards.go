/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"fmt"
	"math/bits"
)

// Loyalty tiers, keyed on the deposits a citizen made before the current one.
const (
	goldTierDeposits   = 50
	silverTierDeposits = 20
)

// tierMultipliers returns the reward and credit percentages for a citizen
// with prior deposits.
func tierMultipliers(prior uint64) (reward, credits uint64) {
	switch {
	case prior >= goldTierDeposits:
		return 120, 115
	case prior >= silverTierDeposits:
		return 110, 105
	default:
		return 100, 100
	}
}

// ComputeRewards returns the reward and carbon credits earned by depositing
// weight of category. Bonuses truncate toward zero. Amounts that do not fit
// in a uint64 are rejected with ErrInvalidInput.
func ComputeRewards(rates RateTable, prior uint64, category Category, weight uint64) (reward, credits uint64, err error) {
	rp, cp := tierMultipliers(prior)
	reward, ok := scaled(weight, rates.RewardRate(category), rp)
	if !ok {
		return 0, 0, fmt.Errorf("%w: reward for %d of %s overflows", ErrInvalidInput, weight, category)
	}
	credits, ok = scaled(weight, rates.CarbonRate(category), cp)
	if !ok {
		return 0, 0, fmt.Errorf("%w: carbon credits for %d of %s overflow", ErrInvalidInput, weight, category)
	}
	return reward, credits, nil
}

// scaled returns weight*rate*pct/100, or false when an intermediate product
// does not fit in 64 bits.
func scaled(weight, rate, pct uint64) (uint64, bool) {
	hi, base := bits.Mul64(weight, rate)
	if hi != 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(base, pct)
	if hi != 0 {
		return 0, false
	}
	return lo / 100, true
}

// addAll reports whether every pair sums without overflowing.
func addAll(pairs ...[2]uint64) bool {
	for _, p := range pairs {
		if _, carry := bits.Add64(p[0], p[1], 0); carry != 0 {
			return false
		}
	}
	return true
}
