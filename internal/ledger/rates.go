/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"fmt"
	"maps"
)

// Rate is the reward and carbon-credit amount paid per unit of weight.
type Rate struct {
	Reward uint64 `json:"reward"`
	Carbon uint64 `json:"carbon"`
}

// RateTable maps each category to its rates.
type RateTable map[Category]Rate

// DefaultRates returns the table installed when the ledger is initialized.
func DefaultRates() RateTable {
	return RateTable{
		Plastic:    {Reward: 10, Carbon: 3},
		Paper:      {Reward: 5, Carbon: 2},
		Glass:      {Reward: 8, Carbon: 2},
		Metal:      {Reward: 15, Carbon: 5},
		Organic:    {Reward: 3, Carbon: 1},
		Electronic: {Reward: 20, Carbon: 8},
	}
}

// RewardRate returns the reward per unit weight, zero for unknown categories.
func (t RateTable) RewardRate(c Category) uint64 { return t[c].Reward }

// CarbonRate returns the carbon credits per unit weight.
func (t RateTable) CarbonRate(c Category) uint64 { return t[c].Carbon }

// UpdateRates replaces the rates for one category. Admin only.
func (l *Ledger) UpdateRates(caller Caller, category Category, reward, carbon uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !caller.Admin {
		return fmt.Errorf("%w: only admin can update rates", ErrUnauthorized)
	}
	if !category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}

	rates, err := l.store.Rates()
	if err != nil {
		return fmt.Errorf("failed to read rates: %w", err)
	}
	next := maps.Clone(rates)
	if next == nil {
		next = RateTable{}
	}
	next[category] = Rate{Reward: reward, Carbon: carbon}
	if err := l.store.PutRates(next); err != nil {
		return fmt.Errorf("failed to write rates: %w", err)
	}
	l.log.Debug().Str("category", string(category)).Uint64("reward", reward).Uint64("carbon", carbon).Msg("rates updated")
	return nil
}
