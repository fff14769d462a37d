/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"fmt"
	"time"
)

// AutoScheduleDelay is how far ahead a task created by a deposit is scheduled.
const AutoScheduleDelay = 4 * time.Hour

// Deposit records weight of waste dropped by the calling citizen into a bin.
// When the deposit leaves the bin at least three-quarters full and the bin
// has a collector, a pending collection task is created as well. Existing
// pending tasks for the bin are not consulted.
func (l *Ledger) Deposit(caller Caller, binID string, weight uint64, token string) (*WasteDeposit, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	citizen, err := l.store.Citizen(caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read citizen %s: %w", caller.ID, err)
	}
	if citizen == nil || !citizen.Registered {
		return nil, fmt.Errorf("%w: %s is not a registered citizen", ErrUnauthorized, caller.ID)
	}
	bin, err := l.loadBin(binID)
	if err != nil {
		return nil, err
	}
	if weight == 0 {
		return nil, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: verification token is required", ErrInvalidInput)
	}
	if bin.Status == BinFull {
		return nil, fmt.Errorf("%w: bin %s is full", ErrCapacityExceeded, bin.ID)
	}
	if weight > bin.Capacity-bin.Weight {
		return nil, fmt.Errorf("%w: bin %s has %d of %d remaining", ErrCapacityExceeded, bin.ID, bin.Capacity-bin.Weight, bin.Capacity)
	}

	rates, err := l.store.Rates()
	if err != nil {
		return nil, fmt.Errorf("failed to read rates: %w", err)
	}
	counters, err := l.store.Counters()
	if err != nil {
		return nil, fmt.Errorf("failed to read counters: %w", err)
	}

	reward, credits, err := ComputeRewards(rates, citizen.TotalDeposits, bin.Category, weight)
	if err != nil {
		return nil, err
	}
	if !addAll(
		[2]uint64{citizen.TotalRewards, reward},
		[2]uint64{citizen.TotalCarbonCredits, credits},
		[2]uint64{citizen.Contributions[bin.Category], weight},
		[2]uint64{counters.TotalWasteCollected, weight},
		[2]uint64{counters.TotalRewardsDistributed, reward},
		[2]uint64{counters.TotalCarbonCreditsIssued, credits},
	) {
		return nil, fmt.Errorf("%w: deposit of %d would overflow ledger totals", ErrInvalidInput, weight)
	}

	now := l.clock.Now()

	var events []Event
	bin.Weight += weight
	if ev := recompute(bin); ev != nil {
		events = append(events, ev)
	}

	citizen.TotalDeposits++
	citizen.TotalRewards += reward
	citizen.TotalCarbonCredits += credits
	if citizen.Contributions == nil {
		citizen.Contributions = map[Category]uint64{}
	}
	citizen.Contributions[bin.Category] += weight

	counters.LastDepositID++
	deposit := &WasteDeposit{
		ID:            counters.LastDepositID,
		Citizen:       citizen.ID,
		BinID:         bin.ID,
		Weight:        weight,
		Category:      bin.Category,
		Reward:        reward,
		CarbonCredits: credits,
		Timestamp:     now,
		Verification:  token,
	}
	counters.TotalWasteCollected += weight
	counters.TotalRewardsDistributed += reward
	counters.TotalCarbonCreditsIssued += credits

	events = append(events,
		WasteDeposited{DepositID: deposit.ID, Citizen: citizen.ID, BinID: bin.ID, Weight: weight, Category: bin.Category},
		RewardsDistributed{Citizen: citizen.ID, Amount: reward},
		CarbonCreditsIssued{Citizen: citizen.ID, Amount: credits},
	)

	var task *CollectionTask
	if bin.Status.AtLeast(BinThreeQuarterFull) && bin.Collector != "" {
		task = newTask(&counters, bin, now.Add(AutoScheduleDelay))
		events = append(events, CollectionScheduled{TaskID: task.ID, BinID: bin.ID, Collector: task.Collector, ScheduledAt: task.ScheduledAt})
	}

	if err := l.store.PutBin(bin); err != nil {
		return nil, fmt.Errorf("failed to write bin %s: %w", bin.ID, err)
	}
	if err := l.store.PutCitizen(citizen); err != nil {
		return nil, fmt.Errorf("failed to write citizen %s: %w", citizen.ID, err)
	}
	if err := l.store.PutDeposit(deposit); err != nil {
		return nil, fmt.Errorf("failed to write deposit %d: %w", deposit.ID, err)
	}
	if task != nil {
		if err := l.store.PutTask(task); err != nil {
			return nil, fmt.Errorf("failed to write task %d: %w", task.ID, err)
		}
		l.log.Info().Uint64("task", task.ID).Str("bin", bin.ID).Str("collector", task.Collector).
			Time("scheduled_at", task.ScheduledAt).Msg("collection auto-scheduled")
	}
	if err := l.store.PutCounters(counters); err != nil {
		return nil, fmt.Errorf("failed to write counters: %w", err)
	}

	l.publish(events)
	return deposit, nil
}
