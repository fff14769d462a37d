/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"fmt"
	"math/bits"
	"time"
)

const (
	// CompletionGrace is how late a collection may finish and still count
	// as on time.
	CompletionGrace = time.Hour
	// WeightTolerancePercent bounds a collected weight claim relative to
	// the weight recorded in the bin.
	WeightTolerancePercent = 110

	MaxReputation     = 100
	InitialReputation = 50
	onTimeBonus       = 2
	latePenalty       = 1
)

// ScheduleCollection creates a pending task for a bin that is at least
// three-quarters full. Admin only. Any number of tasks may be pending for
// the same bin.
func (l *Ledger) ScheduleCollection(caller Caller, binID string, at time.Time) (*CollectionTask, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !caller.Admin {
		return nil, fmt.Errorf("%w: only admin can schedule collections", ErrUnauthorized)
	}
	bin, err := l.loadBin(binID)
	if err != nil {
		return nil, err
	}
	now := l.clock.Now()
	if !at.After(now) {
		return nil, fmt.Errorf("%w: scheduled time %s is not in the future", ErrInvalidInput, at.Format(time.RFC3339))
	}
	if bin.Collector == "" {
		return nil, fmt.Errorf("%w: bin %s has no assigned collector", ErrStateConflict, bin.ID)
	}
	if !bin.Status.AtLeast(BinThreeQuarterFull) {
		return nil, fmt.Errorf("%w: bin %s is %s", ErrStateConflict, bin.ID, bin.Status)
	}

	counters, err := l.store.Counters()
	if err != nil {
		return nil, fmt.Errorf("failed to read counters: %w", err)
	}
	task := newTask(&counters, bin, at)

	if err := l.store.PutTask(task); err != nil {
		return nil, fmt.Errorf("failed to write task %d: %w", task.ID, err)
	}
	if err := l.store.PutCounters(counters); err != nil {
		return nil, fmt.Errorf("failed to write counters: %w", err)
	}
	l.publish([]Event{CollectionScheduled{TaskID: task.ID, BinID: bin.ID, Collector: task.Collector, ScheduledAt: at}})
	return task, nil
}

// CompleteCollection closes a pending task on behalf of its collector,
// empties the bin and adjusts the collector's reputation by timeliness.
func (l *Ledger) CompleteCollection(caller Caller, taskID uint64, weight uint64, proof string) (*CollectionTask, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	task, err := l.store.Task(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to read task %d: %w", taskID, err)
	}
	if task == nil {
		return nil, fmt.Errorf("%w: task %d does not exist", ErrNotFound, taskID)
	}
	if weight == 0 {
		return nil, fmt.Errorf("%w: collected weight must be positive", ErrInvalidInput)
	}
	if proof == "" {
		return nil, fmt.Errorf("%w: proof is required", ErrInvalidInput)
	}
	if caller.ID != task.Collector {
		return nil, fmt.Errorf("%w: task %d is assigned to another collector", ErrStateConflict, task.ID)
	}
	collector, err := l.store.Collector(caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read collector %s: %w", caller.ID, err)
	}
	if collector == nil || !collector.Verified || !collector.Active {
		return nil, fmt.Errorf("%w: %s is not a verified active collector", ErrUnauthorized, caller.ID)
	}
	if task.Status != TaskPending {
		return nil, fmt.Errorf("%w: task %d is %s", ErrStateConflict, task.ID, task.Status)
	}
	bin, err := l.store.Bin(task.BinID)
	if err != nil {
		return nil, fmt.Errorf("failed to read bin %s: %w", task.BinID, err)
	}
	if bin == nil {
		return nil, fmt.Errorf("%w: bin %s does not exist", ErrNotFound, task.BinID)
	}
	if exceedsTolerance(weight, bin.Weight) {
		return nil, fmt.Errorf("%w: collected %d exceeds recorded %d by more than %d%%",
			ErrImplausibleQuantity, weight, bin.Weight, WeightTolerancePercent-100)
	}

	now := l.clock.Now()
	task.Status = TaskCompleted
	task.CompletedAt = now
	task.Collected = weight
	task.Proof = proof

	bin.Weight = 0
	bin.Status = BinEmpty
	bin.LastEmptied = now

	collector.TotalCollections++
	onTime := !now.After(task.ScheduledAt.Add(CompletionGrace))
	collector.Reputation = adjustReputation(collector.Reputation, onTime)

	if err := l.store.PutTask(task); err != nil {
		return nil, fmt.Errorf("failed to write task %d: %w", task.ID, err)
	}
	if err := l.store.PutBin(bin); err != nil {
		return nil, fmt.Errorf("failed to write bin %s: %w", bin.ID, err)
	}
	if err := l.store.PutCollector(collector); err != nil {
		return nil, fmt.Errorf("failed to write collector %s: %w", collector.ID, err)
	}

	l.publish([]Event{
		CollectionCompleted{TaskID: task.ID, Collector: collector.ID, Collected: weight},
		BinStatusUpdated{BinID: bin.ID, Status: BinEmpty},
	})
	return task, nil
}

// exceedsTolerance reports whether claim*100 > recorded*WeightTolerancePercent,
// comparing the full 128-bit products.
func exceedsTolerance(claim, recorded uint64) bool {
	chi, clo := bits.Mul64(claim, 100)
	rhi, rlo := bits.Mul64(recorded, WeightTolerancePercent)
	return chi > rhi || (chi == rhi && clo > rlo)
}

// adjustReputation applies the timeliness bonus or penalty within [0, MaxReputation].
func adjustReputation(score uint64, onTime bool) uint64 {
	if onTime {
		score += onTimeBonus
		if score > MaxReputation {
			score = MaxReputation
		}
		return score
	}
	if score < latePenalty {
		return 0
	}
	return score - latePenalty
}
