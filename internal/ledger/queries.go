/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import "fmt"

// Citizen returns a registered citizen.
func (l *Ledger) Citizen(id string) (*Citizen, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.store.Citizen(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read citizen %s: %w", id, err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: citizen %s does not exist", ErrNotFound, id)
	}
	return c, nil
}

// Bin returns a bin whether or not it is active.
func (l *Ledger) Bin(id string) (*SmartBin, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := l.store.Bin(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read bin %s: %w", id, err)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: bin %s does not exist", ErrNotFound, id)
	}
	return b, nil
}

// Collector returns a collector whether or not it is verified or active.
func (l *Ledger) Collector(id string) (*WasteCollector, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadCollector(id)
}

// Task returns a collection task by id.
func (l *Ledger) Task(id uint64) (*CollectionTask, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, err := l.store.Task(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read task %d: %w", id, err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: task %d does not exist", ErrNotFound, id)
	}
	return t, nil
}

// DepositRecord returns a deposit by id.
func (l *Ledger) DepositRecord(id uint64) (*WasteDeposit, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	d, err := l.store.Deposit(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read deposit %d: %w", id, err)
	}
	if d == nil {
		return nil, fmt.Errorf("%w: deposit %d does not exist", ErrNotFound, id)
	}
	return d, nil
}

// Rates returns the rate table in effect.
func (l *Ledger) Rates() (RateTable, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rates, err := l.store.Rates()
	if err != nil {
		return nil, fmt.Errorf("failed to read rates: %w", err)
	}
	return rates, nil
}

// Stats summarizes the ledger-wide counters.
func (l *Ledger) Stats() (Stats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.store.Counters()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read counters: %w", err)
	}
	return Stats{
		TotalWasteCollected:      c.TotalWasteCollected,
		TotalRewardsDistributed:  c.TotalRewardsDistributed,
		TotalCarbonCreditsIssued: c.TotalCarbonCreditsIssued,
		TotalDeposits:            c.LastDepositID,
		TotalTasks:               c.LastTaskID,
	}, nil
}

// CitizenDeposits returns a citizen's deposits, oldest first.
func (l *Ledger) CitizenDeposits(citizenID string) ([]*WasteDeposit, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.store.Deposits()
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	out := []*WasteDeposit{}
	for _, d := range all {
		if d.Citizen == citizenID {
			out = append(out, d)
		}
	}
	return out, nil
}

// BinTasks returns every task created for a bin, oldest first.
func (l *Ledger) BinTasks(binID string) ([]*CollectionTask, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.store.Tasks()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	out := []*CollectionTask{}
	for _, t := range all {
		if t.BinID == binID {
			out = append(out, t)
		}
	}
	return out, nil
}
