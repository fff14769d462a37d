/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import "fmt"

// RegisterCitizen registers the caller as a citizen.
func (l *Ledger) RegisterCitizen(caller Caller) (*Citizen, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller.ID == "" {
		return nil, fmt.Errorf("%w: caller identity is required", ErrInvalidInput)
	}
	existing, err := l.store.Citizen(caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read citizen %s: %w", caller.ID, err)
	}
	if existing != nil && existing.Registered {
		return nil, fmt.Errorf("%w: citizen %s is already registered", ErrStateConflict, caller.ID)
	}

	now := l.clock.Now()
	citizen := &Citizen{
		ID:            caller.ID,
		Contributions: map[Category]uint64{},
		Registered:    true,
		RegisteredAt:  now,
	}
	if err := l.store.PutCitizen(citizen); err != nil {
		return nil, fmt.Errorf("failed to write citizen %s: %w", citizen.ID, err)
	}
	l.publish([]Event{CitizenRegistered{Citizen: citizen.ID, At: now}})
	return citizen, nil
}

// RegisterBin installs a new active, empty bin. Admin only.
func (l *Ledger) RegisterBin(caller Caller, id, location string, category Category, capacity uint64) (*SmartBin, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !caller.Admin {
		return nil, fmt.Errorf("%w: only admin can register bins", ErrUnauthorized)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: bin id is required", ErrInvalidInput)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	if capacity == 0 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: capacity must be between 1 and %d", ErrInvalidInput, MaxCapacity)
	}
	existing, err := l.store.Bin(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read bin %s: %w", id, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: bin %s already exists", ErrStateConflict, id)
	}

	now := l.clock.Now()
	bin := &SmartBin{
		ID:          id,
		Location:    location,
		Category:    category,
		Status:      BinEmpty,
		Capacity:    capacity,
		Active:      true,
		InstalledAt: now,
		LastEmptied: now,
	}
	if err := l.store.PutBin(bin); err != nil {
		return nil, fmt.Errorf("failed to write bin %s: %w", id, err)
	}
	return bin, nil
}

// RegisterCollector adds an unverified collector. Admin only.
func (l *Ledger) RegisterCollector(caller Caller, id, company string) (*WasteCollector, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !caller.Admin {
		return nil, fmt.Errorf("%w: only admin can register collectors", ErrUnauthorized)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: collector id is required", ErrInvalidInput)
	}
	existing, err := l.store.Collector(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read collector %s: %w", id, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: collector %s already exists", ErrStateConflict, id)
	}

	collector := &WasteCollector{
		ID:           id,
		Company:      company,
		Reputation:   InitialReputation,
		Active:       true,
		RegisteredAt: l.clock.Now(),
	}
	if err := l.store.PutCollector(collector); err != nil {
		return nil, fmt.Errorf("failed to write collector %s: %w", id, err)
	}
	return collector, nil
}

// VerifyCollector marks a collector as verified. Admin only.
func (l *Ledger) VerifyCollector(caller Caller, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !caller.Admin {
		return fmt.Errorf("%w: only admin can verify collectors", ErrUnauthorized)
	}
	collector, err := l.loadCollector(id)
	if err != nil {
		return err
	}
	collector.Verified = true
	if err := l.store.PutCollector(collector); err != nil {
		return fmt.Errorf("failed to write collector %s: %w", id, err)
	}
	return nil
}

// AssignCollector makes a verified, active collector responsible for a bin.
// Admin only.
func (l *Ledger) AssignCollector(caller Caller, binID, collectorID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !caller.Admin {
		return fmt.Errorf("%w: only admin can assign collectors", ErrUnauthorized)
	}
	bin, err := l.loadBin(binID)
	if err != nil {
		return err
	}
	collector, err := l.loadCollector(collectorID)
	if err != nil {
		return err
	}
	if !collector.Verified || !collector.Active {
		return fmt.Errorf("%w: collector %s is not verified and active", ErrNotFound, collectorID)
	}
	bin.Collector = collector.ID
	if err := l.store.PutBin(bin); err != nil {
		return fmt.Errorf("failed to write bin %s: %w", binID, err)
	}
	return nil
}

// SetBinActive toggles whether a bin accepts deposits and schedules. Admin only.
func (l *Ledger) SetBinActive(caller Caller, id string, active bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !caller.Admin {
		return fmt.Errorf("%w: only admin can change bin state", ErrUnauthorized)
	}
	bin, err := l.store.Bin(id)
	if err != nil {
		return fmt.Errorf("failed to read bin %s: %w", id, err)
	}
	if bin == nil {
		return fmt.Errorf("%w: bin %s does not exist", ErrNotFound, id)
	}
	bin.Active = active
	if err := l.store.PutBin(bin); err != nil {
		return fmt.Errorf("failed to write bin %s: %w", id, err)
	}
	return nil
}

// SetCollectorActive toggles whether a collector may complete tasks. Admin only.
func (l *Ledger) SetCollectorActive(caller Caller, id string, active bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !caller.Admin {
		return fmt.Errorf("%w: only admin can change collector state", ErrUnauthorized)
	}
	collector, err := l.loadCollector(id)
	if err != nil {
		return err
	}
	collector.Active = active
	if err := l.store.PutCollector(collector); err != nil {
		return fmt.Errorf("failed to write collector %s: %w", id, err)
	}
	return nil
}

func (l *Ledger) loadCollector(id string) (*WasteCollector, error) {
	collector, err := l.store.Collector(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read collector %s: %w", id, err)
	}
	if collector == nil {
		return nil, fmt.Errorf("%w: collector %s does not exist", ErrNotFound, id)
	}
	return collector, nil
}
