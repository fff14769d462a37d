/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Caller identifies who invokes an operation.
type Caller struct {
	ID    string
	Admin bool
}

// Clock supplies the logical time of the operation being executed.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// Ledger executes operations against a Store one at a time. Each mutating
// operation checks every precondition before its first write, so a rejected
// call changes nothing. Events are delivered to the Sink after the writes.
type Ledger struct {
	mu    sync.Mutex
	store Store
	clock Clock
	sink  Sink
	log   zerolog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used for operational messages.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// New returns a Ledger over store. A nil sink discards events.
func New(store Store, clock Clock, sink Sink, opts ...Option) *Ledger {
	if sink == nil {
		sink = SinkFunc(func(...Event) error { return nil })
	}
	l := &Ledger{store: store, clock: clock, sink: sink, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Initialize installs the rate table, or DefaultRates when rates is nil, and
// persists the current counters. Run once when the ledger is deployed.
func (l *Ledger) Initialize(caller Caller, rates RateTable) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !caller.Admin {
		return fmt.Errorf("%w: only admin can initialize the ledger", ErrUnauthorized)
	}
	if rates == nil {
		rates = DefaultRates()
	}
	for c := range rates {
		if !c.Valid() {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, c)
		}
	}
	if err := l.store.PutRates(rates); err != nil {
		return fmt.Errorf("failed to write rates: %w", err)
	}
	counters, err := l.store.Counters()
	if err != nil {
		return fmt.Errorf("failed to read counters: %w", err)
	}
	if err := l.store.PutCounters(counters); err != nil {
		return fmt.Errorf("failed to write counters: %w", err)
	}
	return nil
}

// publish delivers the events of an operation that has already committed.
// A delivery failure cannot undo the commit, so it is logged, not returned.
func (l *Ledger) publish(events []Event) {
	if len(events) == 0 {
		return
	}
	if err := l.sink.Publish(events...); err != nil {
		l.log.Error().Err(err).Str("first_event", events[0].EventName()).Int("events", len(events)).
			Msg("failed to publish events")
	}
}

// loadBin fetches an active bin or fails with ErrNotFound.
func (l *Ledger) loadBin(id string) (*SmartBin, error) {
	bin, err := l.store.Bin(id)
	if err != nil {
		return nil, fmt.Errorf("failed to read bin %s: %w", id, err)
	}
	if bin == nil || !bin.Active {
		return nil, fmt.Errorf("%w: bin %s does not exist or is inactive", ErrNotFound, id)
	}
	return bin, nil
}

// newTask allocates the next task id and builds a pending task.
func newTask(counters *Counters, bin *SmartBin, at time.Time) *CollectionTask {
	counters.LastTaskID++
	return &CollectionTask{
		ID:          counters.LastTaskID,
		BinID:       bin.ID,
		Collector:   bin.Collector,
		Status:      TaskPending,
		ScheduledAt: at,
	}
}
