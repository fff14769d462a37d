/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"maps"
	"sort"
)

// Store persists ledger entities. Getters return (nil, nil) when the record
// does not exist. Returned values are owned by the caller.
type Store interface {
	Citizen(id string) (*Citizen, error)
	PutCitizen(c *Citizen) error
	Bin(id string) (*SmartBin, error)
	PutBin(b *SmartBin) error
	Collector(id string) (*WasteCollector, error)
	PutCollector(c *WasteCollector) error
	Task(id uint64) (*CollectionTask, error)
	PutTask(t *CollectionTask) error
	// Tasks returns every task in id order.
	Tasks() ([]*CollectionTask, error)
	Deposit(id uint64) (*WasteDeposit, error)
	PutDeposit(d *WasteDeposit) error
	// Deposits returns every deposit in id order.
	Deposits() ([]*WasteDeposit, error)
	Rates() (RateTable, error)
	PutRates(r RateTable) error
	Counters() (Counters, error)
	PutCounters(c Counters) error
}

// MemoryStore is an in-process Store. It copies values on the way in and
// out, so nothing outside the ledger can alias committed state.
type MemoryStore struct {
	citizens   map[string]*Citizen
	bins       map[string]*SmartBin
	collectors map[string]*WasteCollector
	tasks      map[uint64]*CollectionTask
	deposits   map[uint64]*WasteDeposit
	rates      RateTable
	counters   Counters
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		citizens:   map[string]*Citizen{},
		bins:       map[string]*SmartBin{},
		collectors: map[string]*WasteCollector{},
		tasks:      map[uint64]*CollectionTask{},
		deposits:   map[uint64]*WasteDeposit{},
	}
}

// Citizen returns a copy of the citizen with id.
func (m *MemoryStore) Citizen(id string) (*Citizen, error) {
	if c, ok := m.citizens[id]; ok {
		return c.clone(), nil
	}
	return nil, nil
}

// PutCitizen stores a copy of c.
func (m *MemoryStore) PutCitizen(c *Citizen) error {
	m.citizens[c.ID] = c.clone()
	return nil
}

// Bin returns a copy of the bin with id.
func (m *MemoryStore) Bin(id string) (*SmartBin, error) {
	if b, ok := m.bins[id]; ok {
		return b.clone(), nil
	}
	return nil, nil
}

// PutBin stores a copy of b.
func (m *MemoryStore) PutBin(b *SmartBin) error {
	m.bins[b.ID] = b.clone()
	return nil
}

// Collector returns a copy of the collector with id.
func (m *MemoryStore) Collector(id string) (*WasteCollector, error) {
	if c, ok := m.collectors[id]; ok {
		return c.clone(), nil
	}
	return nil, nil
}

// PutCollector stores a copy of c.
func (m *MemoryStore) PutCollector(c *WasteCollector) error {
	m.collectors[c.ID] = c.clone()
	return nil
}

// Task returns a copy of the task with id.
func (m *MemoryStore) Task(id uint64) (*CollectionTask, error) {
	if t, ok := m.tasks[id]; ok {
		return t.clone(), nil
	}
	return nil, nil
}

// PutTask stores a copy of t.
func (m *MemoryStore) PutTask(t *CollectionTask) error {
	m.tasks[t.ID] = t.clone()
	return nil
}

// Tasks returns copies of every task in id order.
func (m *MemoryStore) Tasks() ([]*CollectionTask, error) {
	out := make([]*CollectionTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Deposit returns a copy of the deposit with id.
func (m *MemoryStore) Deposit(id uint64) (*WasteDeposit, error) {
	if d, ok := m.deposits[id]; ok {
		out := *d
		return &out, nil
	}
	return nil, nil
}

// PutDeposit stores a copy of d.
func (m *MemoryStore) PutDeposit(d *WasteDeposit) error {
	rec := *d
	m.deposits[d.ID] = &rec
	return nil
}

// Deposits returns copies of every deposit in id order.
func (m *MemoryStore) Deposits() ([]*WasteDeposit, error) {
	out := make([]*WasteDeposit, 0, len(m.deposits))
	for _, d := range m.deposits {
		rec := *d
		out = append(out, &rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Rates returns the installed rate table, or DefaultRates before one is
// installed.
func (m *MemoryStore) Rates() (RateTable, error) {
	if m.rates == nil {
		return DefaultRates(), nil
	}
	return maps.Clone(m.rates), nil
}

// PutRates replaces the rate table.
func (m *MemoryStore) PutRates(r RateTable) error {
	m.rates = maps.Clone(r)
	return nil
}

// Counters returns the ledger counters.
func (m *MemoryStore) Counters() (Counters, error) {
	return m.counters, nil
}

// PutCounters replaces the ledger counters.
func (m *MemoryStore) PutCounters(c Counters) error {
	m.counters = c
	return nil
}
