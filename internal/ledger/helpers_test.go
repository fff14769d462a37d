package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	admin     = Caller{ID: "city-admin", Admin: true}
	alice     = Caller{ID: "alice"}
	crew      = Caller{ID: "crew-1"}
	epoch     = time.Date(2025, 8, 9, 8, 0, 0, 0, time.UTC)
	testToken = "sensor-0xabc"
)

type fixture struct {
	t      *testing.T
	ledger *Ledger
	store  *MemoryStore
	events *Recorder
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{t: t, store: NewMemoryStore(), events: &Recorder{}, now: epoch}
	f.ledger = New(f.store, ClockFunc(func() time.Time { return f.now }), f.events)
	require.NoError(t, f.ledger.Initialize(admin, nil))
	return f
}

func (f *fixture) advance(d time.Duration) { f.now = f.now.Add(d) }

func (f *fixture) citizen(c Caller) {
	f.t.Helper()
	_, err := f.ledger.RegisterCitizen(c)
	require.NoError(f.t, err)
}

func (f *fixture) bin(id string, capacity uint64) {
	f.t.Helper()
	_, err := f.ledger.RegisterBin(admin, id, "Main St", Plastic, capacity)
	require.NoError(f.t, err)
}

// collectorFor registers, verifies and assigns crew to the bin.
func (f *fixture) collectorFor(binID string) {
	f.t.Helper()
	if c, _ := f.store.Collector(crew.ID); c == nil {
		_, err := f.ledger.RegisterCollector(admin, crew.ID, "GreenHaul")
		require.NoError(f.t, err)
		require.NoError(f.t, f.ledger.VerifyCollector(admin, crew.ID))
	}
	require.NoError(f.t, f.ledger.AssignCollector(admin, binID, crew.ID))
}

func (f *fixture) deposit(c Caller, binID string, weight uint64) *WasteDeposit {
	f.t.Helper()
	d, err := f.ledger.Deposit(c, binID, weight, testToken)
	require.NoError(f.t, err)
	return d
}

func (f *fixture) mustBin(id string) *SmartBin {
	f.t.Helper()
	b, err := f.ledger.Bin(id)
	require.NoError(f.t, err)
	return b
}

func (f *fixture) mustCitizen(id string) *Citizen {
	f.t.Helper()
	c, err := f.ledger.Citizen(id)
	require.NoError(f.t, err)
	return c
}

func (f *fixture) mustCollector(id string) *WasteCollector {
	f.t.Helper()
	c, err := f.ledger.Collector(id)
	require.NoError(f.t, err)
	return c
}

func (f *fixture) stats() Stats {
	f.t.Helper()
	s, err := f.ledger.Stats()
	require.NoError(f.t, err)
	return s
}

// setPriorDeposits fakes a citizen's deposit history.
func (f *fixture) setPriorDeposits(id string, n uint64) {
	f.t.Helper()
	c, err := f.store.Citizen(id)
	require.NoError(f.t, err)
	c.TotalDeposits = n
	require.NoError(f.t, f.store.PutCitizen(c))
}
