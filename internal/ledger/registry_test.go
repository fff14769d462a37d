package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCitizen(t *testing.T) {
	f := newFixture(t)

	c, err := f.ledger.RegisterCitizen(alice)
	require.NoError(t, err)
	assert.True(t, c.Registered)
	assert.Equal(t, epoch, c.RegisteredAt)
	assert.Equal(t, []Event{CitizenRegistered{Citizen: "alice", At: epoch}}, f.events.Events)

	_, err = f.ledger.RegisterCitizen(alice)
	require.ErrorIs(t, err, ErrStateConflict)

	_, err = f.ledger.RegisterCitizen(Caller{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterBin(t *testing.T) {
	f := newFixture(t)

	bin, err := f.ledger.RegisterBin(admin, "BIN-1", "Harbour Rd", Glass, 500)
	require.NoError(t, err)
	assert.Equal(t, BinEmpty, bin.Status)
	assert.True(t, bin.Active)
	assert.Zero(t, bin.Weight)

	_, err = f.ledger.RegisterBin(alice, "BIN-2", "x", Glass, 500)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = f.ledger.RegisterBin(admin, "BIN-2", "x", Glass, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.ledger.RegisterBin(admin, "BIN-2", "x", Glass, 1<<62)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.ledger.RegisterBin(admin, "BIN-2", "x", Glass, MaxCapacity+1)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.ledger.RegisterBin(admin, "BIN-2", "x", Category("WOOD"), 10)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.ledger.RegisterBin(admin, "BIN-1", "x", Glass, 10)
	require.ErrorIs(t, err, ErrStateConflict)
}

func TestCollectorLifecycle(t *testing.T) {
	f := newFixture(t)
	f.bin("BIN-1", 100)

	c, err := f.ledger.RegisterCollector(admin, crew.ID, "GreenHaul")
	require.NoError(t, err)
	assert.False(t, c.Verified)
	assert.Equal(t, uint64(InitialReputation), c.Reputation)

	// Only verified collectors can be assigned.
	err = f.ledger.AssignCollector(admin, "BIN-1", crew.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, f.ledger.VerifyCollector(alice, crew.ID), ErrUnauthorized)
	require.ErrorIs(t, f.ledger.VerifyCollector(admin, "ghost"), ErrNotFound)
	require.NoError(t, f.ledger.VerifyCollector(admin, crew.ID))
	require.NoError(t, f.ledger.AssignCollector(admin, "BIN-1", crew.ID))
	assert.Equal(t, crew.ID, f.mustBin("BIN-1").Collector)

	_, err = f.ledger.RegisterCollector(admin, crew.ID, "again")
	require.ErrorIs(t, err, ErrStateConflict)
}

func TestUpdateRates(t *testing.T) {
	f := newFixture(t)
	f.citizen(alice)
	f.bin("BIN-1", 1000)

	require.ErrorIs(t, f.ledger.UpdateRates(alice, Plastic, 1, 1), ErrUnauthorized)
	require.ErrorIs(t, f.ledger.UpdateRates(admin, Category("WOOD"), 1, 1), ErrInvalidInput)
	require.NoError(t, f.ledger.UpdateRates(admin, Plastic, 2, 0))

	rates, err := f.ledger.Rates()
	require.NoError(t, err)
	assert.Equal(t, Rate{Reward: 2, Carbon: 0}, rates[Plastic])
	assert.Equal(t, DefaultRates()[Metal], rates[Metal])

	d := f.deposit(alice, "BIN-1", 10)
	assert.Equal(t, uint64(20), d.Reward)
	assert.Zero(t, d.CarbonCredits)
}

func TestInitializeRequiresAdmin(t *testing.T) {
	l := New(NewMemoryStore(), ClockFunc(time.Now), nil)
	require.ErrorIs(t, l.Initialize(alice, nil), ErrUnauthorized)
	require.ErrorIs(t, l.Initialize(admin, RateTable{"WOOD": {}}), ErrInvalidInput)
}

func TestReadsAreIdempotent(t *testing.T) {
	f := readyBin(t)

	s1 := f.stats()
	b1 := f.mustBin("BIN-1")
	c1 := f.mustCitizen("alice")
	assert.Equal(t, s1, f.stats())
	assert.Equal(t, b1, f.mustBin("BIN-1"))
	assert.Equal(t, c1, f.mustCitizen("alice"))

	// Mutating a returned value does not leak into the ledger.
	c1.Contributions[Plastic] = 0
	b1.Weight = 0
	assert.Equal(t, uint64(800), f.mustCitizen("alice").Contributions[Plastic])
	assert.Equal(t, uint64(800), f.mustBin("BIN-1").Weight)
}

// TestRandomOperationsKeepInvariants drives a seeded random mix of
// operations and checks the ledger invariants after each one.
func TestRandomOperationsKeepInvariants(t *testing.T) {
	f := newFixture(t)
	rng := rand.New(rand.NewSource(7))
	citizens := []Caller{alice, {ID: "bob"}, {ID: "carol"}}
	for _, c := range citizens {
		f.citizen(c)
	}
	bins := []string{"BIN-A", "BIN-B", "BIN-C"}
	for _, id := range bins {
		f.bin(id, 500)
		f.collectorFor(id)
	}

	var last Stats
	var lastDepositID, lastTaskID uint64
	for i := 0; i < 400; i++ {
		f.advance(time.Duration(rng.Intn(90)) * time.Minute)
		binID := bins[rng.Intn(len(bins))]
		switch rng.Intn(3) {
		case 0, 1:
			d, err := f.ledger.Deposit(citizens[rng.Intn(len(citizens))], binID, uint64(rng.Intn(150)+1), testToken)
			if err == nil {
				assert.Greater(t, d.ID, lastDepositID)
				lastDepositID = d.ID
			} else {
				require.ErrorIs(t, err, ErrCapacityExceeded)
			}
		case 2:
			tasks, err := f.ledger.BinTasks(binID)
			require.NoError(t, err)
			for _, task := range tasks {
				if task.Status != TaskPending {
					continue
				}
				bin := f.mustBin(binID)
				if bin.Weight == 0 {
					break
				}
				_, err := f.ledger.CompleteCollection(crew, task.ID, bin.Weight, "proof")
				require.NoError(t, err)
				break
			}
		}

		for _, id := range bins {
			bin := f.mustBin(id)
			assert.LessOrEqual(t, bin.Weight, bin.Capacity)
			assert.Equal(t, StatusFor(bin.Weight, bin.Capacity), bin.Status)
		}
		rep := f.mustCollector(crew.ID).Reputation
		assert.LessOrEqual(t, rep, uint64(MaxReputation))

		s := f.stats()
		assert.GreaterOrEqual(t, s.TotalWasteCollected, last.TotalWasteCollected)
		assert.GreaterOrEqual(t, s.TotalRewardsDistributed, last.TotalRewardsDistributed)
		assert.GreaterOrEqual(t, s.TotalCarbonCreditsIssued, last.TotalCarbonCreditsIssued)
		assert.GreaterOrEqual(t, s.TotalTasks, lastTaskID)
		lastTaskID = s.TotalTasks
		last = s
	}

	var contributed uint64
	for _, c := range citizens {
		for _, w := range f.mustCitizen(c.ID).Contributions {
			contributed += w
		}
	}
	assert.Equal(t, last.TotalWasteCollected, contributed)
}
