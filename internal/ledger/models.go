/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"maps"
	"time"
)

// Category is the waste stream a bin accepts.
type Category string

const (
	Plastic    Category = "PLASTIC"
	Paper      Category = "PAPER"
	Glass      Category = "GLASS"
	Metal      Category = "METAL"
	Organic    Category = "ORGANIC"
	Electronic Category = "ELECTRONIC"
)

// Categories lists every known waste category in a stable order.
var Categories = []Category{Plastic, Paper, Glass, Metal, Organic, Electronic}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// BinStatus is the fill band of a bin.
type BinStatus string

const (
	BinEmpty            BinStatus = "EMPTY"
	BinQuarterFull      BinStatus = "QUARTER_FULL"
	BinHalfFull         BinStatus = "HALF_FULL"
	BinThreeQuarterFull BinStatus = "THREE_QUARTER_FULL"
	BinFull             BinStatus = "FULL"
)

// rank orders the bands so they can be compared.
func (s BinStatus) rank() int {
	switch s {
	case BinQuarterFull:
		return 1
	case BinHalfFull:
		return 2
	case BinThreeQuarterFull:
		return 3
	case BinFull:
		return 4
	default:
		return 0
	}
}

// AtLeast reports whether s is the same band as other or a fuller one.
func (s BinStatus) AtLeast(other BinStatus) bool {
	return s.rank() >= other.rank()
}

// TaskStatus is the lifecycle state of a collection task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "PENDING"
	TaskCompleted TaskStatus = "COMPLETED"
	// TaskVerified is reserved; no operation moves a task into it.
	TaskVerified TaskStatus = "VERIFIED"
)

// Citizen is a registered depositor.
type Citizen struct {
	ID                 string              `json:"id"`
	TotalDeposits      uint64              `json:"totalDeposits"`
	TotalRewards       uint64              `json:"totalRewards"`
	TotalCarbonCredits uint64              `json:"totalCarbonCredits"`
	Contributions      map[Category]uint64 `json:"contributions"`
	Registered         bool                `json:"registered"`
	RegisteredAt       time.Time           `json:"registeredAt"`
}

func (c *Citizen) clone() *Citizen {
	out := *c
	out.Contributions = maps.Clone(c.Contributions)
	return &out
}

// SmartBin is a sensor-equipped bin accepting a single category.
type SmartBin struct {
	ID          string    `json:"id"`
	Location    string    `json:"location"`
	Category    Category  `json:"category"`
	Status      BinStatus `json:"status"`
	Capacity    uint64    `json:"capacity"`
	Weight      uint64    `json:"weight"`
	Collector   string    `json:"collector,omitempty"`
	LastEmptied time.Time `json:"lastEmptied"`
	Active      bool      `json:"active"`
	InstalledAt time.Time `json:"installedAt"`
}

func (b *SmartBin) clone() *SmartBin {
	out := *b
	return &out
}

// WasteCollector is a collection company crew.
type WasteCollector struct {
	ID               string    `json:"id"`
	Company          string    `json:"company"`
	TotalCollections uint64    `json:"totalCollections"`
	Reputation       uint64    `json:"reputation"`
	Verified         bool      `json:"verified"`
	Active           bool      `json:"active"`
	RegisteredAt     time.Time `json:"registeredAt"`
}

func (c *WasteCollector) clone() *WasteCollector {
	out := *c
	return &out
}

// WasteDeposit is an immutable record of one accepted deposit.
type WasteDeposit struct {
	ID            uint64    `json:"id"`
	Citizen       string    `json:"citizen"`
	BinID         string    `json:"binId"`
	Weight        uint64    `json:"weight"`
	Category      Category  `json:"category"`
	Reward        uint64    `json:"reward"`
	CarbonCredits uint64    `json:"carbonCredits"`
	Timestamp     time.Time `json:"timestamp"`
	Verification  string    `json:"verification"`
}

// CollectionTask assigns a collector to empty a bin.
type CollectionTask struct {
	ID          uint64     `json:"id"`
	BinID       string     `json:"binId"`
	Collector   string     `json:"collector"`
	Status      TaskStatus `json:"status"`
	ScheduledAt time.Time  `json:"scheduledAt"`
	CompletedAt time.Time  `json:"completedAt"`
	Collected   uint64     `json:"collected"`
	Proof       string     `json:"proof"`
}

func (t *CollectionTask) clone() *CollectionTask {
	out := *t
	return &out
}

// Counters holds the id allocators and ledger-wide totals.
type Counters struct {
	LastDepositID            uint64 `json:"lastDepositId"`
	LastTaskID               uint64 `json:"lastTaskId"`
	TotalWasteCollected      uint64 `json:"totalWasteCollected"`
	TotalRewardsDistributed  uint64 `json:"totalRewardsDistributed"`
	TotalCarbonCreditsIssued uint64 `json:"totalCarbonCreditsIssued"`
}

// Stats is the read-only summary returned by Ledger.Stats.
type Stats struct {
	TotalWasteCollected      uint64 `json:"totalWasteCollected"`
	TotalRewardsDistributed  uint64 `json:"totalRewardsDistributed"`
	TotalCarbonCreditsIssued uint64 `json:"totalCarbonCreditsIssued"`
	TotalDeposits            uint64 `json:"totalDeposits"`
	TotalTasks               uint64 `json:"totalTasks"`
}
