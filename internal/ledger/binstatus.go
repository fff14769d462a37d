/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import "math"

// MaxCapacity is the largest capacity a bin may be registered with, so that
// weight*100 cannot overflow for any weight the bin can hold.
const MaxCapacity = math.MaxUint64 / 100

// FillPercent returns floor(weight*100/capacity). Capacity is never zero
// for a registered bin.
func FillPercent(weight, capacity uint64) uint64 {
	return weight * 100 / capacity
}

// StatusFor maps a fill level to its band, highest band first.
func StatusFor(weight, capacity uint64) BinStatus {
	switch pct := FillPercent(weight, capacity); {
	case pct >= 100:
		return BinFull
	case pct >= 75:
		return BinThreeQuarterFull
	case pct >= 50:
		return BinHalfFull
	case pct >= 25:
		return BinQuarterFull
	default:
		return BinEmpty
	}
}

// recompute refreshes bin.Status from its weight and returns the
// notification to emit, or nil when the band did not change.
func recompute(bin *SmartBin) Event {
	next := StatusFor(bin.Weight, bin.Capacity)
	if next == bin.Status {
		return nil
	}
	bin.Status = next
	return BinStatusUpdated{BinID: bin.ID, Status: next}
}
