/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import "time"

// Event is a notification published after an operation commits.
type Event interface {
	EventName() string
}

// Sink receives the events of each committed operation, in emission order.
type Sink interface {
	Publish(events ...Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(events ...Event) error

// Publish calls f.
func (f SinkFunc) Publish(events ...Event) error { return f(events...) }

// Recorder is a Sink that keeps every event in memory.
type Recorder struct {
	Events []Event
}

// Publish appends events to r.Events.
func (r *Recorder) Publish(events ...Event) error {
	r.Events = append(r.Events, events...)
	return nil
}

// Names returns the names of the recorded events in order.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.EventName()
	}
	return out
}

// Reset drops the recorded events.
func (r *Recorder) Reset() { r.Events = nil }

// CitizenRegistered is emitted when a citizen joins the ledger.
type CitizenRegistered struct {
	Citizen string    `json:"citizen"`
	At      time.Time `json:"at"`
}

// WasteDeposited records an accepted deposit.
type WasteDeposited struct {
	DepositID uint64   `json:"depositId"`
	Citizen   string   `json:"citizen"`
	BinID     string   `json:"binId"`
	Weight    uint64   `json:"weight"`
	Category  Category `json:"category"`
}

// RewardsDistributed reports the reward credited for a deposit.
type RewardsDistributed struct {
	Citizen string `json:"citizen"`
	Amount  uint64 `json:"amount"`
}

// CarbonCreditsIssued reports the carbon credits credited for a deposit.
type CarbonCreditsIssued struct {
	Citizen string `json:"citizen"`
	Amount  uint64 `json:"amount"`
}

// BinStatusUpdated is emitted whenever a bin moves to another fill band.
type BinStatusUpdated struct {
	BinID  string    `json:"binId"`
	Status BinStatus `json:"status"`
}

// CollectionScheduled is emitted for every new pending task, manual or
// automatic.
type CollectionScheduled struct {
	TaskID      uint64    `json:"taskId"`
	BinID       string    `json:"binId"`
	Collector   string    `json:"collector"`
	ScheduledAt time.Time `json:"scheduledAt"`
}

// CollectionCompleted reports a finished task and the weight collected.
type CollectionCompleted struct {
	TaskID    uint64 `json:"taskId"`
	Collector string `json:"collector"`
	Collected uint64 `json:"collected"`
}

func (CitizenRegistered) EventName() string   { return "CitizenRegistered" }
func (WasteDeposited) EventName() string      { return "WasteDeposited" }
func (RewardsDistributed) EventName() string  { return "RewardsDistributed" }
func (CarbonCreditsIssued) EventName() string { return "CarbonCreditsIssued" }
func (BinStatusUpdated) EventName() string    { return "BinStatusUpdated" }
func (CollectionScheduled) EventName() string { return "CollectionScheduled" }
func (CollectionCompleted) EventName() string { return "CollectionCompleted" }
