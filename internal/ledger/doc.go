/*
SPDX-License-Identifier: Apache-2.0
*/

// Package ledger is the waste-incentive state machine: citizens deposit waste
// into smart bins and earn rewards and carbon credits, bins fill up and get
// scheduled for collection, and collectors empty them and gain or lose
// reputation.
//
// The package has no knowledge of where state lives or who calls it. Storage,
// time and event delivery are supplied through Store, Clock and Sink.
package ledger
