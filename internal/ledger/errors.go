/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import "errors"

// Rejection kinds. Every failed operation wraps exactly one of these and
// leaves the ledger unchanged.
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrCapacityExceeded    = errors.New("capacity exceeded")
	ErrStateConflict       = errors.New("state conflict")
	ErrImplausibleQuantity = errors.New("implausible quantity")
)
