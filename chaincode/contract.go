/*
SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/rs/zerolog"

	"wastechain/internal/ledger"
)

// SmartContract exposes the waste-incentive ledger as Fabric transactions.
type SmartContract struct {
	contractapi.Contract
	log zerolog.Logger
}

// New returns the contract, logging through log.
func New(log zerolog.Logger) *SmartContract {
	s := &SmartContract{log: log}
	s.Name = "wastechain"
	return s
}

// session binds a ledger to the transaction's world state, timestamp and
// event buffer.
func (s *SmartContract) session(ctx contractapi.TransactionContextInterface) (*ledger.Ledger, *eventBuffer, error) {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read transaction timestamp: %v", err)
	}
	now := ts.AsTime().UTC()
	events := &eventBuffer{}
	l := ledger.New(
		&stubStore{stub: ctx.GetStub()},
		ledger.ClockFunc(func() time.Time { return now }),
		events,
		ledger.WithLogger(s.log.With().Str("tx_id", ctx.GetStub().GetTxID()).Logger()),
	)
	return l, events, nil
}

// submit runs a mutating operation and emits its events when it succeeds.
func (s *SmartContract) submit(ctx contractapi.TransactionContextInterface, name string, op func(*ledger.Ledger, ledger.Caller) error) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	l, events, err := s.session(ctx)
	if err != nil {
		return err
	}
	if err := op(l, caller); err != nil {
		s.log.Warn().Str("tx", name).Str("caller", caller.ID).Err(err).Msg("transaction rejected")
		return err
	}
	if err := events.flush(ctx.GetStub()); err != nil {
		return fmt.Errorf("failed to emit events: %v", err)
	}
	s.log.Debug().Str("tx", name).Str("caller", caller.ID).Int("events", len(events.records)).Msg("transaction committed")
	return nil
}

// query runs a read-only operation and returns its result as JSON.
func (s *SmartContract) query(ctx contractapi.TransactionContextInterface, op func(*ledger.Ledger) (any, error)) (string, error) {
	l, _, err := s.session(ctx)
	if err != nil {
		return "", err
	}
	v, err := op(l)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %v", err)
	}
	return string(b), nil
}

// InitLedger installs the default rate table. Admin only.
func (s *SmartContract) InitLedger(ctx contractapi.TransactionContextInterface) error {
	return s.submit(ctx, "InitLedger", func(l *ledger.Ledger, c ledger.Caller) error {
		return l.Initialize(c, nil)
	})
}

// RegisterCitizen registers the submitting identity as a citizen.
func (s *SmartContract) RegisterCitizen(ctx contractapi.TransactionContextInterface) error {
	return s.submit(ctx, "RegisterCitizen", func(l *ledger.Ledger, c ledger.Caller) error {
		_, err := l.RegisterCitizen(c)
		return err
	})
}

// RegisterBin installs a smart bin. Admin only.
func (s *SmartContract) RegisterBin(ctx contractapi.TransactionContextInterface, binID, location, category string, capacity uint64) error {
	return s.submit(ctx, "RegisterBin", func(l *ledger.Ledger, c ledger.Caller) error {
		_, err := l.RegisterBin(c, binID, location, ledger.Category(category), capacity)
		return err
	})
}

// RegisterCollector adds a collection crew. Admin only.
func (s *SmartContract) RegisterCollector(ctx contractapi.TransactionContextInterface, collectorID, company string) error {
	return s.submit(ctx, "RegisterCollector", func(l *ledger.Ledger, c ledger.Caller) error {
		_, err := l.RegisterCollector(c, collectorID, company)
		return err
	})
}

// VerifyCollector marks a collector as verified. Admin only.
func (s *SmartContract) VerifyCollector(ctx contractapi.TransactionContextInterface, collectorID string) error {
	return s.submit(ctx, "VerifyCollector", func(l *ledger.Ledger, c ledger.Caller) error {
		return l.VerifyCollector(c, collectorID)
	})
}

// AssignCollector assigns a verified collector to a bin. Admin only.
func (s *SmartContract) AssignCollector(ctx contractapi.TransactionContextInterface, binID, collectorID string) error {
	return s.submit(ctx, "AssignCollector", func(l *ledger.Ledger, c ledger.Caller) error {
		return l.AssignCollector(c, binID, collectorID)
	})
}

// SetBinActive enables or disables a bin. Admin only.
func (s *SmartContract) SetBinActive(ctx contractapi.TransactionContextInterface, binID string, active bool) error {
	return s.submit(ctx, "SetBinActive", func(l *ledger.Ledger, c ledger.Caller) error {
		return l.SetBinActive(c, binID, active)
	})
}

// SetCollectorActive enables or disables a collector. Admin only.
func (s *SmartContract) SetCollectorActive(ctx contractapi.TransactionContextInterface, collectorID string, active bool) error {
	return s.submit(ctx, "SetCollectorActive", func(l *ledger.Ledger, c ledger.Caller) error {
		return l.SetCollectorActive(c, collectorID, active)
	})
}

// UpdateRates sets the per-unit reward and carbon rates of a category. Admin only.
func (s *SmartContract) UpdateRates(ctx contractapi.TransactionContextInterface, category string, reward, carbon uint64) error {
	return s.submit(ctx, "UpdateRates", func(l *ledger.Ledger, c ledger.Caller) error {
		return l.UpdateRates(c, ledger.Category(category), reward, carbon)
	})
}

// DepositWaste records a deposit by the submitting citizen and returns the deposit id.
func (s *SmartContract) DepositWaste(ctx contractapi.TransactionContextInterface, binID string, weight uint64, verification string) (uint64, error) {
	var id uint64
	err := s.submit(ctx, "DepositWaste", func(l *ledger.Ledger, c ledger.Caller) error {
		d, err := l.Deposit(c, binID, weight, verification)
		if err != nil {
			return err
		}
		id = d.ID
		return nil
	})
	return id, err
}

// ScheduleCollection creates a collection task for a bin. scheduledAt is RFC3339.
func (s *SmartContract) ScheduleCollection(ctx contractapi.TransactionContextInterface, binID, scheduledAt string) (uint64, error) {
	var id uint64
	err := s.submit(ctx, "ScheduleCollection", func(l *ledger.Ledger, c ledger.Caller) error {
		at, err := time.Parse(time.RFC3339, scheduledAt)
		if err != nil {
			return fmt.Errorf("%w: invalid scheduledAt %q: %v", ledger.ErrInvalidInput, scheduledAt, err)
		}
		t, err := l.ScheduleCollection(c, binID, at.UTC())
		if err != nil {
			return err
		}
		id = t.ID
		return nil
	})
	return id, err
}

// CompleteCollection closes a task on behalf of the submitting collector.
func (s *SmartContract) CompleteCollection(ctx contractapi.TransactionContextInterface, taskID, weight uint64, proof string) error {
	return s.submit(ctx, "CompleteCollection", func(l *ledger.Ledger, c ledger.Caller) error {
		_, err := l.CompleteCollection(c, taskID, weight, proof)
		return err
	})
}

// GetCitizen returns a citizen profile.
func (s *SmartContract) GetCitizen(ctx contractapi.TransactionContextInterface, citizenID string) (string, error) {
	return s.query(ctx, func(l *ledger.Ledger) (any, error) { return l.Citizen(citizenID) })
}

// GetBin returns a bin, active or not.
func (s *SmartContract) GetBin(ctx contractapi.TransactionContextInterface, binID string) (string, error) {
	return s.query(ctx, func(l *ledger.Ledger) (any, error) { return l.Bin(binID) })
}

// GetCollector returns a collector record.
func (s *SmartContract) GetCollector(ctx contractapi.TransactionContextInterface, collectorID string) (string, error) {
	return s.query(ctx, func(l *ledger.Ledger) (any, error) { return l.Collector(collectorID) })
}

// GetTask returns a collection task.
func (s *SmartContract) GetTask(ctx contractapi.TransactionContextInterface, taskID uint64) (string, error) {
	return s.query(ctx, func(l *ledger.Ledger) (any, error) { return l.Task(taskID) })
}

// GetDeposit returns a deposit record.
func (s *SmartContract) GetDeposit(ctx contractapi.TransactionContextInterface, depositID uint64) (string, error) {
	return s.query(ctx, func(l *ledger.Ledger) (any, error) { return l.DepositRecord(depositID) })
}

// GetRates returns the rate table in effect.
func (s *SmartContract) GetRates(ctx contractapi.TransactionContextInterface) (string, error) {
	return s.query(ctx, func(l *ledger.Ledger) (any, error) { return l.Rates() })
}

// GetStats returns the ledger-wide totals.
func (s *SmartContract) GetStats(ctx contractapi.TransactionContextInterface) (string, error) {
	return s.query(ctx, func(l *ledger.Ledger) (any, error) { return l.Stats() })
}

// GetCitizenDeposits returns a citizen's deposit history, oldest first.
func (s *SmartContract) GetCitizenDeposits(ctx contractapi.TransactionContextInterface, citizenID string) (string, error) {
	return s.query(ctx, func(l *ledger.Ledger) (any, error) { return l.CitizenDeposits(citizenID) })
}

// GetBinTasks returns every collection task created for a bin.
func (s *SmartContract) GetBinTasks(ctx contractapi.TransactionContextInterface, binID string) (string, error) {
	return s.query(ctx, func(l *ledger.Ledger) (any, error) { return l.BinTasks(binID) })
}
