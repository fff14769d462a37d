/*
SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shim"

	"wastechain/internal/ledger"
)

// World state keys. Numeric ids are zero padded so range scans return
// deposits and tasks in id order.
const (
	citizenPrefix   = "CITIZEN_"
	binPrefix       = "BIN_"
	collectorPrefix = "COLLECTOR_"
	depositPrefix   = "DEPOSIT_"
	taskPrefix      = "TASK_"
	ratesKey        = "RATES"
	countersKey     = "COUNTERS"
)

func depositKey(id uint64) string { return fmt.Sprintf("%s%020d", depositPrefix, id) }
func taskKey(id uint64) string    { return fmt.Sprintf("%s%020d", taskPrefix, id) }

// stubStore keeps ledger entities as JSON documents in world state.
type stubStore struct {
	stub shim.ChaincodeStubInterface
}

// get unmarshals the document at key into v and reports whether it existed.
func (s *stubStore) get(key string, v any) (bool, error) {
	b, err := s.stub.GetState(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %v", key, err)
	}
	if b == nil {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %v", key, err)
	}
	return true, nil
}

func (s *stubStore) put(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %v", key, err)
	}
	return s.stub.PutState(key, b)
}

// scan decodes every document in the key range owned by prefix.
func scan[T any](s *stubStore, prefix string) ([]*T, error) {
	iter, err := s.stub.GetStateByRange(prefix, prefix+"~")
	if err != nil {
		return nil, fmt.Errorf("failed to get %s range: %v", prefix, err)
	}
	defer iter.Close()

	var out []*T
	for iter.HasNext() {
		kv, err := iter.Next()
		if err != nil {
			return nil, fmt.Errorf("failed during results iteration: %v", err)
		}
		v := new(T)
		if err := json.Unmarshal(kv.Value, v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %v", kv.Key, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *stubStore) Citizen(id string) (*ledger.Citizen, error) {
	var c ledger.Citizen
	ok, err := s.get(citizenPrefix+id, &c)
	if !ok || err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *stubStore) PutCitizen(c *ledger.Citizen) error { return s.put(citizenPrefix+c.ID, c) }

func (s *stubStore) Bin(id string) (*ledger.SmartBin, error) {
	var b ledger.SmartBin
	ok, err := s.get(binPrefix+id, &b)
	if !ok || err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *stubStore) PutBin(b *ledger.SmartBin) error { return s.put(binPrefix+b.ID, b) }

func (s *stubStore) Collector(id string) (*ledger.WasteCollector, error) {
	var c ledger.WasteCollector
	ok, err := s.get(collectorPrefix+id, &c)
	if !ok || err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *stubStore) PutCollector(c *ledger.WasteCollector) error {
	return s.put(collectorPrefix+c.ID, c)
}

func (s *stubStore) Task(id uint64) (*ledger.CollectionTask, error) {
	var t ledger.CollectionTask
	ok, err := s.get(taskKey(id), &t)
	if !ok || err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *stubStore) PutTask(t *ledger.CollectionTask) error { return s.put(taskKey(t.ID), t) }

func (s *stubStore) Tasks() ([]*ledger.CollectionTask, error) {
	return scan[ledger.CollectionTask](s, taskPrefix)
}

func (s *stubStore) Deposit(id uint64) (*ledger.WasteDeposit, error) {
	var d ledger.WasteDeposit
	ok, err := s.get(depositKey(id), &d)
	if !ok || err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *stubStore) PutDeposit(d *ledger.WasteDeposit) error { return s.put(depositKey(d.ID), d) }

func (s *stubStore) Deposits() ([]*ledger.WasteDeposit, error) {
	return scan[ledger.WasteDeposit](s, depositPrefix)
}

// Rates falls back to the default table until InitLedger has run.
func (s *stubStore) Rates() (ledger.RateTable, error) {
	var r ledger.RateTable
	ok, err := s.get(ratesKey, &r)
	if err != nil {
		return nil, err
	}
	if !ok {
		return ledger.DefaultRates(), nil
	}
	return r, nil
}

func (s *stubStore) PutRates(r ledger.RateTable) error { return s.put(ratesKey, r) }

func (s *stubStore) Counters() (ledger.Counters, error) {
	var c ledger.Counters
	_, err := s.get(countersKey, &c)
	return c, err
}

func (s *stubStore) PutCounters(c ledger.Counters) error { return s.put(countersKey, c) }
