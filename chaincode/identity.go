/*
SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"wastechain/internal/ledger"
)

const (
	roleAttr       = "role"
	enrollmentAttr = "hf.EnrollmentID"
	adminRole      = "admin"

	// EventName is the single chaincode event emitted per transaction.
	EventName = "WasteLedgerEvents"
)

// hasRole checks if the caller has the specified role attribute
func hasRole(ctx contractapi.TransactionContextInterface, role string) bool {
	val, found, err := ctx.GetClientIdentity().GetAttributeValue(roleAttr)
	if err != nil || !found {
		return false
	}
	return val == role
}

// callerFrom identifies the submitter by enrollment ID, falling back to the
// certificate-derived client ID.
func callerFrom(ctx contractapi.TransactionContextInterface) (ledger.Caller, error) {
	ci := ctx.GetClientIdentity()
	id, found, err := ci.GetAttributeValue(enrollmentAttr)
	if err != nil || !found || id == "" {
		id, err = ci.GetID()
		if err != nil {
			return ledger.Caller{}, fmt.Errorf("failed to read client identity: %v", err)
		}
	}
	return ledger.Caller{ID: id, Admin: hasRole(ctx, adminRole)}, nil
}

// EventRecord is one entry of the WasteLedgerEvents payload.
type EventRecord struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// eventBuffer collects the events of one transaction. Fabric keeps only the
// last SetEvent per transaction, so they are sent together as one array.
type eventBuffer struct {
	records []EventRecord
}

func (b *eventBuffer) Publish(events ...ledger.Event) error {
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal %s event: %v", e.EventName(), err)
		}
		b.records = append(b.records, EventRecord{Name: e.EventName(), Payload: payload})
	}
	return nil
}

func (b *eventBuffer) flush(stub shim.ChaincodeStubInterface) error {
	if len(b.records) == 0 {
		return nil
	}
	payload, err := json.Marshal(b.records)
	if err != nil {
		return fmt.Errorf("failed to marshal events: %v", err)
	}
	return stub.SetEvent(EventName, payload)
}
