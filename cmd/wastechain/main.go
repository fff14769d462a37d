/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"os"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"wastechain/chaincode"
	"wastechain/internal/config"
	"wastechain/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Logging)

	cc, err := contractapi.NewChaincode(chaincode.New(log))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating chaincode")
	}

	if !cfg.Chaincode.External() {
		log.Info().Msg("starting peer-launched chaincode")
		if err := cc.Start(); err != nil {
			log.Fatal().Err(err).Msg("error starting chaincode")
		}
		return
	}

	server := &shim.ChaincodeServer{
		CCID:     cfg.Chaincode.ID,
		Address:  cfg.Chaincode.ServerAddress,
		CC:       cc,
		TLSProps: shim.TLSProperties{Disabled: cfg.Chaincode.TLSDisabled},
	}
	log.Info().Str("address", server.Address).Str("ccid", server.CCID).Msg("starting chaincode service")
	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("error starting chaincode service")
	}
}
