package contracts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed syndicate/SecureSyndicate.json
var secureSyndicateJSON []byte

const (
	MethodJoinSyndicate  = "joinSyndicate"
	MethodCreateProject  = "createProject"
	MethodMakeInvestment = "makeInvestment"
)

// ContractArtifact represents a hand-authored contract artifact. Only the ABI is shipped,
// the contract is deployed out of band.
type ContractArtifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
}

var (
	parseOnce  sync.Once
	parsedABI  abi.ABI
	parseError error
)

// GetSecureSyndicateArtifact returns the SecureSyndicate contract artifact
func GetSecureSyndicateArtifact() (*ContractArtifact, error) {
	var artifact ContractArtifact
	if err := json.Unmarshal(secureSyndicateJSON, &artifact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal SecureSyndicate artifact: %w", err)
	}
	return &artifact, nil
}

// SecureSyndicateABIJSON returns the raw ABI array as a JSON string.
func SecureSyndicateABIJSON() (string, error) {
	artifact, err := GetSecureSyndicateArtifact()
	if err != nil {
		return "", err
	}
	return string(artifact.ABI), nil
}

// SecureSyndicateABI returns the parsed ABI. The result is cached after the first call.
func SecureSyndicateABI() (abi.ABI, error) {
	parseOnce.Do(func() {
		abiJSON, err := SecureSyndicateABIJSON()
		if err != nil {
			parseError = err
			return
		}
		parsedABI, parseError = abi.JSON(strings.NewReader(abiJSON))
		if parseError != nil {
			parseError = fmt.Errorf("failed to parse SecureSyndicate ABI: %w", parseError)
		}
	})
	return parsedABI, parseError
}

// GetContractArtifact returns a contract artifact by name
func GetContractArtifact(name string) (*ContractArtifact, error) {
	switch name {
	case "SecureSyndicate":
		return GetSecureSyndicateArtifact()
	default:
		return nil, fmt.Errorf("unknown contract: %s", name)
	}
}
