package utils

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/blockchainBoi/secure-syndicate/internal/constants"
)

// EncodeFunctionArgsToStringMap generates a JSON string representing a map of argument names to their stringified values for a given contract function.
// Byte arguments are rendered as 0x-prefixed hex, the way they appear in calldata.
// Example usage:
//
//	args = [big.NewInt(1), []byte("MTVfZW5jcnlwdGVk"), []byte("..."), []byte{}]
//	output = {"projectId": "1", "amount": "0x4d5456...", "expectedReturn": "0x...", "inputProof": "0x"}
func EncodeFunctionArgsToStringMap(functionName string, args []any, contractABI abi.ABI) (string, error) {
	if len(args) == 0 {
		return "{}", nil
	}

	method, exists := contractABI.Methods[functionName]
	if !exists {
		return "", fmt.Errorf("method '%s' not found in ABI", functionName)
	}
	inputs := method.Inputs

	if len(args) != len(inputs) {
		return "", fmt.Errorf("expected %d arguments for %s, got %d", len(inputs), functionName, len(args))
	}

	result := make(map[string]string)

	for i, arg := range args {
		argName := inputs[i].Name
		if argName == "" {
			argName = fmt.Sprintf("arg%d", i)
		}
		result[argName] = formatArgValue(arg)
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result to JSON: %w", err)
	}

	return string(jsonBytes), nil
}

// formatArgValue formats an argument value to string, with special handling for MAX_UINT256
func formatArgValue(arg any) string {
	switch v := arg.(type) {
	case string:
		return v
	case *big.Int:
		if v.Cmp(constants.MaxUint256) == 0 {
			return "MAX_UINT256"
		}
		return v.String()
	case []byte:
		return hexutil.Encode(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
