package utils

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// processArg converts a loosely typed argument into the Go type the ABI packer expects
func processArg(argType abi.Type, value any) (any, error) {
	switch argType.T {
	case abi.AddressTy:
		switch v := value.(type) {
		case string:
			if !common.IsHexAddress(v) {
				return nil, fmt.Errorf("invalid address: %s", v)
			}
			return common.HexToAddress(v), nil
		case common.Address:
			return v, nil
		default:
			return nil, fmt.Errorf("unsupported address type: %T", value)
		}

	case abi.UintTy, abi.IntTy:
		switch v := value.(type) {
		case string:
			bigInt, ok := new(big.Int).SetString(v, 10)
			if !ok {
				return nil, fmt.Errorf("invalid integer: %s", v)
			}
			if argType.T == abi.UintTy && bigInt.Sign() < 0 {
				return nil, fmt.Errorf("negative value for unsigned integer: %s", v)
			}
			return bigInt, nil
		case *big.Int:
			if v == nil {
				return nil, fmt.Errorf("nil integer")
			}
			if argType.T == abi.UintTy && v.Sign() < 0 {
				return nil, fmt.Errorf("negative value for unsigned integer: %s", v)
			}
			return v, nil
		case int64:
			return big.NewInt(v), nil
		case int:
			return big.NewInt(int64(v)), nil
		case uint64:
			return new(big.Int).SetUint64(v), nil
		default:
			return nil, fmt.Errorf("unsupported integer type: %T", value)
		}

	case abi.BoolTy:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			return strings.ToLower(v) == "true", nil
		default:
			return nil, fmt.Errorf("unsupported bool type: %T", value)
		}

	case abi.StringTy:
		switch v := value.(type) {
		case string:
			return v, nil
		default:
			return nil, fmt.Errorf("unsupported string type: %T", value)
		}

	case abi.BytesTy:
		switch v := value.(type) {
		case []byte:
			return v, nil
		case string:
			v = strings.TrimPrefix(v, "0x")
			bytes, err := hex.DecodeString(v)
			if err != nil {
				return nil, fmt.Errorf("invalid hex string: %w", err)
			}
			return bytes, nil
		default:
			return nil, fmt.Errorf("unsupported bytes type: %T", value)
		}

	default:
		return nil, fmt.Errorf("unsupported argument type: %v", argType)
	}
}

// PackContractFunctionCall ABI-encodes a method call, including the 4-byte selector
func PackContractFunctionCall(parsedABI abi.ABI, functionName string, args []any) ([]byte, error) {
	method, ok := parsedABI.Methods[functionName]
	if !ok {
		return nil, fmt.Errorf("function %s not found in ABI", functionName)
	}

	if len(args) != len(method.Inputs) {
		return nil, fmt.Errorf("expected %d arguments for %s, got %d", len(method.Inputs), functionName, len(args))
	}

	// Process arguments to match ABI types
	processedArgs := make([]any, len(args))
	for i, input := range method.Inputs {
		processedArg, err := processArg(input.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("failed to process argument %d (%s): %w", i, input.Name, err)
		}
		processedArgs[i] = processedArg
	}

	encodedData, err := parsedABI.Pack(functionName, processedArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode function call: %w", err)
	}
	return encodedData, nil
}
