package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/blockchainBoi/secure-syndicate/internal/constants"
)

// ParseUint parses a base-10, non-negative integer. Signs, decimals, exponents and
// surrounding whitespace are rejected.
func ParseUint(value string) (*big.Int, error) {
	if value == "" {
		return nil, fmt.Errorf("value is empty")
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			if r == '.' {
				return nil, fmt.Errorf("fractional value %q is not supported", value)
			}
			return nil, fmt.Errorf("%q is not a whole number", value)
		}
	}
	parsed, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("%q is not a whole number", value)
	}
	if parsed.Cmp(constants.MaxUint256) > 0 {
		return nil, fmt.Errorf("%q overflows uint256", value)
	}
	return parsed, nil
}

// ParseEtherToWei converts a whole number of ETH into wei. Fractional ETH is rejected,
// never truncated.
func ParseEtherToWei(value string) (*big.Int, error) {
	ether, err := ParseUint(value)
	if err != nil {
		return nil, err
	}
	wei := new(big.Int).Mul(ether, constants.WeiPerEther)
	if wei.Cmp(constants.MaxUint256) > 0 {
		return nil, fmt.Errorf("%q ETH overflows uint256", value)
	}
	return wei, nil
}

// FormatWeiAsEther renders a wei amount as ETH with six decimals
func FormatWeiAsEther(wei *big.Int) string {
	if wei == nil {
		wei = new(big.Int)
	}
	ethBalance := new(big.Float).SetInt(wei)
	ethBalance.Quo(ethBalance, new(big.Float).SetInt(constants.WeiPerEther))
	return strings.TrimSpace(ethBalance.Text('f', 6))
}
