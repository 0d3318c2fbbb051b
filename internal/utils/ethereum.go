package utils

import (
	"fmt"
	"strings"
)

// ShortenAddress renders an address as 0x1234...abcd
func ShortenAddress(address string) string {
	if len(address) < 10 {
		return address
	}
	return fmt.Sprintf("%s...%s", address[:6], address[len(address)-4:])
}

// ExplorerAddressURL links an address on a block explorer. Empty when no explorer is configured.
func ExplorerAddressURL(explorerURL, address string) string {
	if explorerURL == "" {
		return ""
	}
	return strings.TrimSuffix(explorerURL, "/") + "/address/" + address
}

// ExplorerTxURL links a transaction on a block explorer. Empty when no explorer is configured.
func ExplorerTxURL(explorerURL, txHash string) string {
	if explorerURL == "" || txHash == "" {
		return ""
	}
	return strings.TrimSuffix(explorerURL, "/") + "/tx/" + txHash
}
