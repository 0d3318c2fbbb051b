package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortenAddress(t *testing.T) {
	assert.Equal(t, "0xd8dA...6045", ShortenAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"))
	assert.Equal(t, "0x12", ShortenAddress("0x12"))
}

func TestExplorerURLs(t *testing.T) {
	explorer := "https://sepolia.etherscan.io/"

	assert.Equal(t, "https://sepolia.etherscan.io/address/0xabc", ExplorerAddressURL(explorer, "0xabc"))
	assert.Equal(t, "https://sepolia.etherscan.io/tx/0xdef", ExplorerTxURL(explorer, "0xdef"))
	assert.Empty(t, ExplorerAddressURL("", "0xabc"))
	assert.Empty(t, ExplorerTxURL(explorer, ""))
}
