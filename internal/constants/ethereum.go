package constants

import "math/big"

// WeiPerEther is the number of base units in one whole ETH.
var WeiPerEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

var MaxUint256 = func() *big.Int {
	val := new(big.Int)
	val.SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	return val
}()

const (
	SepoliaChainID     = "11155111"
	SepoliaName        = "Sepolia"
	SepoliaExplorerURL = "https://sepolia.etherscan.io"
	SepoliaRPC         = "https://rpc.sepolia.org"
)

// EncodedFieldSuffix is appended to plaintext by the placeholder field encoder.
const EncodedFieldSuffix = "_encrypted"
