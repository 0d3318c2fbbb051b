package services

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	ConnectorPrivateKey = "private-key"
	ConnectorKeystore   = "keystore"
)

// Signer signs transactions for a single account
type Signer interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// WalletConnector is one way of unlocking an account for the wallet session
type WalletConnector interface {
	Info() models.ConnectorInfo
	Connect(ctx context.Context) (Signer, error)
}

type keySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewKeySigner wraps a private key as a Signer
func NewKeySigner(key *ecdsa.PrivateKey) Signer {
	return &keySigner{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}
}

func (s *keySigner) Address() common.Address {
	return s.address
}

func (s *keySigner) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
}

type privateKeyConnector struct {
	hexKey string
}

// NewPrivateKeyConnector unlocks the account of a hex encoded private key
func NewPrivateKeyConnector(hexKey string) WalletConnector {
	return &privateKeyConnector{hexKey: strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")}
}

func (c *privateKeyConnector) Info() models.ConnectorInfo {
	return models.ConnectorInfo{
		ID:        ConnectorPrivateKey,
		Name:      "Private Key",
		Available: c.hexKey != "",
	}
}

func (c *privateKeyConnector) Connect(ctx context.Context) (Signer, error) {
	if c.hexKey == "" {
		return nil, fmt.Errorf("no private key configured")
	}
	key, err := crypto.HexToECDSA(c.hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return NewKeySigner(key), nil
}

type keystoreConnector struct {
	path     string
	password string
}

// NewKeystoreConnector unlocks a V3 keystore file with the given password
func NewKeystoreConnector(path, password string) WalletConnector {
	return &keystoreConnector{path: path, password: password}
}

func (c *keystoreConnector) Info() models.ConnectorInfo {
	return models.ConnectorInfo{
		ID:        ConnectorKeystore,
		Name:      "Keystore",
		Available: c.path != "",
	}
}

func (c *keystoreConnector) Connect(ctx context.Context) (Signer, error) {
	if c.path == "" {
		return nil, fmt.Errorf("no keystore configured")
	}
	keyJSON, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore: %w", err)
	}
	key, err := keystore.DecryptKey(keyJSON, c.password)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt keystore: %w", err)
	}
	return NewKeySigner(key.PrivateKey), nil
}
