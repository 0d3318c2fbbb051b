package services

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"sync"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/blockchainBoi/secure-syndicate/internal/utils"
	"github.com/ethereum/go-ethereum/core/types"
)

// WalletService owns the wallet session. Everything else reads the session by value.
type WalletService interface {
	Session() models.Session
	ListConnectors() []models.ConnectorInfo
	Connect(ctx context.Context, connectorID string) (models.Session, error)
	Disconnect() models.Session
	// SignTx signs with the connected account, ErrNotConnected otherwise
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

type walletService struct {
	mu         sync.RWMutex
	connectors []WalletConnector
	session    models.Session
	signer     Signer
}

// NewWalletService creates a disconnected wallet session over the given connectors
func NewWalletService(connectors ...WalletConnector) WalletService {
	return &walletService{
		connectors: connectors,
		session:    models.Session{ConnectionState: models.ConnectionStateDisconnected},
	}
}

func (s *walletService) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session := s.session
	if session.AccountAddress != nil {
		address := *session.AccountAddress
		session.AccountAddress = &address
	}
	return session
}

func (s *walletService) ListConnectors() []models.ConnectorInfo {
	infos := make([]models.ConnectorInfo, 0, len(s.connectors))
	for _, connector := range s.connectors {
		infos = append(infos, connector.Info())
	}
	return infos
}

func (s *walletService) findConnector(connectorID string) (WalletConnector, error) {
	for _, connector := range s.connectors {
		if connector.Info().ID == connectorID {
			return connector, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownConnector, connectorID)
}

// Connect unlocks an account through the chosen connector, replacing any existing session
func (s *walletService) Connect(ctx context.Context, connectorID string) (models.Session, error) {
	connector, err := s.findConnector(connectorID)
	if err != nil {
		return s.Session(), err
	}

	s.mu.Lock()
	s.session = models.Session{ConnectionState: models.ConnectionStateConnecting, ConnectorID: connectorID}
	s.signer = nil
	s.mu.Unlock()

	signer, err := connector.Connect(ctx)

	s.mu.Lock()
	if err != nil {
		s.session = models.Session{ConnectionState: models.ConnectionStateDisconnected}
		s.mu.Unlock()
		return s.Session(), fmt.Errorf("failed to connect with %s: %w", connectorID, err)
	}
	address := signer.Address()
	s.signer = signer
	s.session = models.Session{
		AccountAddress:  &address,
		ConnectionState: models.ConnectionStateConnected,
		ConnectorID:     connectorID,
	}
	s.mu.Unlock()

	log.Printf("Wallet connected: %s via %s", utils.ShortenAddress(address.Hex()), connectorID)
	return s.Session(), nil
}

func (s *walletService) Disconnect() models.Session {
	s.mu.Lock()
	s.signer = nil
	s.session = models.Session{ConnectionState: models.ConnectionStateDisconnected}
	s.mu.Unlock()
	return s.Session()
}

func (s *walletService) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	s.mu.RLock()
	signer := s.signer
	connected := s.session.IsConnected()
	s.mu.RUnlock()

	if !connected || signer == nil {
		return nil, ErrNotConnected
	}
	return signer.SignTx(tx, chainID)
}
