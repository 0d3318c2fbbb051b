package services

import (
	"errors"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"gorm.io/gorm"
)

// ChainService handles chain-related operations
type ChainService interface {
	// EnsureActiveChain creates the chain if no chain with the same chain id exists,
	// updates its endpoints otherwise, and makes it the only active chain
	EnsureActiveChain(chain *models.Chain) error
	GetActiveChain() (*models.Chain, error)
	ListChains() ([]models.Chain, error)
}

type chainService struct {
	db *gorm.DB
}

// NewChainService creates a new ChainService
func NewChainService(db *gorm.DB) ChainService {
	return &chainService{db: db}
}

func (s *chainService) EnsureActiveChain(chain *models.Chain) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Chain
		err := tx.Where("chain_id = ?", chain.NetworkID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(chain).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"rpc":          chain.RPC,
				"name":         chain.Name,
				"explorer_url": chain.ExplorerURL,
			}).Error; err != nil {
				return err
			}
			chain.ID = existing.ID
		}

		// Deactivate all chains
		if err := tx.Model(&models.Chain{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			return err
		}
		chain.IsActive = true
		return tx.Model(&models.Chain{}).Where("id = ?", chain.ID).Update("is_active", true).Error
	})
}

// GetActiveChain returns the currently active chain
func (s *chainService) GetActiveChain() (*models.Chain, error) {
	var chain models.Chain
	err := s.db.Where("is_active = ?", true).First(&chain).Error
	if err != nil {
		return nil, err
	}
	return &chain, nil
}

// ListChains returns all chains
func (s *chainService) ListChains() ([]models.Chain, error) {
	var chains []models.Chain
	err := s.db.Find(&chains).Error
	return chains, err
}
