package services

import (
	"math/big"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/blockchainBoi/secure-syndicate/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var defaultProperties = []models.Property{
	{
		Name:           "Manhattan Heights",
		Location:       "New York, NY",
		Type:           "Luxury Residential",
		TotalValue:     "$1.2M",
		TotalInvestors: 24,
		ReturnRate:     "16.2%",
		Status:         models.PropertyStatusActive,
	},
	{
		Name:           "Central Business Plaza",
		Location:       "Chicago, IL",
		Type:           "Commercial Office",
		TotalValue:     "$850K",
		TotalInvestors: 18,
		ReturnRate:     "12.8%",
		Status:         models.PropertyStatusFunded,
	},
	{
		Name:           "Riverside Towers",
		Location:       "Miami, FL",
		Type:           "Mixed Use",
		TotalValue:     "$950K",
		TotalInvestors: 31,
		ReturnRate:     "14.5%",
		Status:         models.PropertyStatusActive,
	},
}

// PortfolioService keeps the bookkeeping written by confirmation hooks and the property listings
type PortfolioService interface {
	// SeedProperties inserts the default listings that are not stored yet
	SeedProperties() error
	ListProperties() ([]models.Property, error)
	ListProjects() ([]models.Project, error)
	RecordMembership(membership *models.Membership) error
	RecordProject(project *models.Project) error
	RecordInvestment(investment *models.Investment) error
	GetDashboardStats() (*models.DashboardStats, error)
}

type portfolioService struct {
	db *gorm.DB
}

func NewPortfolioService(db *gorm.DB) PortfolioService {
	return &portfolioService{db: db}
}

func (s *portfolioService) SeedProperties() error {
	properties := make([]models.Property, len(defaultProperties))
	copy(properties, defaultProperties)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&properties).Error
}

func (s *portfolioService) ListProperties() ([]models.Property, error) {
	var properties []models.Property
	err := s.db.Order("id asc").Find(&properties).Error
	return properties, err
}

func (s *portfolioService) ListProjects() ([]models.Project, error) {
	var projects []models.Project
	err := s.db.Order("id asc").Find(&projects).Error
	return projects, err
}

// RecordMembership is idempotent per transaction hash
func (s *portfolioService) RecordMembership(membership *models.Membership) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_hash"}},
		DoNothing: true,
	}).Create(membership).Error
}

// RecordProject is idempotent per transaction hash
func (s *portfolioService) RecordProject(project *models.Project) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_hash"}},
		DoNothing: true,
	}).Create(project).Error
}

// RecordInvestment is idempotent per transaction hash
func (s *portfolioService) RecordInvestment(investment *models.Investment) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_hash"}},
		DoNothing: true,
	}).Create(investment).Error
}

func (s *portfolioService) GetDashboardStats() (*models.DashboardStats, error) {
	var memberships []models.Membership
	if err := s.db.Find(&memberships).Error; err != nil {
		return nil, err
	}
	var investments []models.Investment
	if err := s.db.Find(&investments).Error; err != nil {
		return nil, err
	}

	total := new(big.Int)
	members := make(map[string]struct{})
	for _, membership := range memberships {
		addWei(total, membership.ContributionWei)
		members[membership.MemberAddress] = struct{}{}
	}
	for _, investment := range investments {
		addWei(total, investment.ValueWei)
	}

	stats := &models.DashboardStats{
		PortfolioValueWei: total.String(),
		PortfolioValueEth: utils.FormatWeiAsEther(total),
		Members:           int64(len(members)),
		Investments:       int64(len(investments)),
	}

	if err := s.db.Model(&models.Project{}).Count(&stats.ActiveProjects).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Property{}).Where("status = ?", models.PropertyStatusActive).Count(&stats.ActiveProperties).Error; err != nil {
		return nil, err
	}

	var confirmed, encoded int64
	if err := s.db.Model(&models.TransactionRecord{}).Where("status = ?", models.TransactionStatusConfirmed).Count(&confirmed).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.TransactionRecord{}).
		Where("status = ? AND operation IN ?", models.TransactionStatusConfirmed, []models.OperationKind{models.OperationJoin, models.OperationInvest}).
		Count(&encoded).Error; err != nil {
		return nil, err
	}
	stats.PrivacyScore = 100
	if confirmed > 0 {
		stats.PrivacyScore = float64(encoded) * 100 / float64(confirmed)
	}

	return stats, nil
}

func addWei(total *big.Int, wei string) {
	if value, ok := new(big.Int).SetString(wei, 10); ok {
		total.Add(total, value)
	}
}
