package models

import "time"

// Membership is written once a joinSyndicate transaction is confirmed
type Membership struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	MemberAddress   string    `gorm:"not null;index" json:"member_address"`
	ContributionWei string    `gorm:"not null" json:"contribution_wei"`
	TransactionHash string    `gorm:"not null;uniqueIndex" json:"transaction_hash"`
	CreatedAt       time.Time `json:"created_at"`
}

// Project is written once a createProject transaction is confirmed
type Project struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `json:"description"`
	TargetAmount    string    `gorm:"not null" json:"target_amount"`
	DurationDays    string    `gorm:"not null" json:"duration_days"`
	CreatorAddress  string    `gorm:"not null" json:"creator_address"`
	TransactionHash string    `gorm:"not null;uniqueIndex" json:"transaction_hash"`
	CreatedAt       time.Time `json:"created_at"`
}

// Investment is written once a makeInvestment transaction is confirmed. The amount and
// expected return stay encoded on-chain; only the attached value is public.
type Investment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ProjectID       string    `gorm:"not null;index" json:"project_id"`
	InvestorAddress string    `gorm:"not null" json:"investor_address"`
	ValueWei        string    `gorm:"not null" json:"value_wei"`
	TransactionHash string    `gorm:"not null;uniqueIndex" json:"transaction_hash"`
	CreatedAt       time.Time `json:"created_at"`
}

type PropertyStatus string

const (
	PropertyStatusActive  PropertyStatus = "active"
	PropertyStatusFunded  PropertyStatus = "funded"
	PropertyStatusPending PropertyStatus = "pending"
)

// Property is a syndicated real estate listing
type Property struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null;uniqueIndex" json:"name"`
	Location       string         `gorm:"not null" json:"location"`
	Type           string         `gorm:"not null" json:"type"`
	TotalValue     string         `gorm:"not null" json:"total_value"`
	TotalInvestors int            `json:"total_investors"`
	ReturnRate     string         `json:"return_rate"`
	Status         PropertyStatus `gorm:"default:pending" json:"status"`
	ImageURL       string         `json:"image_url"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// DashboardStats summarises confirmed syndicate activity
type DashboardStats struct {
	PortfolioValueWei string `json:"portfolio_value_wei"`
	PortfolioValueEth string `json:"portfolio_value_eth"`
	ActiveProjects    int64  `json:"active_projects"`
	ActiveProperties  int64  `json:"active_properties"`
	Members           int64  `json:"members"`
	Investments       int64  `json:"investments"`
	// PrivacyScore is the share of confirmed submissions whose sensitive fields were encoded
	PrivacyScore float64 `json:"privacy_score"`
}
