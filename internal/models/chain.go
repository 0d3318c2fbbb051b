package models

import (
	"time"

	"gorm.io/gorm"
)

type Chain struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	RPC         string         `gorm:"not null" json:"rpc"`
	NetworkID   string         `gorm:"column:chain_id;not null" json:"chain_id"` // The blockchain's chain ID (e.g., "11155111" for Sepolia)
	Name        string         `gorm:"not null" json:"name"`
	ExplorerURL string         `json:"explorer_url"`
	IsActive    bool           `gorm:"default:false" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
