package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/blockchainBoi/secure-syndicate/internal/constants"
	"github.com/go-playground/validator/v10"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Chain    ChainConfig
	Wallet   WalletConfig
	Tracker  TrackerConfig
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port    int    `validate:"min=0,max=65535"`
	BaseURL string `validate:"omitempty,url"`
	// APIToken, when set, is required as a bearer token on /api and /mcp routes
	APIToken string
}

// DatabaseConfig selects the record store. Postgres wins when both are set.
type DatabaseConfig struct {
	Path        string
	PostgresURL string `validate:"omitempty,url"`
}

// ChainConfig describes the network the SecureSyndicate contract lives on
type ChainConfig struct {
	Name            string `validate:"required"`
	RPC             string `validate:"required,url"`
	NetworkID       string `validate:"required,number"`
	ExplorerURL     string `validate:"omitempty,url"`
	ContractAddress string `validate:"required,eth_addr"`
}

// WalletConfig holds the key material the wallet connectors read
type WalletConfig struct {
	PrivateKey       string
	KeystorePath     string
	KeystorePassword string
}

// TrackerConfig controls confirmation polling
type TrackerConfig struct {
	Confirmations uint64        `validate:"min=1"`
	PollInterval  time.Duration `validate:"gt=0"`
	Timeout       time.Duration `validate:"gt=0"`
}

// Default returns the configuration used when no environment overrides are present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			Path: ":memory:",
		},
		Chain: ChainConfig{
			Name:        constants.SepoliaName,
			RPC:         constants.SepoliaRPC,
			NetworkID:   constants.SepoliaChainID,
			ExplorerURL: constants.SepoliaExplorerURL,
		},
		Tracker: TrackerConfig{
			Confirmations: 1,
			PollInterval:  2 * time.Second,
			Timeout:       5 * time.Minute,
		},
	}
}

// Load builds the configuration from defaults and environment variables and validates it
func Load() (*Config, error) {
	config := Default()
	if err := overrideWithEnv(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration against its validation tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func overrideWithEnv(config *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		parsed, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		config.Server.Port = parsed
	}
	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		config.Server.BaseURL = baseURL
	}
	config.Server.APIToken = os.Getenv("API_TOKEN")

	if path := os.Getenv("DB_PATH"); path != "" {
		config.Database.Path = path
	}
	if postgresURL := os.Getenv("POSTGRES_URL"); postgresURL != "" {
		config.Database.PostgresURL = postgresURL
	}

	if name := os.Getenv("CHAIN_NAME"); name != "" {
		config.Chain.Name = name
	}
	if rpc := os.Getenv("RPC_URL"); rpc != "" {
		config.Chain.RPC = rpc
	}
	if chainID := os.Getenv("CHAIN_ID"); chainID != "" {
		config.Chain.NetworkID = chainID
	}
	if explorer := os.Getenv("EXPLORER_URL"); explorer != "" {
		config.Chain.ExplorerURL = explorer
	}
	config.Chain.ContractAddress = os.Getenv("CONTRACT_ADDRESS")

	config.Wallet.PrivateKey = os.Getenv("WALLET_PRIVATE_KEY")
	config.Wallet.KeystorePath = os.Getenv("KEYSTORE_PATH")
	config.Wallet.KeystorePassword = os.Getenv("KEYSTORE_PASSWORD")

	if confirmations := os.Getenv("CONFIRMATIONS"); confirmations != "" {
		parsed, err := strconv.ParseUint(confirmations, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid CONFIRMATIONS: %w", err)
		}
		config.Tracker.Confirmations = parsed
	}
	if interval := os.Getenv("POLL_INTERVAL"); interval != "" {
		parsed, err := time.ParseDuration(interval)
		if err != nil {
			return fmt.Errorf("invalid POLL_INTERVAL: %w", err)
		}
		config.Tracker.PollInterval = parsed
	}
	if timeout := os.Getenv("CONFIRMATION_TIMEOUT"); timeout != "" {
		parsed, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid CONFIRMATION_TIMEOUT: %w", err)
		}
		config.Tracker.Timeout = parsed
	}

	return nil
}
