package server

import (
	"context"
	"fmt"
	"log"

	"github.com/blockchainBoi/secure-syndicate/internal/config"
	"github.com/blockchainBoi/secure-syndicate/internal/hooks"
	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/blockchainBoi/secure-syndicate/internal/services"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Services holds every wired service of the application
type Services struct {
	WalletService    services.WalletService
	EvmService       services.EvmService
	DispatchService  services.DispatchService
	TxService        services.TransactionService
	HookService      services.HookService
	TrackerService   services.TrackerService
	SubmitService    services.SubmitService
	PortfolioService services.PortfolioService
	ChainService     services.ChainService
	closeChainClient func()
}

// OpenDatabase opens postgres when a URL is configured and sqlite otherwise
func OpenDatabase(cfg config.DatabaseConfig) (services.DBService, error) {
	if cfg.PostgresURL != "" {
		return services.NewPostgresDBService(cfg.PostgresURL)
	}
	return services.NewSqliteDBService(cfg.Path)
}

// InitializeServices dials the configured RPC endpoint and wires the services on top of it
func InitializeServices(ctx context.Context, cfg *config.Config, dbService services.DBService) (*Services, error) {
	client, err := ethclient.DialContext(ctx, cfg.Chain.RPC)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", cfg.Chain.RPC, err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	if chainID.String() != cfg.Chain.NetworkID {
		client.Close()
		return nil, fmt.Errorf("rpc endpoint serves chain %s, expected %s", chainID, cfg.Chain.NetworkID)
	}

	svc, err := NewServices(cfg, dbService, client)
	if err != nil {
		client.Close()
		return nil, err
	}
	svc.closeChainClient = client.Close
	return svc, nil
}

// NewServices wires the services over an existing chain client, registers the confirmation
// hooks and resumes tracking of transactions left in flight
func NewServices(cfg *config.Config, dbService services.DBService, client services.ChainClient) (*Services, error) {
	db := dbService.GetDB()

	chainService := services.NewChainService(db)
	if err := chainService.EnsureActiveChain(&models.Chain{
		RPC:         cfg.Chain.RPC,
		NetworkID:   cfg.Chain.NetworkID,
		Name:        cfg.Chain.Name,
		ExplorerURL: cfg.Chain.ExplorerURL,
	}); err != nil {
		return nil, fmt.Errorf("failed to store active chain: %w", err)
	}

	portfolioService := services.NewPortfolioService(db)
	if err := portfolioService.SeedProperties(); err != nil {
		return nil, fmt.Errorf("failed to seed properties: %w", err)
	}

	evmService, err := services.NewEvmService(common.HexToAddress(cfg.Chain.ContractAddress), services.NewPlaceholderEncoder())
	if err != nil {
		return nil, err
	}

	walletService := services.NewWalletService(
		services.NewPrivateKeyConnector(cfg.Wallet.PrivateKey),
		services.NewKeystoreConnector(cfg.Wallet.KeystorePath, cfg.Wallet.KeystorePassword),
	)

	txService := services.NewTransactionService(db)
	hookService := services.NewHookService()
	if err := RegisterHooks(hookService, InitializeHooks(portfolioService)...); err != nil {
		return nil, err
	}

	trackerService := services.NewTrackerService(client, txService, hookService, services.TrackerOptions{
		Confirmations: cfg.Tracker.Confirmations,
		PollInterval:  cfg.Tracker.PollInterval,
		Timeout:       cfg.Tracker.Timeout,
	})
	dispatchService := services.NewDispatchService(client, walletService, evmService)
	submitService := services.NewSubmitService(walletService, evmService, dispatchService, txService, trackerService)

	if err := trackerService.Resume(); err != nil {
		trackerService.Stop()
		return nil, fmt.Errorf("failed to resume tracking: %w", err)
	}

	return &Services{
		WalletService:    walletService,
		EvmService:       evmService,
		DispatchService:  dispatchService,
		TxService:        txService,
		HookService:      hookService,
		TrackerService:   trackerService,
		SubmitService:    submitService,
		PortfolioService: portfolioService,
		ChainService:     chainService,
	}, nil
}

// InitializeHooks creates the bookkeeping hooks run on confirmation
func InitializeHooks(portfolioService services.PortfolioService) []services.Hook {
	return []services.Hook{
		hooks.NewMembershipHook(portfolioService),
		hooks.NewProjectHook(portfolioService),
		hooks.NewInvestmentHook(portfolioService),
	}
}

func RegisterHooks(hookService services.HookService, confirmationHooks ...services.Hook) error {
	for _, hook := range confirmationHooks {
		if err := hookService.AddHook(hook); err != nil {
			return fmt.Errorf("failed to register hook: %w", err)
		}
	}
	log.Printf("Registered %d confirmation hooks", len(confirmationHooks))
	return nil
}

// Close stops transaction tracking and releases the chain client
func (s *Services) Close() {
	s.TrackerService.Stop()
	if s.closeChainClient != nil {
		s.closeChainClient()
	}
}
