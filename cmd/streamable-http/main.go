package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/blockchainBoi/secure-syndicate/internal/api"
	"github.com/blockchainBoi/secure-syndicate/internal/config"
	"github.com/blockchainBoi/secure-syndicate/internal/mcp"
	"github.com/blockchainBoi/secure-syndicate/internal/server"
	_ "github.com/joho/godotenv/autoload" // Automatically load .env file if present
)

func configureServer(cfg *config.Config, svc *server.Services) (*api.APIServer, error) {
	// Initialize MCP server
	mcpServer := mcp.NewMCPServer(mcp.Services{
		Wallet:    svc.WalletService,
		Submit:    svc.SubmitService,
		Tx:        svc.TxService,
		Tracker:   svc.TrackerService,
		Portfolio: svc.PortfolioService,
		Chain:     svc.ChainService,
	}, cfg.Server.BaseURL, cfg.Server.Port)

	apiServer := api.NewAPIServer(
		svc.WalletService,
		svc.SubmitService,
		svc.EvmService,
		svc.TxService,
		svc.TrackerService,
		svc.PortfolioService,
		svc.ChainService,
		api.ServerOptions{
			BaseURL:  cfg.Server.BaseURL,
			APIToken: cfg.Server.APIToken,
		},
	)
	apiServer.SetMCPServer(mcpServer)
	if err := apiServer.EnableStreamableHttp(); err != nil {
		return nil, err
	}
	return apiServer, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if cfg.Server.APIToken == "" {
		log.Println("API_TOKEN is not set, the API and MCP endpoints are unauthenticated")
	}

	// Postgres when POSTGRES_URL is set, sqlite otherwise
	dbService, err := server.OpenDatabase(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database service:", err)
	}
	defer dbService.Close()

	svc, err := server.InitializeServices(context.Background(), cfg, dbService)
	if err != nil {
		log.Fatal("Failed to initialize services:", err)
	}
	defer svc.Close()

	apiServer, err := configureServer(cfg, svc)
	if err != nil {
		log.Fatal("Failed to configure API server:", err)
	}

	// Start API server
	startedPort, err := apiServer.Start("", &cfg.Server.Port)
	if err != nil {
		log.Fatal("Failed to start API server:", err)
	}

	log.Printf("API server started on port %d\n", startedPort)

	// Set up graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("\nShutting down server...")

	// Shutdown API server
	if err := apiServer.Shutdown(); err != nil {
		log.Printf("Error shutting down API server: %v", err)
	}

	log.Println("Server shut down successfully")
}
