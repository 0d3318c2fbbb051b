package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/blockchainBoi/secure-syndicate/internal/api"
	"github.com/blockchainBoi/secure-syndicate/internal/config"
	"github.com/blockchainBoi/secure-syndicate/internal/server"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

var (
	apiServer *api.APIServer
	initOnce  sync.Once
	initErr   error
)

// Handler is the main Vercel function handler
func Handler(w http.ResponseWriter, r *http.Request) {
	// Initialize the API server only once
	initOnce.Do(func() {
		initErr = initializeAPIServer()
	})
	if initErr != nil {
		log.Printf("Failed to initialize API server: %v", initErr)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	adaptor.FiberApp(apiServer.GetFiberApp())(w, r)
}

// initializeAPIServer wires the API server from environment configuration
func initializeAPIServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Database.PostgresURL == "" {
		cfg.Database.Path = getDatabasePath()
	}

	dbService, err := server.OpenDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	svc, err := server.InitializeServices(context.Background(), cfg, dbService)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	apiServer = api.NewAPIServer(
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

	// Add a root route for Vercel
	apiServer.GetFiberApp().Get("/", func(c *fiber.Ctx) error {
		return c.JSON(map[string]interface{}{
			"message": "SecureSyndicate API",
			"status":  "running",
			"version": "1.0.0",
		})
	})

	return nil
}

// getDatabasePath returns the sqlite path. Vercel only allows writes under /tmp.
func getDatabasePath() string {
	if os.Getenv("VERCEL") == "1" {
		return "/tmp/secure-syndicate.db"
	}
	if path := os.Getenv("DB_PATH"); path != "" {
		return path
	}
	return "secure-syndicate.db"
}
