package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/blockchainBoi/secure-syndicate/internal/api"
	"github.com/blockchainBoi/secure-syndicate/internal/config"
	"github.com/blockchainBoi/secure-syndicate/internal/mcp"
	"github.com/blockchainBoi/secure-syndicate/internal/server"
	_ "github.com/joho/godotenv/autoload" // Automatically load .env file if present
)

// Build information (set via ldflags)
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

func configureAndStartServer(cfg *config.Config, svc *server.Services, port int) (*api.APIServer, int, error) {
	// The local API listens on loopback only, and requires API_TOKEN when it is set
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

	// Start API server first to get the actual port
	var portPtr *int
	if port != 0 {
		portPtr = &port
	}
	startedPort, err := apiServer.Start(api.LoopbackHost, portPtr)
	if err != nil {
		return nil, 0, err
	}

	// Now initialize MCP server with the actual port
	mcpServer := mcp.NewMCPServer(mcp.Services{
		Wallet:    svc.WalletService,
		Submit:    svc.SubmitService,
		Tx:        svc.TxService,
		Tracker:   svc.TrackerService,
		Portfolio: svc.PortfolioService,
		Chain:     svc.ChainService,
	}, cfg.Server.BaseURL, startedPort)
	apiServer.SetMCPServer(mcpServer)

	return apiServer, startedPort, nil
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "SecureSyndicate MCP Server\n")
	fmt.Fprintf(w, "Version: %s\n", Version)
	fmt.Fprintf(w, "Commit: %s\n", CommitHash)
	fmt.Fprintf(w, "Built: %s\n", BuildTime)
}

func printHelp(w io.Writer, program string) {
	fmt.Fprintf(w, "SecureSyndicate MCP Server\n\n")
	fmt.Fprintf(w, "Usage: %s [options]\n\n", program)
	fmt.Fprintf(w, "Options:\n")
	fmt.Fprintf(w, "  --version    Show version information\n")
	fmt.Fprintf(w, "  --help       Show this help message\n")
	fmt.Fprintf(w, "  --log        Enable logging output\n\n")
	fmt.Fprintf(w, "Description:\n")
	fmt.Fprintf(w, "  Privacy-preserving real estate syndicate on Ethereum.\n")
	fmt.Fprintf(w, "  Provides 12 MCP tools to join, create projects, invest and track transactions.\n\n")
	fmt.Fprintf(w, "Environment:\n")
	fmt.Fprintf(w, "  CONTRACT_ADDRESS, RPC_URL, CHAIN_ID, WALLET_PRIVATE_KEY or KEYSTORE_PATH\n")
	fmt.Fprintf(w, "  API_TOKEN (optional bearer token for the local API)\n")
	fmt.Fprintf(w, "Database: ~/secure-syndicate.db (SQLite) unless DB_PATH is set\n")
	fmt.Fprintf(w, "Web Interface: http://127.0.0.1:[random-port]\n")
}

func main() {
	// Command line flags
	var showVersion = flag.Bool("version", false, "Show version information")
	var showHelp = flag.Bool("help", false, "Show help information")
	var enableLog = flag.Bool("log", false, "Enable logging output")
	flag.Parse()

	// Disable logging by default
	if !*enableLog {
		log.SetOutput(io.Discard)
	}

	// Version and help go to stderr, stdout carries the MCP protocol
	if *showVersion {
		printVersion(os.Stderr)
		return
	}

	if *showHelp {
		printHelp(os.Stderr, os.Args[0])
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if os.Getenv("DB_PATH") == "" {
		// Get home directory for database
		homePath, err := os.UserHomeDir()
		if err != nil {
			log.Fatal("Failed to get home directory:", err)
		}
		cfg.Database.Path = filepath.Join(homePath, "secure-syndicate.db")
	}

	dbService, err := server.OpenDatabase(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer dbService.Close()

	svc, err := server.InitializeServices(context.Background(), cfg, dbService)
	if err != nil {
		log.Fatal("Failed to initialize services:", err)
	}
	defer svc.Close()

	// Configure and start server
	apiServer, port, err := configureAndStartServer(cfg, svc, 0) // 0 for random port
	if err != nil {
		log.Fatal("Failed to start API server:", err)
	}

	log.Printf("API server started on port %d\n", port)

	// Get MCP server for stdio communication
	mcpServer := apiServer.GetMCPServer()
	if mcpServer == nil {
		log.Fatal("MCP server not found")
	}

	// Start MCP server in a goroutine
	go func() {
		if err := mcpServer.Start(); err != nil {
			log.SetOutput(os.Stderr)
			log.SetFlags(0)
			log.Fatal("Failed to start MCP server:", err)
		}
	}()

	// Set up graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("\nShutting down servers...")

	// Shutdown API server
	if err := apiServer.Shutdown(); err != nil {
		log.SetOutput(os.Stderr)
		log.SetFlags(0)
		log.Printf("Error shutting down API server: %v", err)
	}

	log.Println("Servers shut down successfully")
}
