package api

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"

	"github.com/blockchainBoi/secure-syndicate/internal/api/middleware"
	"github.com/blockchainBoi/secure-syndicate/internal/mcp"
	"github.com/blockchainBoi/secure-syndicate/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

// LoopbackHost binds the API to the local machine only
const LoopbackHost = "127.0.0.1"

// ServerOptions are the presentation settings of the API server
type ServerOptions struct {
	// BaseURL is the public address used in status links, empty for localhost
	BaseURL string
	// APIToken protects every route but /health when set
	APIToken string
}

type APIServer struct {
	app              *fiber.App
	walletService    services.WalletService
	submitService    services.SubmitService
	evmService       services.EvmService
	txService        services.TransactionService
	trackerService   services.TrackerService
	portfolioService services.PortfolioService
	chainService     services.ChainService
	mcpServer        *mcp.MCPServer
	options          ServerOptions
	host             string
	port             int
}

func NewAPIServer(
	walletService services.WalletService,
	submitService services.SubmitService,
	evmService services.EvmService,
	txService services.TransactionService,
	trackerService services.TrackerService,
	portfolioService services.PortfolioService,
	chainService services.ChainService,
	options ServerOptions,
) *APIServer {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Add middleware
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.AuthMiddleware(middleware.AuthConfig{
		Token:     options.APIToken,
		SkipPaths: []string{"/health"},
	}))

	server := &APIServer{
		app:              app,
		walletService:    walletService,
		submitService:    submitService,
		evmService:       evmService,
		txService:        txService,
		trackerService:   trackerService,
		portfolioService: portfolioService,
		chainService:     chainService,
		options:          options,
	}
	server.setupRoutes()
	return server
}

func (s *APIServer) setupRoutes() {
	// Wallet session
	s.app.Get("/api/wallet/connectors", s.handleListConnectors)
	s.app.Get("/api/wallet/session", s.handleGetSession)
	s.app.Post("/api/wallet/connect", s.handleConnect)
	s.app.Post("/api/wallet/disconnect", s.handleDisconnect)

	// Operation triggers
	s.app.Post("/api/syndicate/join", s.handleJoin)
	s.app.Post("/api/projects", s.handleCreateProject)
	s.app.Post("/api/investments", s.handleInvest)

	// Transaction status
	s.app.Get("/api/tx", s.handleListTransactions)
	s.app.Get("/api/tx/active", s.handleActiveTransaction)
	s.app.Get("/api/tx/:id", s.handleGetTransaction)

	// Portfolio
	s.app.Get("/api/dashboard", s.handleDashboard)
	s.app.Get("/api/properties", s.handleListProperties)
	s.app.Get("/api/chains", s.handleListChains)

	// Contract artifacts API
	s.app.Get("/api/contract/abi", s.handleContractABI)
	s.app.Get("/api/contracts/:name", s.handleContractArtifact)

	// Health check
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})
}

// EnableStreamableHttp serves the MCP server over streamable HTTP on /mcp
func (s *APIServer) EnableStreamableHttp() error {
	if s.mcpServer == nil {
		return fmt.Errorf("mcp server is not set")
	}
	s.app.All("/mcp", adaptor.HTTPHandler(s.mcpServer.StreamableHTTPHandler()))
	return nil
}

// Start starts the server on host and port, or on a random available port when port
// is nil. An empty host listens on every interface.
func (s *APIServer) Start(host string, port *int) (int, error) {
	s.host = host
	if port == nil {
		// Find an available port
		listener, err := net.Listen("tcp", net.JoinHostPort(host, "0"))
		if err != nil {
			return 0, fmt.Errorf("failed to find available port: %w", err)
		}
		s.port = listener.Addr().(*net.TCPAddr).Port
		// Close the listener so Fiber can use it
		listener.Close()
	} else {
		s.port = *port
	}

	go func() {
		if err := s.app.Listen(s.GetAddr()); err != nil {
			log.Printf("Error starting API server: %v\n", err)
		}
	}()

	return s.port, nil
}

func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

func (s *APIServer) GetPort() int {
	return s.port
}

// GetAddr returns the host:port the server listens on
func (s *APIServer) GetAddr() string {
	return net.JoinHostPort(s.host, strconv.Itoa(s.port))
}

// GetFiberApp exposes the fiber app for adaptors and tests
func (s *APIServer) GetFiberApp() *fiber.App {
	return s.app
}

// SetMCPServer sets the MCP server instance for accessing MCP methods
func (s *APIServer) SetMCPServer(mcpServer *mcp.MCPServer) {
	s.mcpServer = mcpServer
}

// GetMCPServer returns the MCP server instance
func (s *APIServer) GetMCPServer() *mcp.MCPServer {
	return s.mcpServer
}

// writeError maps service errors to HTTP status codes
func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotConnected):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrUnknownConnector):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrSubmissionInProgress):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrSubmissionFailed), errors.Is(err, services.ErrConfirmationFailed):
		status = fiber.StatusBadGateway
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
