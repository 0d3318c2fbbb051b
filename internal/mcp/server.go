package mcp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/blockchainBoi/secure-syndicate/internal/services"
	"github.com/blockchainBoi/secure-syndicate/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type MCPServer struct {
	server *server.MCPServer
}

// Services are the services exposed as MCP tools
type Services struct {
	Wallet    services.WalletService
	Submit    services.SubmitService
	Tx        services.TransactionService
	Tracker   services.TrackerService
	Portfolio services.PortfolioService
	Chain     services.ChainService
}

func NewMCPServer(svc Services, baseURL string, serverPort int) *MCPServer {
	mcpServer := &MCPServer{}
	mcpServer.InitializeTools(svc, baseURL, serverPort)
	return mcpServer
}

func (s *MCPServer) InitializeTools(svc Services, baseURL string, serverPort int) {
	srv := server.NewMCPServer(
		"SecureSyndicate MCP Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
	)

	srv.AddPrompt(mcp.NewPrompt("syndicate-usage",
		mcp.WithPromptDescription("Instructions and guidance for using SecureSyndicate MCP tools"),
		mcp.WithArgument("tool_category",
			mcp.ArgumentDescription("Category of tools to get instructions for (wallet, syndicate, status, portfolio, or all)"),
			mcp.RequiredArgument(),
		),
	), func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		category := request.Params.Arguments["tool_category"]
		if category == "" {
			return nil, fmt.Errorf("tool_category is required")
		}

		instructions := getToolInstructions(category)

		return mcp.NewGetPromptResult(
			fmt.Sprintf("SecureSyndicate MCP Tools - %s", category),
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(
					mcp.RoleUser,
					mcp.NewTextContent(instructions),
				),
			},
		), nil
	})

	// Wallet Tools
	srv.AddTool(tools.NewListConnectorsTool(svc.Wallet))
	srv.AddTool(tools.NewConnectWalletTool(svc.Wallet))
	srv.AddTool(tools.NewDisconnectWalletTool(svc.Wallet))

	// Syndicate Operation Tools
	joinTool := tools.NewJoinSyndicateTool(svc.Submit, baseURL, serverPort)
	srv.AddTool(joinTool.GetTool(), joinTool.GetHandler())

	createProjectTool := tools.NewCreateProjectTool(svc.Submit, baseURL, serverPort)
	srv.AddTool(createProjectTool.GetTool(), createProjectTool.GetHandler())

	makeInvestmentTool := tools.NewMakeInvestmentTool(svc.Submit, baseURL, serverPort)
	srv.AddTool(makeInvestmentTool.GetTool(), makeInvestmentTool.GetHandler())

	// Transaction Status Tools
	srv.AddTool(tools.NewGetTransactionStatusTool(svc.Tx, svc.Tracker))
	srv.AddTool(tools.NewListTransactionsTool(svc.Tx))

	// Read-only Information Tools
	srv.AddTool(tools.NewDashboardStatsTool(svc.Portfolio))
	srv.AddTool(tools.NewListPropertiesTool(svc.Portfolio))
	srv.AddTool(tools.NewListProjectsTool(svc.Portfolio))
	srv.AddTool(tools.NewListChainsTool(svc.Chain))

	s.server = srv
}

func getToolInstructions(category string) string {
	switch category {
	case "wallet":
		return `Wallet Tools:

1. list_connectors - List wallet connectors and the current session
   Usage: Check which connectors are available before connecting

2. connect_wallet - Connect the wallet session with a connector
   Usage: Required before any syndicate operation

3. disconnect_wallet - End the wallet session
   Usage: Transactions already submitted keep being tracked`

	case "syndicate":
		return `Syndicate Operation Tools:

1. join_syndicate - Join with an encoded reputation and an ETH contribution
   Usage: The contribution is a whole number of ETH and is attached to the transaction

2. create_project - Create a project with name, description, target amount and duration
   Usage: Project fields are public on-chain

3. make_investment - Invest in a project with an amount and expected return
   Usage: The amount is attached as ETH and also sent encoded

Only one transaction can be in flight at a time. Fractional ETH amounts are rejected.`

	case "status":
		return `Transaction Status Tools:

1. get_transaction_status - Status of a submitted transaction (pending, confirming, confirmed, failed)
   Usage: Omit record_id for the latest submission, set wait_seconds to wait for it to settle

2. list_transactions - List submitted transactions, newest first
   Usage: Filter by status to find failed or in-flight transactions`

	case "portfolio":
		return `Portfolio Tools:

1. dashboard_stats - Portfolio value, active projects, members and privacy score
2. list_properties - Syndicated real estate listings
3. list_projects - Projects whose creation has been confirmed
4. list_chains - Configured chains and the active chain`

	case "all":
		return `SecureSyndicate MCP Tools Overview:

This MCP server provides 12 tools for taking part in a privacy-preserving real estate syndicate:

WALLET (3 tools):
- list_connectors: Available connectors and session
- connect_wallet: Connect the signing account
- disconnect_wallet: End the session

SYNDICATE OPERATIONS (3 tools):
- join_syndicate: Join with reputation and contribution
- create_project: Create a funding project
- make_investment: Invest in a project

TRANSACTION STATUS (2 tools):
- get_transaction_status: Follow a submission to confirmation
- list_transactions: Submission history

PORTFOLIO (4 tools):
- dashboard_stats: Syndicate statistics
- list_properties: Property listings
- list_projects: Confirmed projects
- list_chains: Chain configuration

Sensitive fields (reputation, investment amount, expected return) are encoded before submission.`

	default:
		return `Invalid category. Available categories: wallet, syndicate, status, portfolio, all`
	}
}

func (s *MCPServer) Start() error {
	return server.ServeStdio(s.server)
}

// StreamableHTTPHandler serves the MCP server over streamable HTTP
func (s *MCPServer) StreamableHTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.server)
}

// GetServer returns the underlying mcp-go server
func (s *MCPServer) GetServer() *server.MCPServer {
	return s.server
}
