package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blockchainBoi/secure-syndicate/internal/services"
	"github.com/blockchainBoi/secure-syndicate/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type ConnectWalletArguments struct {
	ConnectorID string `json:"connector_id" validate:"required"`
}

func NewListConnectorsTool(walletService services.WalletService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("list_connectors",
		mcp.WithDescription("List the wallet connectors that can unlock the signing account, and the current wallet session."),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := map[string]interface{}{
			"connectors": walletService.ListConnectors(),
			"session":    walletService.Session(),
		}

		resultJSON, _ := json.Marshal(result)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(string(resultJSON)),
			},
		}, nil
	}

	return tool, handler
}

func NewConnectWalletTool(walletService services.WalletService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("connect_wallet",
		mcp.WithDescription("Connect the wallet session with one of the connectors from list_connectors. Replaces any existing session."),
		mcp.WithString("connector_id",
			mcp.Required(),
			mcp.Description("ID of the connector (e.g. private-key, keystore)"),
		),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ConnectWalletArguments
		if err := request.BindArguments(&args); err != nil {
			return nil, fmt.Errorf("failed to bind arguments: %w", err)
		}

		if err := validator.New().Struct(args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		session, err := walletService.Connect(ctx, args.ConnectorID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to connect wallet: %v", err)), nil
		}

		sessionJSON, _ := json.Marshal(session)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(fmt.Sprintf("Wallet connected: %s", utils.ShortenAddress(session.AccountAddress.Hex()))),
				mcp.NewTextContent(string(sessionJSON)),
			},
		}, nil
	}

	return tool, handler
}

func NewDisconnectWalletTool(walletService services.WalletService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("disconnect_wallet",
		mcp.WithDescription("Disconnect the wallet session. Transactions already submitted keep being tracked."),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sessionJSON, _ := json.Marshal(walletService.Disconnect())
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(string(sessionJSON)),
			},
		}, nil
	}

	return tool, handler
}
