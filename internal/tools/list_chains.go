package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blockchainBoi/secure-syndicate/internal/services"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func NewListChainsTool(chainService services.ChainService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("list_chains",
		mcp.WithDescription("List the configured chains. Transactions are submitted on the active chain."),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		chains, err := chainService.ListChains()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error listing chains: %v", err)), nil
		}

		response := map[string]interface{}{
			"chains": chains,
			"total":  len(chains),
		}

		// Find active chain if any
		for _, chain := range chains {
			if chain.IsActive {
				response["active_chain"] = map[string]interface{}{
					"id":           chain.ID,
					"name":         chain.Name,
					"rpc":          chain.RPC,
					"chain_id":     chain.NetworkID,
					"explorer_url": chain.ExplorerURL,
				}
				break
			}
		}

		responseJSON, _ := json.MarshalIndent(response, "", "  ")
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(string(responseJSON)),
			},
		}, nil
	}

	return tool, handler
}
