package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blockchainBoi/secure-syndicate/internal/services"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func NewDashboardStatsTool(portfolioService services.PortfolioService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("dashboard_stats",
		mcp.WithDescription("Get syndicate dashboard statistics: portfolio value, active projects, members and privacy score"),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := portfolioService.GetDashboardStats()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error getting dashboard stats: %v", err)), nil
		}

		statsJSON, _ := json.MarshalIndent(stats, "", "  ")
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(string(statsJSON)),
			},
		}, nil
	}

	return tool, handler
}

func NewListPropertiesTool(portfolioService services.PortfolioService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("list_properties",
		mcp.WithDescription("List the syndicated real estate properties"),
		mcp.WithString("status",
			mcp.Description("Filter by status (active, funded, pending). Optional."),
		),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		status := request.GetString("status", "")

		properties, err := portfolioService.ListProperties()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error listing properties: %v", err)), nil
		}

		var filtered []interface{}
		for _, property := range properties {
			if status == "" || string(property.Status) == status {
				filtered = append(filtered, property)
			}
		}

		response := map[string]interface{}{
			"properties": filtered,
			"total":      len(filtered),
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

func NewListProjectsTool(portfolioService services.PortfolioService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("list_projects",
		mcp.WithDescription("List syndicate projects whose creation has been confirmed on-chain"),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projects, err := portfolioService.ListProjects()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error listing projects: %v", err)), nil
		}

		response := map[string]interface{}{
			"projects": projects,
			"total":    len(projects),
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
