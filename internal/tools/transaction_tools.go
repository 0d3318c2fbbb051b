package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blockchainBoi/secure-syndicate/internal/models"
	"github.com/blockchainBoi/secure-syndicate/internal/services"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const maxWaitSeconds = 120

func NewGetTransactionStatusTool(txService services.TransactionService, trackerService services.TrackerService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("get_transaction_status",
		mcp.WithDescription("Get the status of a submitted transaction (none, pending, confirming, confirmed, failed). Defaults to the most recent submission."),
		mcp.WithString("record_id",
			mcp.Description("ID of the transaction record. Optional, defaults to the active transaction."),
		),
		mcp.WithNumber("wait_seconds",
			mcp.Description("Wait up to this many seconds for the transaction to settle. Optional, defaults to 0."),
		),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		recordID := request.GetString("record_id", "")
		waitSeconds := request.GetFloat("wait_seconds", 0)
		if waitSeconds < 0 || waitSeconds > maxWaitSeconds {
			return mcp.NewToolResultError(fmt.Sprintf("wait_seconds must be between 0 and %d", maxWaitSeconds)), nil
		}

		var (
			record *models.TransactionRecord
			err    error
		)
		if recordID == "" {
			record, err = trackerService.Active()
		} else {
			record, err = txService.GetTransactionRecord(recordID)
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Transaction not found: %v", err)), nil
		}
		if record == nil {
			return mcp.NewToolResultText(`{"status":"none","message":"No transaction has been submitted"}`), nil
		}

		if waitSeconds > 0 && record.Status.IsInFlight() {
			waitCtx, cancel := context.WithTimeout(ctx, time.Duration(waitSeconds*float64(time.Second)))
			defer cancel()
			// a failed or abandoned wait still reports the latest record
			tracked, err := trackerService.Track(waitCtx, record.ID)
			if tracked == nil && err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Error tracking transaction: %v", err)), nil
			}
			if tracked != nil {
				record = tracked
			}
		}

		result := map[string]interface{}{
			"record":  record,
			"message": record.Status.Message(),
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

func NewListTransactionsTool(txService services.TransactionService) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("list_transactions",
		mcp.WithDescription("List submitted SecureSyndicate transactions, newest first"),
		mcp.WithString("status",
			mcp.Description("Filter by status (none, pending, confirming, confirmed, failed). Optional."),
			mcp.Enum(
				string(models.TransactionStatusNone),
				string(models.TransactionStatusPending),
				string(models.TransactionStatusConfirming),
				string(models.TransactionStatusConfirmed),
				string(models.TransactionStatusFailed),
			),
		),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		status := request.GetString("status", "")

		var (
			records []models.TransactionRecord
			err     error
		)
		if status != "" {
			records, err = txService.ListTransactionRecordsByStatus(models.TransactionStatus(status))
		} else {
			records, err = txService.ListTransactionRecords()
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error listing transactions: %v", err)), nil
		}

		response := map[string]interface{}{
			"transactions": records,
			"total":        len(records),
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
